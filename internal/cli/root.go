package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"amplint/internal/config"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var cfg = config.New()

var rootCmd = &cobra.Command{
	Use:   "amplint [flags] URL | - | curl ...",
	Short: "Lint a published page against AMP distribution requirements",
	Long: `amplint fetches a published page and reports pass/fail/warn findings
against the requirements AMP distribution platforms impose: document
structure, CORS reachability of runtime endpoints, media sizing, and
cache/signed-exchange negotiation.

The target is a URL, "-" to read the document from stdin, or a browser
"Copy as cURL" command pasted verbatim (amplint reuses its headers).

Examples:
  # Lint a page
  amplint https://example.com/article.amp.html

  # Machine-readable report
  amplint -t json https://example.com/article.amp.html

  # Lint as it was fetched by the browser
  amplint curl 'https://example.com/article.amp.html' -H 'Cookie: a=b'

  # Force the signed-exchange rule set
  amplint -f sxg https://example.com/article.amp.html

Exit codes:
  0 = lint pass completed (regardless of individual rule outcomes)
  1 = the document could not be fetched or parsed`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runLint(cmd.Context(), cfg, args, os.Stdout)
	},
}

func init() {
	// A pasted curl command carries its own flags; stop flag parsing at the
	// first positional argument so they reach ParseCurl untouched.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.Flags().StringVarP(&cfg.Format, "format", "t", cfg.Format, "Output format: text|json|tsv|html")
	rootCmd.Flags().StringVarP(&cfg.Force, "force", "f", cfg.Force, "Override document type: auto|amp|ampstory|sxg")
	rootCmd.Flags().StringVarP(&cfg.UserAgent, "user-agent", "A", cfg.UserAgent, "User agent: googlebot_mobile|googlebot_desktop|chrome_mobile|chrome_desktop")
	rootCmd.Flags().StringArrayVarP(&cfg.Headers, "header", "H", nil, `Request header as "Name: value" (repeatable)`)
	rootCmd.PersistentFlags().BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
