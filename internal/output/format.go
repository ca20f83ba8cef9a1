// Package output renders a lint report in the formats the CLI exposes.
package output

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"amplint/internal/lint"
)

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "tsv", "html"}

// Row is one flattened report line. A rule whose outcome list is empty
// flattens to a single PASS row, since an empty list means every
// sub-target it inspected was fine.
type Row struct {
	Name    string
	Status  lint.Status
	Message string
}

// Flatten turns a report into rows sorted by rule name.
func Flatten(report lint.Report) []Row {
	names := make([]string, 0, len(report))
	for name := range report {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []Row
	for _, name := range names {
		results := report[name]
		if len(results) == 0 {
			rows = append(rows, Row{Name: name, Status: lint.StatusPass})
			continue
		}
		for _, r := range results {
			rows = append(rows, Row{Name: name, Status: r.Status, Message: r.Message})
		}
	}
	return rows
}

// Format writes the report to w in the requested format.
func Format(w io.Writer, format string, report lint.Report) error {
	switch format {
	case "text":
		return writeText(w, report)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "tsv":
		return writeTSV(w, report)
	case "html":
		return writeHTML(w, report)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

var statusColors = map[lint.Status]*color.Color{
	lint.StatusPass:          color.New(color.FgGreen),
	lint.StatusFail:          color.New(color.FgRed),
	lint.StatusWarn:          color.New(color.FgYellow),
	lint.StatusInfo:          color.New(color.FgCyan),
	lint.StatusInternalError: color.New(color.FgMagenta),
}

func writeText(w io.Writer, report lint.Report) error {
	for _, row := range Flatten(report) {
		status := string(row.Status)
		if c, ok := statusColors[row.Status]; ok {
			status = c.Sprint(status)
		}
		if _, err := fmt.Fprintf(w, "%s %s", status, row.Name); err != nil {
			return err
		}
		if row.Message != "" {
			if _, err := fmt.Fprintf(w, "\n  %s", row.Message); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func writeTSV(w io.Writer, report lint.Report) error {
	for _, row := range Flatten(report) {
		message := strings.NewReplacer("\t", " ", "\n", " ").Replace(row.Message)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", row.Name, row.Status, message); err != nil {
			return err
		}
	}
	return nil
}

func writeHTML(w io.Writer, report lint.Report) error {
	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	for _, row := range Flatten(report) {
		_, err := fmt.Fprintf(w, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(row.Name),
			html.EscapeString(string(row.Status)),
			html.EscapeString(row.Message))
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</table>")
	return err
}
