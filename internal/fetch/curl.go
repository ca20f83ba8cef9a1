package fetch

import (
	"fmt"
	"strings"
)

// CurlRequest is the subset of a pasted browser "Copy as cURL" command the
// linter cares about: where to fetch and which headers to present.
type CurlRequest struct {
	URL     string
	Headers map[string]string
}

// ParseCurl extracts the URL and request headers from a cURL argv as split
// by the user's shell (args[0] must be "curl"). Flags that do not affect a
// read-only fetch (--compressed, -s, --data and friends) are skipped.
func ParseCurl(args []string) (*CurlRequest, error) {
	if len(args) == 0 || args[0] != "curl" {
		return nil, fmt.Errorf("not a curl command")
	}

	req := &CurlRequest{Headers: map[string]string{}}
	i := 1
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "-H" || arg == "--header":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("curl: %s requires a value", arg)
			}
			name, value, err := SplitHeader(args[i+1])
			if err != nil {
				return nil, err
			}
			req.Headers[name] = value
			i += 2
		case arg == "-A" || arg == "--user-agent":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("curl: %s requires a value", arg)
			}
			req.Headers["User-Agent"] = args[i+1]
			i += 2
		case arg == "-b" || arg == "--cookie":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("curl: %s requires a value", arg)
			}
			req.Headers["Cookie"] = args[i+1]
			i += 2
		case arg == "-X" || arg == "--request" || arg == "--data" || arg == "--data-raw" ||
			arg == "--data-binary" || arg == "-d" || arg == "-o" || arg == "--output":
			// Value-carrying flags we ignore.
			i += 2
		case strings.HasPrefix(arg, "-"):
			// Boolean flags (--compressed, -s, -i, ...).
			i++
		default:
			req.URL = arg
			i++
		}
	}

	if req.URL == "" {
		return nil, fmt.Errorf("curl: no URL found")
	}
	return req, nil
}

// SplitHeader parses a "Name: value" header flag value.
func SplitHeader(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if !ok || name == "" {
		return "", "", fmt.Errorf("malformed header %q (want \"Name: value\")", s)
	}
	return name, value, nil
}
