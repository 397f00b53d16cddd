package navigation

import (
	"net/url"
	"strings"
)

// location is a canonicalized navigation target split into its parts.
type location struct {
	path     string
	query    url.Values
	rawQuery string
	trailing bool
}

// parseLocation separates the fragment and query from the path and
// canonicalizes the path: multiple slashes collapse, "." segments drop, ".."
// segments resolve. Backslashes, NUL bytes, malformed percent escapes, and
// ".." above root are rejected.
func parseLocation(input string) (location, error) {
	input, _, _ = strings.Cut(input, "#")
	raw, rawQuery, _ := strings.Cut(input, "?")

	if strings.Contains(raw, "\\") {
		return location{}, ErrBackslashInPath
	}
	if strings.Contains(raw, "\x00") || strings.Contains(strings.ToUpper(raw), "%00") {
		return location{}, ErrNullByteInPath
	}
	if strings.Contains(raw, "%") {
		if err := validatePercentEscapes(raw); err != nil {
			return location{}, err
		}
	}

	// ParseQuery keeps every well-formed pair alongside its error.
	query, _ := url.ParseQuery(rawQuery)

	segments, err := canonicalSegments(raw)
	if err != nil {
		return location{}, err
	}

	return location{
		path:     "/" + strings.Join(segments, "/"),
		query:    query,
		rawQuery: rawQuery,
		trailing: len(segments) > 0 && strings.HasSuffix(raw, "/"),
	}, nil
}

func canonicalSegments(path string) ([]string, error) {
	var result []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(result) == 0 {
				return nil, ErrPathEscapesRoot
			}
			result = result[:len(result)-1]
		default:
			result = append(result, seg)
		}
	}
	return result, nil
}

func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHex(path[i+1]) || !isHex(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func splitSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
