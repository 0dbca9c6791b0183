// Package urlutil provides validation and scheme normalization for raw URL
// strings read from user-supplied tables.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

// validURLPattern matches http(s) URLs and bare www-prefixed hosts with no
// embedded whitespace. This is a shape check, not full RFC validation.
var validURLPattern = regexp.MustCompile(`^(https?://|www\.)\S+$`)

// IsValid reports whether raw looks like a checkable URL: non-empty and
// starting with http://, https://, or www. followed by non-whitespace.
func IsValid(raw string) bool {
	if raw == "" {
		return false
	}
	return validURLPattern.MatchString(raw)
}

// Normalize ensures the URL carries a scheme. Inputs starting with www. or
// lacking any URI scheme are prefixed with http://; everything else is
// returned unchanged. Callers must validate with IsValid first.
func Normalize(raw string) string {
	if strings.HasPrefix(raw, "www.") {
		return "http://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return "http://" + raw
	}
	return raw
}
