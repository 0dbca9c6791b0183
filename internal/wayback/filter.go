package wayback

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter policy names accepted by ParseFilterPolicy.
const (
	filterNameNone          = "none"
	filterNameExcludeErrors = "exclude-errors"
	filterNameStatusPrefix  = "status:"
)

// ParseFilterPolicy parses a policy from its configuration form: "none",
// "exclude-errors", or "status:<code>" for a server-side single-status
// filter.
func ParseFilterPolicy(s string) (FilterPolicy, error) {
	switch {
	case s == "" || s == filterNameNone:
		return FilterPolicy{Mode: FilterNone}, nil
	case s == filterNameExcludeErrors:
		return FilterPolicy{Mode: FilterExcludeErrors}, nil
	case strings.HasPrefix(s, filterNameStatusPrefix):
		code, err := strconv.Atoi(strings.TrimPrefix(s, filterNameStatusPrefix))
		if err != nil {
			return FilterPolicy{}, fmt.Errorf("invalid filter status code in %q: %w", s, err)
		}
		return FilterPolicy{Mode: FilterServerStatus, StatusCode: code}, nil
	default:
		return FilterPolicy{}, fmt.Errorf("unknown filter policy %q", s)
	}
}

// String renders the policy in its configuration form.
func (p FilterPolicy) String() string {
	switch p.Mode {
	case FilterServerStatus:
		return filterNameStatusPrefix + strconv.Itoa(p.StatusCode)
	case FilterExcludeErrors:
		return filterNameExcludeErrors
	default:
		return filterNameNone
	}
}
