package urlutil_test

import (
	"testing"

	"github.com/jonesrussell/archivecheck/internal/urlutil"
	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"http URL", "http://example.com", true},
		{"https URL", "https://example.com/path?q=1", true},
		{"www prefix", "www.example.com", true},
		{"empty string", "", false},
		{"bare domain", "example.com", false},
		{"ftp scheme", "ftp://example.com", false},
		{"embedded whitespace", "http://example.com/a b", false},
		{"scheme only", "http://", false},
		{"www only", "www.", false},
		{"leading whitespace", " http://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urlutil.IsValid(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"www prefix gets scheme", "www.example.com", "http://www.example.com"},
		{"http unchanged", "http://example.com", "http://example.com"},
		{"https unchanged", "https://example.com/path", "https://example.com/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urlutil.Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"www.example.com",
		"http://example.com",
		"https://example.com",
	}

	for _, input := range inputs {
		once := urlutil.Normalize(input)
		assert.Equal(t, once, urlutil.Normalize(once), "normalize should be idempotent for %q", input)
	}
}
