package wayback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/archivecheck/internal/wayback"
)

func TestParseFilterPolicy(t *testing.T) {
	tests := []struct {
		input string
		want  wayback.FilterPolicy
	}{
		{input: "", want: wayback.FilterPolicy{Mode: wayback.FilterNone}},
		{input: "none", want: wayback.FilterPolicy{Mode: wayback.FilterNone}},
		{input: "exclude-errors", want: wayback.FilterPolicy{Mode: wayback.FilterExcludeErrors}},
		{input: "status:200", want: wayback.FilterPolicy{Mode: wayback.FilterServerStatus, StatusCode: 200}},
		{input: "status:404", want: wayback.FilterPolicy{Mode: wayback.FilterServerStatus, StatusCode: 404}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			policy, err := wayback.ParseFilterPolicy(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, policy)
		})
	}
}

func TestParseFilterPolicyRejectsUnknown(t *testing.T) {
	for _, input := range []string{"latest", "status:", "status:abc", "STATUS:200"} {
		t.Run(input, func(t *testing.T) {
			_, err := wayback.ParseFilterPolicy(input)
			assert.Error(t, err)
		})
	}
}

func TestFilterPolicyString(t *testing.T) {
	assert.Equal(t, "none", wayback.FilterPolicy{}.String())
	assert.Equal(t, "exclude-errors", wayback.FilterPolicy{Mode: wayback.FilterExcludeErrors}.String())
	assert.Equal(t, "status:200",
		wayback.FilterPolicy{Mode: wayback.FilterServerStatus, StatusCode: 200}.String())
}
