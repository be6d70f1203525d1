package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"formatted local number", "(19) 99207-1423", "5519992071423", true},
		{"already prefixed", "5519992071423", "5519992071423", true},
		{"prefixed with separators", "+55 (11) 98765-4321", "5511987654321", true},
		{"digits inside text", "zap: 11987654321 (preferido)", "5511987654321", true},
		{"no digits", "abc", "", false},
		{"too few digits", "1234", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeKeepsMalformedDigitRuns(t *testing.T) {
	// Digit-count window is the only check; a malformed but matching run is
	// accepted unchanged.
	got, ok := Normalize("0000000000")
	assert.True(t, ok)
	assert.Equal(t, "550000000000", got)
}
