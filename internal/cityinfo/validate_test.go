package cityinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContentBounds(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty", "", ErrMissingContent},
		{"nine", strings.Repeat("a", MinContentLength-1), ErrContentTooShort},
		{"ten", strings.Repeat("a", MinContentLength), nil},
		{"two thousand", strings.Repeat("a", MaxContentLength), nil},
		{"two thousand one", strings.Repeat("a", MaxContentLength+1), ErrContentTooLong},
		{"short text", "short", ErrContentTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.content)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateContentCountsRunes(t *testing.T) {
	// Ten runes, twenty bytes.
	assert.NoError(t, ValidateContent(strings.Repeat("é", 10)))
	assert.ErrorIs(t, ValidateContent(strings.Repeat("é", 9)), ErrContentTooShort)
}
