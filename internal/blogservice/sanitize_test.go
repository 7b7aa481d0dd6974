package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain markdown untouched",
			input:    "# Title\n\nSome **bold** text.",
			expected: "# Title\n\nSome **bold** text.",
		},
		{
			name:     "script tag removed",
			input:    "before<script>alert('x')</script>after",
			expected: "beforeafter",
		},
		{
			name:     "script tag with attributes removed",
			input:    `<script type="text/javascript">evil()</script>body`,
			expected: "body",
		},
		{
			name:     "case insensitive",
			input:    "<SCRIPT>evil()</SCRIPT>body",
			expected: "body",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitizeMarkdown(tc.input))
		})
	}
}
