package blogservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadingTime(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "empty body", body: "", expected: 0},
		{name: "whitespace only", body: "   \n\t  ", expected: 0},
		{name: "single word", body: "hello", expected: 1},
		{name: "two words", body: "hello world", expected: 1},
		{name: "exactly one minute", body: strings.Repeat("word ", 200), expected: 1},
		{name: "just over one minute", body: strings.Repeat("word ", 201), expected: 2},
		{name: "five minutes", body: strings.Repeat("word ", 1000), expected: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, readingTime(tc.body))
		})
	}
}

func TestReadingTimeDeterministic(t *testing.T) {
	body := strings.Repeat("some words here ", 100)
	assert.Equal(t, readingTime(body), readingTime(body))
}
