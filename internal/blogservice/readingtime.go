package blogservice

import "strings"

const wordsPerMinute = 200

// readingTime estimates how many minutes it takes to read body, at 200 words
// per minute rounded up. Blank text yields 0.
func readingTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}

	return (words + wordsPerMinute - 1) / wordsPerMinute
}
