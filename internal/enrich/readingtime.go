package enrich

import "strings"

// wordsPerMinute matches the common silent-reading estimate.
const wordsPerMinute = 265

// EstimateReadingTime returns the estimated reading time of the text in whole
// minutes, or nil when the text contains no words. The estimate is always
// derived from the full extracted text, never from a summary.
func EstimateReadingTime(text string) *int {
	words := len(strings.Fields(text))
	if words == 0 {
		return nil
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return &minutes
}
