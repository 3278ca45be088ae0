package wamock

import (
	"strings"
	"time"
)

// sentAtLayouts are the timestamp shapes accepted for display
// normalization, tried in order.
var sentAtLayouts = []string{
	time.RFC3339,
	"2/1/2006, 15:04",
	"1/2/2006, 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000",
}

// displayTime reduces a SentAt value to HH:MM for the bubble timestamp.
// Values already in HH:MM form, and values that match no known layout,
// pass through verbatim. Purely a function of its input: no wall clock.
func displayTime(sentAt string) string {
	if sentAt == "" {
		return ""
	}
	// Bare HH:MM (or HH:MM:SS) with no date part.
	if strings.Contains(sentAt, ":") && !strings.Contains(sentAt, " ") && !strings.Contains(sentAt, "T") {
		return sentAt
	}
	for _, layout := range sentAtLayouts {
		if t, err := time.Parse(layout, sentAt); err == nil {
			return t.Format("15:04")
		}
	}
	return sentAt
}
