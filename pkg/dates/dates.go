// Package dates extracts the earnings-call date from raw transcript text.
// A miss here is a warning, never a failure: the quarter is simply left out
// of the alpha table for manual follow-up.
package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// headLines caps how far into the document the scan goes. The call date
// sits on the cover page or in the header block when it is present at all.
const headLines = 40

var eventHeader = regexp.MustCompile(`(?i)^\s*(event\s+)?date(/time)?\s*[:\-]\s*(.+)$`)

var monthLine = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b.{0,20}\d{4}`)

// Extract scans the head of the raw text for a date, preferring explicit
// "Event Date/Time:" headers over free-standing month-name lines.
func Extract(text string) (time.Time, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) > headLines {
		lines = lines[:headLines]
	}

	for _, line := range lines {
		if m := eventHeader.FindStringSubmatch(line); m != nil {
			if t, ok := parseHeaderValue(m[3]); ok {
				return t, true
			}
		}
	}

	for _, line := range lines {
		if m := monthLine.FindString(line); m != "" {
			if t, err := dateparse.ParseAny(m); err == nil {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// parseHeaderValue parses the text after a date header. Vendors often
// append the call time as "July 25, 2022 / 9:00AM ET", so a failed parse
// is retried on the portion before the slash.
func parseHeaderValue(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t, true
	}
	if datePart, _, found := strings.Cut(raw, "/"); found {
		if t, err := dateparse.ParseAny(strings.TrimSpace(datePart)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
