package common

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeDocID derives a filesystem-safe document identifier from a
// source filename: extension dropped, anything outside [A-Za-z0-9_-]
// collapsed to a single underscore.
func SanitizeDocID(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeChars.ReplaceAllString(base, "_")
	return strings.Trim(base, "_")
}

// QuarterKey assigns the chronological quarter label for the i-th of n
// transcripts: "prevN" back through "prev1", then "current" for the most
// recent one.
func QuarterKey(i, n int) string {
	if i == n-1 {
		return "current"
	}
	return "prev" + strconv.Itoa(n-1-i)
}
