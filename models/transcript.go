package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// NormalizedLine is a single surviving line of dialogue text after noise
// removal. Ordinal is the line's position in the raw document.
type NormalizedLine struct {
	Text    string
	Ordinal int
}

// SpeakerBlock is a contiguous run of normalized text attributed to one
// speaker. Speaker is empty for the implicit block that collects text
// appearing before the first detected speaker cue.
type SpeakerBlock struct {
	Speaker string
	Role    string
	Lines   []string
}

// Body returns the block's concatenated text.
func (b *SpeakerBlock) Body() string {
	return strings.Join(b.Lines, "\n")
}

// SentenceRecord is one emitted unit of cleaned output: a single sentence
// with its attribution and a 1-based running index over the whole document.
type SentenceRecord struct {
	DocID    string
	Index    int
	Speaker  string
	Role     string
	Sentence string
}

// Format serializes a record to the pipe-delimited line format consumed by
// the sentiment backends:
//
//	{doc_id}_{index} | {speaker} ({role}): {sentence}
//
// The speaker prefix is omitted entirely for unattributed text.
func (r SentenceRecord) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s_%d | ", r.DocID, r.Index)
	if r.Speaker != "" {
		sb.WriteString(r.Speaker)
		if r.Role != "" {
			fmt.Fprintf(&sb, " (%s)", r.Role)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(r.Sentence)
	return sb.String()
}

// ParseRecord recovers the running index and sentence text from a
// serialized record line. The speaker prefix, when present, is stripped:
// a leading "label: " is treated as attribution only when the label is
// name-shaped (title-cased words, optionally suffixed "(Role)"), the same
// heuristic that produced the speaker in the first place. Sentences that
// themselves contain a colon survive intact.
func ParseRecord(line string) (index int, sentence string, err error) {
	head, rest, found := strings.Cut(line, " | ")
	if !found {
		return 0, "", fmt.Errorf("malformed record line: %q", line)
	}

	us := strings.LastIndex(head, "_")
	if us < 0 {
		return 0, "", fmt.Errorf("missing index in record id %q", head)
	}
	index, err = strconv.Atoi(head[us+1:])
	if err != nil {
		return 0, "", fmt.Errorf("bad index in record id %q: %w", head, err)
	}

	if label, tail, ok := strings.Cut(rest, ": "); ok && looksLikeSpeaker(label) {
		return index, tail, nil
	}
	return index, rest, nil
}

// maxSpeakerLabelLen mirrors the segmenter's speaker length cap.
const maxSpeakerLabelLen = 50

// looksLikeSpeaker reports whether a record-line prefix is plausibly the
// serialized attribution rather than sentence text: short, every word
// starting uppercase, with an optional trailing "(Role)".
func looksLikeSpeaker(label string) bool {
	if label == "" || len(label) >= maxSpeakerLabelLen {
		return false
	}
	if i := strings.LastIndex(label, " ("); i >= 0 && strings.HasSuffix(label, ")") {
		label = label[:i]
	}
	words := strings.Fields(label)
	if len(words) == 0 {
		return false
	}
	for _, word := range words {
		if !unicode.IsUpper([]rune(word)[0]) {
			return false
		}
	}
	return true
}
