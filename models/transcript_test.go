package models

import (
	"strings"
	"testing"
)

func TestSentenceRecordFormat(t *testing.T) {
	tests := []struct {
		name   string
		record SentenceRecord
		want   string
	}{
		{
			"speaker with role",
			SentenceRecord{DocID: "doc", Index: 1, Speaker: "John Smith", Role: "CEO", Sentence: "Revenue grew 10%."},
			"doc_1 | John Smith (CEO): Revenue grew 10%.",
		},
		{
			"speaker without role",
			SentenceRecord{DocID: "doc", Index: 2, Speaker: "Jane Doe", Sentence: "Margins expanded."},
			"doc_2 | Jane Doe: Margins expanded.",
		},
		{
			"no speaker",
			SentenceRecord{DocID: "doc", Index: 3, Sentence: "Unattributed remark."},
			"doc_3 | Unattributed remark.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		wantIndex    int
		wantSentence string
	}{
		{"with attribution", "doc_1 | John Smith (CEO): Revenue grew 10%.", 1, "Revenue grew 10%."},
		{"no attribution", "doc_2 | Unattributed remark.", 2, "Unattributed remark."},
		{"doc id with underscores", "acme_q1_fy23_17 | Jane Doe: Costs fell.", 17, "Costs fell."},
		{"colon inside sentence", "doc_3 | Guidance for 2023: cautious.", 3, "Guidance for 2023: cautious."},
		{"colon after punctuation kept", "doc_4 | It was good. Next year: better.", 4, "It was good. Next year: better."},
		{"lowercase prefix kept", "doc_5 | we expect margins: up.", 5, "we expect margins: up."},
		{"title-cased prefix stripped", "doc_6 | Key Takeaway: growth accelerated.", 6, "growth accelerated."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, sentence, err := ParseRecord(tt.line)
			if err != nil {
				t.Fatalf("ParseRecord(%q) error: %v", tt.line, err)
			}
			if index != tt.wantIndex || sentence != tt.wantSentence {
				t.Errorf("ParseRecord(%q) = (%d, %q), want (%d, %q)",
					tt.line, index, sentence, tt.wantIndex, tt.wantSentence)
			}
		})
	}
}

func TestParseRecordErrors(t *testing.T) {
	for _, line := range []string{
		"no pipe delimiter here",
		"nounderscore | text",
		"doc_abc | text",
	} {
		if _, _, err := ParseRecord(line); err == nil {
			t.Errorf("ParseRecord(%q) succeeded, want error", line)
		}
	}
}

func TestSpeakerBlockBody(t *testing.T) {
	b := SpeakerBlock{Lines: []string{"first", "second"}}
	if got := b.Body(); got != "first\nsecond" {
		t.Errorf("Body() = %q", got)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	records := []SentenceRecord{
		{DocID: "acme_q1", Index: 1, Speaker: "John Smith", Role: "CEO", Sentence: "Revenue grew 10%."},
		{DocID: "acme_q1", Index: 2, Sentence: "Plain text line."},
		{DocID: "acme_q1", Index: 3, Sentence: "Outlook for 2023: cautious optimism."},
		{DocID: "acme_q1", Index: 4, Speaker: "Jane Doe", Sentence: "Guidance for 2024: flat."},
	}
	for _, r := range records {
		index, sentence, err := ParseRecord(r.Format())
		if err != nil {
			t.Fatalf("ParseRecord(%q) error: %v", r.Format(), err)
		}
		if index != r.Index || sentence != r.Sentence {
			t.Errorf("round trip of %q = (%d, %q)", r.Format(), index, sentence)
		}
	}
}

func TestFormatNoLeadingTrailingSpace(t *testing.T) {
	r := SentenceRecord{DocID: "d", Index: 1, Sentence: "x"}
	if s := r.Format(); s != strings.TrimSpace(s) {
		t.Errorf("Format() has surrounding whitespace: %q", s)
	}
}
