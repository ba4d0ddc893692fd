package common

import "testing"

func TestSanitizeDocID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Q1 FY23.pdf", "Acme_Q1_FY23"},
		{"/data/raw/acme/earnings (final).txt", "earnings_final"},
		{"plain", "plain"},
		{"already_safe-name.html", "already_safe-name"},
		{"...", ""},
	}

	for _, tt := range tests {
		if got := SanitizeDocID(tt.in); got != tt.want {
			t.Errorf("SanitizeDocID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuarterKey(t *testing.T) {
	tests := []struct {
		i, n int
		want string
	}{
		{0, 4, "prev3"},
		{1, 4, "prev2"},
		{2, 4, "prev1"},
		{3, 4, "current"},
		{0, 1, "current"},
	}

	for _, tt := range tests {
		if got := QuarterKey(tt.i, tt.n); got != tt.want {
			t.Errorf("QuarterKey(%d, %d) = %q, want %q", tt.i, tt.n, got, tt.want)
		}
	}
}
