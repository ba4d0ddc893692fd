package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadUnsupportedFormat(t *testing.T) {
	for _, name := range []string{"doc.docx", "doc.json", "doc"} {
		_, err := Load(name)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Load(%q) error = %v, want ErrUnsupportedFormat", name, err)
		}
	}
}

func TestLoadTxtUTF8(t *testing.T) {
	path := writeFile(t, "call.txt", []byte("Operator: Good day.\nRevenue grew 10%."))

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !strings.Contains(got, "Revenue grew 10%.") {
		t.Errorf("Load() = %q", got)
	}
}

func TestLoadTxtCaseInsensitiveExtension(t *testing.T) {
	path := writeFile(t, "call.TXT", []byte("hello"))
	if _, err := Load(path); err != nil {
		t.Errorf("Load(.TXT) error: %v", err)
	}
}

func TestTextFileWindows1252Fallback(t *testing.T) {
	// 0x92 is a curly apostrophe in Windows-1252 and invalid UTF-8.
	path := writeFile(t, "call.txt", []byte("The company\x92s growth"))

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !strings.Contains(got, "company’s") {
		t.Errorf("Load() = %q, want curly apostrophe decoded", got)
	}
}

func TestLoadHTML(t *testing.T) {
	html := `<!DOCTYPE html>
<html><head><title>Acme Q1 Call</title></head><body>
<article>
<h1>Acme Q1 FY23 Earnings Call</h1>
<p>Operator: Good morning and welcome to the call. Please stand by while we connect all participants to the session.</p>
<p>John Smith - CEO: Revenue grew 10% this quarter and our margins expanded across every business segment we operate.</p>
<p>We remain confident in our outlook for the remainder of the fiscal year despite the uncertain macro environment.</p>
</article>
</body></html>`
	path := writeFile(t, "call.html", []byte(html))

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !strings.Contains(got, "Revenue grew 10%") {
		t.Errorf("extracted text missing dialogue:\n%s", got)
	}
	if strings.Contains(got, "<p>") || strings.Contains(got, "DOCTYPE") {
		t.Errorf("markup leaked into extracted text:\n%s", got)
	}
}
