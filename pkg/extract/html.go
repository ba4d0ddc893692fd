package extract

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// htmlText extracts the main content of an HTML transcript page. The
// readability pass strips navigation and chrome; goquery then walks the
// distilled content so paragraph and heading boundaries become line breaks
// for the normalizer.
func htmlText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	// readability wants a URL for resolving relative links; local files
	// get a synthetic one.
	pageURL := &url.URL{Scheme: "file", Path: path}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(string(data)), pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to distill HTML %s: %w", filepath.Base(path), err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", fmt.Errorf("failed to parse distilled HTML: %w", err)
	}

	var builder strings.Builder
	doc.Find("h1,h2,h3,h4,p,li").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			builder.WriteString(text)
			builder.WriteString("\n")
		}
	})

	return builder.String(), nil
}
