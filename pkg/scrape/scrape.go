// Package scrape salvages usable data from endpoints that answer with an HTML
// document instead of JSON (reverse proxies, error pages, misconfigured
// gateways). Scalar slots get the stripped text for a regex scan; content
// slots get a single best-effort record derived from the page metadata.
package scrape

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// LooksHTML reports whether a body is plausibly an HTML document.
func LooksHTML(body string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(trimmed, "<!doctype html") ||
		strings.HasPrefix(trimmed, "<html") ||
		strings.Contains(trimmed, "<body")
}

// Text strips tags and returns the visible text of an HTML body, collapsed to
// single spaces. Returns "" when the body does not parse.
func Text(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// PageRecord is the salvageable metadata of an HTML page.
type PageRecord struct {
	Title       string
	Excerpt     string
	PublishedAt *time.Time
}

// Page extracts a PageRecord from an HTML body via readability, falling back
// to the <title> tag when readability finds no article. Returns (zero, false)
// when nothing titled can be recovered.
func Page(sourceURL, body string) (PageRecord, bool) {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		parsed = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(body), parsed)
	if err == nil && strings.TrimSpace(article.Title) != "" {
		rec := PageRecord{
			Title:   strings.TrimSpace(article.Title),
			Excerpt: strings.TrimSpace(article.Excerpt),
		}
		if article.PublishedTime != nil && !article.PublishedTime.IsZero() {
			rec.PublishedAt = article.PublishedTime
		}
		return rec, true
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return PageRecord{}, false
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return PageRecord{}, false
	}
	return PageRecord{Title: title}, true
}
