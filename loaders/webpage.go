package loaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// WebpageLoader downloads pages over plain HTTP and keeps their visible text.
type WebpageLoader struct {
	URLs   []string
	Client *http.Client
}

func NewWebpageLoader(urls ...string) *WebpageLoader {
	return &WebpageLoader{
		URLs:   urls,
		Client: http.DefaultClient,
	}
}

func (l *WebpageLoader) Load(ctx context.Context) ([]Document, error) {
	docs := make([]Document, 0, len(l.URLs))
	for _, url := range l.URLs {
		doc, err := l.load(ctx, url)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (l *WebpageLoader) load(ctx context.Context, url string) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("failed to get webpage: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("failed to get webpage %s: %s", url, resp.Status)
	}
	title, text, err := extractText(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse webpage %s: %w", url, err)
	}
	return Document{
		Source:   url,
		Content:  text,
		Metadata: map[string]string{"title": title},
	}, nil
}

// extractText drops scripts and styles and collapses whitespace.
func extractText(r io.Reader) (title, text string, err error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", err
	}
	document.Find("script, style, noscript").Each(func(_ int, item *goquery.Selection) {
		item.Remove()
	})
	title = strings.TrimSpace(document.Find("title").First().Text())
	body := document.Find("body")
	if body.Length() == 0 {
		body = document.Selection
	}
	return title, normalizeWhitespace(body.Text()), nil
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}
