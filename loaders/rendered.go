package loaders

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
)

// RenderedPageLoader loads pages in a headless Chromium so that content
// produced by JavaScript is included.
type RenderedPageLoader struct {
	URLs []string
	// Install downloads the browser driver before the first run.
	Install bool
}

func NewRenderedPageLoader(urls ...string) *RenderedPageLoader {
	return &RenderedPageLoader{
		URLs:    urls,
		Install: true,
	}
}

func (l *RenderedPageLoader) Load(ctx context.Context) (docs []Document, err error) {
	if l.Install {
		if err := playwright.Install(); err != nil {
			return nil, fmt.Errorf("could not install playwright: %v", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %v", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch()
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %v", err)
	}
	defer browser.Close()

	for _, url := range l.URLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := l.render(browser, url)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (l *RenderedPageLoader) render(browser playwright.Browser, url string) (Document, error) {
	page, err := browser.NewPage()
	if err != nil {
		return Document{}, fmt.Errorf("could not create page: %v", err)
	}
	defer page.Close()

	log.Debugf("rendering %s", url)
	if _, err := page.Goto(url); err != nil {
		return Document{}, fmt.Errorf("could not navigate to %s: %v", url, err)
	}
	page.WaitForLoadState(string(*playwright.LoadStateDomcontentloaded))
	title, err := page.Title()
	if err != nil {
		return Document{}, fmt.Errorf("could not read title of %s: %v", url, err)
	}
	text, err := page.InnerText("body")
	if err != nil {
		return Document{}, fmt.Errorf("could not read body of %s: %v", url, err)
	}
	return Document{
		Source:   url,
		Content:  normalizeWhitespace(text),
		Metadata: map[string]string{"title": title},
	}, nil
}
