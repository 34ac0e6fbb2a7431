package tools

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	smoltools "github.com/rizome-dev/smolagentsgo/tools"
)

// NewReadHTMLTool returns a tool that fetches a web page and reduces it
// to readable text. A nil client gets a default with a request timeout.
func NewReadHTMLTool(client *http.Client) (smoltools.Tool, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return smoltools.NewBaseTool(
		"read_html",
		"Fetch a web page by URL and return its title and readable text content.",
		map[string]smoltools.InputProperty{
			"url": {Type: "string", Description: "Absolute URL of the page to read."},
		},
		"string",
		func(args map[string]interface{}) (interface{}, error) {
			url, err := stringArg(args, "url")
			if err != nil {
				return nil, err
			}
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				return nil, fmt.Errorf("url must be http or https")
			}
			resp, err := client.Get(url)
			if err != nil {
				return nil, fmt.Errorf("fetch %s: %w", url, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
			}
			doc, err := goquery.NewDocumentFromReader(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", url, err)
			}
			return truncateOutput(extractReadableText(doc), maxToolOutputBytes), nil
		},
	)
}

// extractReadableText flattens a document to its title and text blocks.
func extractReadableText(doc *goquery.Document) string {
	doc.Find("script, style, nav, noscript").Remove()

	var b strings.Builder
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	doc.Find("h1, h2, h3, h4, p, li, blockquote, pre").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		b.WriteString(text)
		b.WriteString("\n")
	})
	out := strings.TrimSpace(b.String())
	if out == "" {
		return strings.TrimSpace(doc.Text())
	}
	return out
}
