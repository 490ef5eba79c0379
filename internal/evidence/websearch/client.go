package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"phonecheck/internal/platform/config"
)

// maxSnippets bounds how many result snippets a single search may yield.
const maxSnippets = 5

// Client issues a scam-report query against a web search provider and
// returns the result snippets.
type Client interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// HTTPClient posts the query as an HTML form to a DuckDuckGo-style endpoint
// and scrapes the result snippets out of the response body. The provider
// rejects requests without a browser-like User-Agent, so one is always sent.
type HTTPClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewHTTPClient builds the production search client.
func NewHTTPClient(cfg config.SearchConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Search runs the query and returns up to maxSnippets result snippets. An
// empty slice means the provider answered but reported nothing.
func (c *HTTPClient) Search(ctx context.Context, query string) ([]string, error) {
	form := url.Values{"q": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return collectSnippets(doc, maxSnippets), nil
}

// collectSnippets walks the document and gathers the text of elements whose
// class list contains "result__snippet", in document order, up to max.
func collectSnippets(doc *html.Node, max int) []string {
	var snippets []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(snippets) >= max {
			return
		}
		if n.Type == html.ElementNode && hasClass(n, "result__snippet") {
			if text := strings.TrimSpace(textContent(n)); text != "" {
				snippets = append(snippets, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return snippets
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}
