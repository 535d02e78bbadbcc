// Package search provides web search via the DuckDuckGo HTML endpoint.
// No API key is needed; results are scraped from the returned markup and
// reduced to title/URL/snippet triples.
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const defaultBaseURL = "https://html.duckduckgo.com/html/"

// Snippet is one search result.
type Snippet struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Client performs searches against the HTML endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxResults int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the search endpoint; used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithMaxResults caps the number of returned snippets.
func WithMaxResults(max int) Option {
	return func(c *Client) {
		if max > 0 {
			c.maxResults = max
		}
	}
}

// NewClient creates a search client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxResults: 5,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches results for the query. A page with no recognizable
// results yields an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Snippet, error) {
	u := fmt.Sprintf("%s?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; wingman/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	results := extractResults(doc)
	if len(results) > c.maxResults {
		results = results[:c.maxResults]
	}
	return results, nil
}

// extractResults walks the parsed page collecting result anchors and their
// snippets. The HTML endpoint marks titles with class "result__a" and
// snippet text with class "result__snippet".
func extractResults(doc *html.Node) []Snippet {
	var results []Snippet
	var current *Snippet

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result__a") && n.Data == "a":
				if current != nil && current.Title != "" {
					results = append(results, *current)
				}
				current = &Snippet{
					Title: strings.TrimSpace(textContent(n)),
					URL:   attrValue(n, "href"),
				}
			case hasClass(n, "result__snippet"):
				if current != nil && current.Content == "" {
					current.Content = strings.TrimSpace(textContent(n))
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	if current != nil && current.Title != "" {
		results = append(results, *current)
	}
	return results
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

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
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
