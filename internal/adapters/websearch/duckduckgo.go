// Package websearch provides the web fallback search adapter.
// Clean Architecture: Adapter implementing ports.WebSearcher.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

// DuckDuckGoSearcher implements ports.WebSearcher against the DuckDuckGo
// Instant Answer API. It needs no API key, which keeps the fallback path
// usable in a fully local deployment.
type DuckDuckGoSearcher struct {
	baseURL string
	client  *http.Client
}

// NewDuckDuckGoSearcher creates a web searcher. baseURL is overridable
// for tests; empty means the public endpoint.
func NewDuckDuckGoSearcher(baseURL string) *DuckDuckGoSearcher {
	if baseURL == "" {
		baseURL = "https://api.duckduckgo.com"
	}
	return &DuckDuckGoSearcher{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	Answer        string     `json:"Answer"`
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

// Search runs one web query and returns the result text with any source
// URLs the API attributed. An empty result set is not an error; the
// caller decides what to do with thin content.
func (s *DuckDuckGoSearcher) Search(ctx context.Context, query string) (*entities.WebResult, error) {
	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1", s.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling DuckDuckGo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DuckDuckGo returned status %d", resp.StatusCode)
	}

	var body ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	var parts []string
	var urls []string
	if body.Answer != "" {
		parts = append(parts, body.Answer)
	}
	if body.AbstractText != "" {
		parts = append(parts, body.AbstractText)
		if body.AbstractURL != "" {
			urls = append(urls, body.AbstractURL)
		}
	}
	collectTopics(body.RelatedTopics, &parts, &urls)

	content := strings.Join(parts, "\n")
	if content == "" {
		content = "No live web results found."
	}

	return &entities.WebResult{Content: content, URLs: dedupe(urls)}, nil
}

func collectTopics(topics []ddgTopic, parts *[]string, urls *[]string) {
	for _, t := range topics {
		if t.Text != "" {
			*parts = append(*parts, t.Text)
		}
		if t.FirstURL != "" {
			*urls = append(*urls, t.FirstURL)
		}
		collectTopics(t.Topics, parts, urls)
	}
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	var out []string
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
