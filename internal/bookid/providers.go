// AngelaMos | 2026
// providers.go

package bookid

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Doer lets tests inject a fake HTTP client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Match is a provider hit.
type Match struct {
	Title  string
	Author string
}

// Provider searches a bibliographic API for one query. A nil Match with
// nil error means the query produced no result.
type Provider interface {
	Search(ctx context.Context, query string, keywords []string) (*Match, error)
}

const (
	googleBooksEndpoint = "https://www.googleapis.com/books/v1/volumes"
	openLibraryEndpoint = "https://openlibrary.org/search.json"
	providerMaxResults  = "5"
)

func defaultClient() Doer {
	return &http.Client{Timeout: 12 * time.Second}
}

// GoogleBooksProvider is the primary lookup. Results are restricted to
// Turkish when the query carries Turkish keywords; a title containing at
// least half of the keywords beats the first-ranked result.
type GoogleBooksProvider struct {
	client Doer
}

func NewGoogleBooksProvider(client Doer) *GoogleBooksProvider {
	if client == nil {
		client = defaultClient()
	}
	return &GoogleBooksProvider{client: client}
}

func (p *GoogleBooksProvider) Search(
	ctx context.Context,
	query string,
	keywords []string,
) (*Match, error) {
	v := url.Values{}
	v.Set("q", query)
	v.Set("maxResults", providerMaxResults)
	if len(keywords) > 0 {
		v.Set("langRestrict", "tr")
	}

	var result struct {
		Items []struct {
			VolumeInfo struct {
				Title   string   `json:"title"`
				Authors []string `json:"authors"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}

	endpoint := googleBooksEndpoint + "?" + v.Encode()
	if err := p.fetch(ctx, endpoint, &result); err != nil {
		return nil, err
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	for _, item := range result.Items {
		if keywordMatchRatio(item.VolumeInfo.Title, keywords) >= 0.5 {
			return &Match{
				Title:  item.VolumeInfo.Title,
				Author: firstOf(item.VolumeInfo.Authors),
			}, nil
		}
	}

	first := result.Items[0].VolumeInfo
	return &Match{
		Title:  first.Title,
		Author: firstOf(first.Authors),
	}, nil
}

func (p *GoogleBooksProvider) fetch(
	ctx context.Context,
	endpoint string,
	out any,
) error {
	return fetchJSON(ctx, p.client, endpoint, out)
}

// OpenLibraryProvider is the fallback: keyword-matching titles first,
// then Turkish-script titles, then the first result.
type OpenLibraryProvider struct {
	client Doer
}

func NewOpenLibraryProvider(client Doer) *OpenLibraryProvider {
	if client == nil {
		client = defaultClient()
	}
	return &OpenLibraryProvider{client: client}
}

func (p *OpenLibraryProvider) Search(
	ctx context.Context,
	query string,
	keywords []string,
) (*Match, error) {
	v := url.Values{}
	v.Set("q", query)
	v.Set("limit", providerMaxResults)

	var result struct {
		Docs []struct {
			Title      string   `json:"title"`
			AuthorName []string `json:"author_name"`
		} `json:"docs"`
	}

	endpoint := openLibraryEndpoint + "?" + v.Encode()
	if err := fetchJSON(ctx, p.client, endpoint, &result); err != nil {
		return nil, err
	}

	if len(result.Docs) == 0 {
		return nil, nil
	}

	for _, doc := range result.Docs {
		if keywordMatchRatio(doc.Title, keywords) >= 0.5 {
			return &Match{
				Title:  doc.Title,
				Author: firstOf(doc.AuthorName),
			}, nil
		}
	}

	for _, doc := range result.Docs {
		if hasTurkishDiacritics(doc.Title) {
			return &Match{
				Title:  doc.Title,
				Author: firstOf(doc.AuthorName),
			}, nil
		}
	}

	first := result.Docs[0]
	return &Match{
		Title:  first.Title,
		Author: firstOf(first.AuthorName),
	}, nil
}

func fetchJSON(ctx context.Context, client Doer, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf(
			"provider status %d: %s",
			resp.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}

	return nil
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
