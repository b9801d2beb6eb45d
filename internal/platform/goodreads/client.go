package goodreads

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrUnauthorized is returned when the developer key is rejected.
	ErrUnauthorized = errors.New("goodreads: credentials rejected")
	// ErrNotFound is returned when no book exists for the requested id.
	ErrNotFound = errors.New("goodreads: book not found")
)

const DefaultBaseURL = "https://www.goodreads.com"

type Options struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	RPS        float64
	MaxRetries int
}

type Client struct {
	httpClient *http.Client
	key        string
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient builds a read-only Goodreads API client. Book lookups
// authenticate with the developer key alone.
func NewClient(key string, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		key:        key,
		userAgent:  opts.UserAgent,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: opts.MaxRetries,
	}
}

// Book matches the <book> element of book/show.xml. Values are trimmed;
// an empty value means the field was absent.
type Book struct {
	ID               string `xml:"id"`
	Title            string `xml:"title"`
	ISBN             string `xml:"isbn"`
	ISBN13           string `xml:"isbn13"`
	AverageRating    string `xml:"average_rating"`
	RatingsCount     string `xml:"ratings_count"`
	NumPages         string `xml:"num_pages"`
	PublicationYear  string `xml:"publication_year"`
	PublicationMonth string `xml:"publication_month"`
	PublicationDay   string `xml:"publication_day"`
	Publisher        string `xml:"publisher"`
}

type showResponse struct {
	XMLName xml.Name `xml:"GoodreadsResponse"`
	Book    Book     `xml:"book"`
}

// GetBook fetches a single book by its Goodreads id.
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	u := fmt.Sprintf("%s/book/show/%s.xml?key=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(c.key))

	var res showResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	b := res.Book
	b.trim()
	return &b, nil
}

func (b *Book) trim() {
	for _, f := range []*string{
		&b.ID, &b.Title, &b.ISBN, &b.ISBN13, &b.AverageRating, &b.RatingsCount,
		&b.NumPages, &b.PublicationYear, &b.PublicationMonth, &b.PublicationDay, &b.Publisher,
	} {
		*f = strings.TrimSpace(*f)
	}
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, url, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	if c.maxRetries == 0 {
		return lastErr
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

// do performs one request. The bool reports whether the failure is worth
// retrying.
func (c *Client) do(ctx context.Context, url string, target interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return true, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	default:
		return false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := xml.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}
