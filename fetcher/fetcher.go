package fetcher

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// Fetcher retrieves the HTML of a single article page.
type Fetcher interface {
	Fetch(url string) (string, error)
}

// HTTPError reports a non-success status for the attempted URL. The
// caller distinguishes 404 (no article for that year) from other
// statuses.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// PageFetcher fetches article HTML with a fixed user agent and request
// timeout. One blocking request, no retries: a connection failure or
// timeout is for the caller to terminate on.
type PageFetcher struct {
	collector *colly.Collector
}

// NewPageFetcher creates a PageFetcher.
func NewPageFetcher(userAgent string, timeout time.Duration) *PageFetcher {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
	)
	c.SetRequestTimeout(timeout)

	return &PageFetcher{
		collector: c,
	}
}

// Fetch implements the Fetcher interface.
func (f *PageFetcher) Fetch(url string) (string, error) {
	var body string
	statusCode := 0

	c := f.collector.Clone()
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			statusCode = r.StatusCode
		}
	})

	if err := c.Visit(url); err != nil {
		if statusCode != 0 {
			return "", &HTTPError{URL: url, StatusCode: statusCode}
		}
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	c.Wait()

	return body, nil
}
