package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const userAgent = "wallrotate/1.0"

// maxResponseBytes caps any single API or image response. Larger bodies
// fail the attempt with ErrFetchTransient instead of filling memory.
var maxResponseBytes int64 = 64 << 20

// httpGet returns the body of a 200 response. 404 maps to ErrNotFound,
// every other failure to ErrFetchTransient.
func httpGet(ctx context.Context, client *http.Client, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchTransient, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchTransient, err)
	}
	defer func() { _ = res.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrFetchTransient, err)
	}
	if int64(len(b)) > maxResponseBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrFetchTransient, maxResponseBytes)
	}
	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, summarizeBody(b))
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d: %s", ErrFetchTransient, res.StatusCode, summarizeBody(b))
	}
	return b, nil
}

// download fetches image bytes. A missing image is a transient failure of
// this attempt, not a sign that the source is empty.
func download(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	b, err := httpGet(ctx, client, rawURL, nil)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: downloading %s: %w", ErrFetchTransient, rawURL, err)
	}
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty image body from %s", ErrFetchTransient, rawURL)
	}
	return b, nil
}

// summarizeBody shortens a response body for error messages.
func summarizeBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty body"
	}
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}

func orDefaultClient(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
