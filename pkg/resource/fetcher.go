package resource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const userAgent = "noddy/1.0 (compatible; Go)"

// httpClient is a shared HTTP client with reasonable timeouts.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Fetcher retrieves page sources by location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (body []byte, contentType string, err error)
}

// DefaultFetcher fetches http(s) URLs over the network and everything
// else from the local file system, resolving relative locations against
// a base.
type DefaultFetcher struct {
	base string
}

// NewFetcher creates a DefaultFetcher with the given base location, a URL
// or a file path. An empty base resolves relative paths against the
// working directory.
func NewFetcher(base string) *DefaultFetcher {
	return &DefaultFetcher{base: base}
}

// Base returns the location relative references are resolved against.
func (f *DefaultFetcher) Base() string {
	return f.base
}

// Resolve resolves ref against the fetcher's base. An empty ref is the
// base itself.
func (f *DefaultFetcher) Resolve(ref string) string {
	if ref == "" {
		return f.base
	}
	if f.base == "" || IsNetworkURL(ref) {
		return ref
	}
	if IsNetworkURL(f.base) {
		return ResolveURL(f.base, ref)
	}
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(f.base), ref)
}

// Fetch retrieves the resource at location after resolving it.
func (f *DefaultFetcher) Fetch(ctx context.Context, location string) ([]byte, string, error) {
	resolved := f.Resolve(location)
	if IsNetworkURL(resolved) {
		return fetchURL(ctx, resolved)
	}
	body, err := os.ReadFile(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", resolved, err)
	}
	return body, "text/html", nil
}

// FetchPage fetches location and returns it as page source. Content that
// does not look like text is rejected.
func (f *DefaultFetcher) FetchPage(ctx context.Context, location string) (string, error) {
	body, contentType, err := f.Fetch(ctx, location)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "html") && !strings.Contains(ct, "xml") {
		return "", fmt.Errorf("unexpected content type for a page: %s", contentType)
	}
	return string(body), nil
}

// Follow returns a fetcher whose base is ref resolved against f, for
// navigating to a link.
func (f *DefaultFetcher) Follow(ref string) *DefaultFetcher {
	return NewFetcher(f.Resolve(ref))
}

func fetchURL(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// ResolveURL resolves a possibly-relative URI against a base URL.
// If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
