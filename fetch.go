package finalenglish

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

// Fetcher retrieves the raw bytes of a static JSON resource.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// HTTPFetcher fetches resources with plain HTTP GET relative to a base
// URL. A non-2xx response is a load failure.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for the given base URL.
func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := f.baseURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Path: path, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// FSFetcher reads resources from a file system, for local site builds,
// embedded assets, and tests.
type FSFetcher struct {
	fsys fs.FS
}

// NewFSFetcher creates a fetcher over the given file system.
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

func (f *FSFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	return fs.ReadFile(f.fsys, strings.TrimLeft(path, "/"))
}

// Verify fetcher implementations
var (
	_ Fetcher = (*HTTPFetcher)(nil)
	_ Fetcher = (*FSFetcher)(nil)
)
