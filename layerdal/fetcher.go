package layerdal

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/semaphore"
)

const maxConcurrentFetches = 4

// DataFetcher retrieves dataset documents. Remote URLs get a cache-busting
// token appended; plain paths are read from disk (the local-data override
// path). Concurrent fetches are bounded by a semaphore.
type DataFetcher struct {
	logger  *logpkg.Logger
	client  *http.Client
	sema    *semaphore.Semaphore
	nowFunc func() time.Time
}

func NewDataFetcher(logger *logpkg.Logger, client *http.Client) *DataFetcher {
	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}
	return &DataFetcher{logger, client, semaphore.NewSemaphore(maxConcurrentFetches), time.Now}
}

func (f *DataFetcher) Fetch(ctx context.Context, location string) ([]byte, *ClassifiedError) {
	f.sema.Add()
	defer f.sema.Done()

	if !strings.Contains(location, "://") {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, NewTransportError("couldn't read local dataset %q: %s", location, err)
		}
		return data, nil
	}

	fetchURL, err := f.withCacheBuster(location)
	if err != nil {
		return nil, NewTransportError("unparseable dataset URL %q: %s", location, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, NewTransportError("couldn't build request for %q: %s", location, err)
	}

	response, err := f.client.Do(request)
	if err != nil {
		return nil, NewTransportError("fetching %q failed: %s", location, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, NewTransportError("unexpected status %d fetching %q", response.StatusCode, location)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, NewTransportError("reading body of %q failed: %s", location, err)
	}

	f.logger.Debug("fetched %d bytes from %q", len(data), location)

	return data, nil
}

// withCacheBuster appends a per-request token so intermediaries never serve
// a stale dataset release. Existing query parameters are preserved.
func (f *DataFetcher) withCacheBuster(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	query.Set("_cb", strconv.FormatInt(f.nowFunc().UnixNano(), 10))
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
