// Package fetcher downloads subscription sources one request at a time.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"submerge/pkg/utils"
)

// Defaults applied to zero-valued Options.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0"
)

// Options configures a Fetcher.
type Options struct {
	Headers      map[string]string
	UserAgent    string
	Proxy        string
	Timeout      time.Duration
	MaxBodyBytes int64 // 0 means unlimited
}

// Result is a successfully fetched source body.
type Result struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
	Size        int64
	Duration    time.Duration
}

// Fetcher performs one GET per source. A failed source is not retried.
type Fetcher struct {
	client *http.Client
	opts   Options
}

// New creates a fetcher with its own transport built from opts.
func New(opts Options) (*Fetcher, error) {
	opts = withDefaults(opts)

	transport, err := newTransport(opts.Proxy)
	if err != nil {
		return nil, err
	}

	return NewWithClient(&http.Client{Transport: transport}, opts), nil
}

// NewWithClient creates a fetcher around an existing client. The client's
// timeout is replaced by opts.Timeout.
func NewWithClient(client *http.Client, opts Options) *Fetcher {
	opts = withDefaults(opts)

	c := *client
	c.Timeout = opts.Timeout

	return &Fetcher{client: &c, opts: opts}
}

func withDefaults(opts Options) Options {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	return opts
}

// Fetch retrieves rawURL and returns its body as text. Invalid UTF-8 sequences
// in the body are dropped. http and https URLs are requested, file URLs are
// read from disk; anything else fails with KindUnsupportedScheme.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: KindInvalidURL, Cause: err}
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, rawURL)
	case "file":
		return f.readFile(rawURL, u)
	default:
		return nil, &FetchError{
			URL:   rawURL,
			Kind:  KindUnsupportedScheme,
			Cause: fmt.Errorf("scheme %q is not http, https or file", u.Scheme),
		}
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) (*Result, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: KindInvalidURL, Cause: err}
	}

	req.Header = utils.BuildHeaders(f.opts.UserAgent, f.opts.Headers)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: classify(err, KindNetwork), Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			URL:        rawURL,
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode),
		}
	}

	body, err := f.readBody(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: readErrorKind(err), StatusCode: resp.StatusCode, Cause: err}
	}

	return &Result{
		URL:         rawURL,
		Body:        strings.ToValidUTF8(string(body), ""),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		Size:        int64(len(body)),
		Duration:    time.Since(startTime),
	}, nil
}

// readBody reads at most MaxBodyBytes+1 bytes to detect overflow deterministically.
func (f *Fetcher) readBody(r io.Reader) ([]byte, error) {
	if f.opts.MaxBodyBytes <= 0 {
		return io.ReadAll(r)
	}

	body, err := io.ReadAll(io.LimitReader(r, f.opts.MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}

	if int64(len(body)) > f.opts.MaxBodyBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, f.opts.MaxBodyBytes)
	}

	return body, nil
}

// readFile serves file:// sources from the local filesystem.
func (f *Fetcher) readFile(rawURL string, u *url.URL) (*Result, error) {
	startTime := time.Now()

	if u.Host != "" && u.Host != "localhost" {
		return nil, &FetchError{
			URL:   rawURL,
			Kind:  KindInvalidURL,
			Cause: fmt.Errorf("file url host %q is not local", u.Host),
		}
	}

	file, err := os.Open(u.Path)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: KindRead, Cause: err}
	}
	defer file.Close()

	body, err := f.readBody(file)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: readErrorKind(err), Cause: err}
	}

	return &Result{
		URL:      rawURL,
		Body:     strings.ToValidUTF8(string(body), ""),
		Size:     int64(len(body)),
		Duration: time.Since(startTime),
	}, nil
}
