package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

// ErrUnsupportedProxy indicates a proxy URL whose scheme cannot be dialed.
var ErrUnsupportedProxy = errors.New("unsupported proxy scheme")

// newTransport clones the default transport and routes it through proxyURL
// when set. Without a proxy the environment settings (HTTP_PROXY and friends)
// stay in effect.
func newTransport(proxyURL string) (*http.Transport, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL == "" {
		return t, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		t.Proxy = http.ProxyURL(u)

		return t, nil
	case "socks5", "socks5h":
		d, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create socks dialer: %w", err)
		}

		t.Proxy = nil

		if cd, ok := d.(proxy.ContextDialer); ok {
			t.DialContext = cd.DialContext
		} else {
			t.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return d.Dial(network, addr)
			}
		}

		return t, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProxy, u.Scheme)
	}
}
