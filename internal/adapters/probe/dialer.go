// internal/adapters/probe/dialer.go
package probe

import (
	"fmt"
	"net"
	"net/url"

	"golang.org/x/net/proxy"
)

// newDialer returns a direct dialer, or a SOCKS5 dialer when opts.ProxyURL is set.
func newDialer(opts Options) (proxy.ContextDialer, error) {
	direct := &net.Dialer{Timeout: opts.ConnectTimeout}
	if opts.ProxyURL == "" {
		return direct, nil
	}

	u, err := url.Parse(opts.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.ProxyURL, err)
	}
	if u.Scheme != "socks5" && u.Scheme != "socks5h" {
		return nil, fmt.Errorf("unsupported proxy scheme %q (want socks5)", u.Scheme)
	}

	d, err := proxy.FromURL(u, direct)
	if err != nil {
		return nil, fmt.Errorf("proxy %q: %w", opts.ProxyURL, err)
	}

	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("proxy %q does not support context dialing", opts.ProxyURL)
	}
	return cd, nil
}
