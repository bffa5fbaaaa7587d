// Package httpclient builds the outbound *http.Client shared by the CSV
// fetcher and the submission client.
package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ppiankov/questionbank/internal/model"
)

// DefaultTimeout is used when a zero timeout is configured
const DefaultTimeout = 30 * time.Second

// New returns a client with cfg's timeout and proxy settings.
// Redirects stop after 3 hops.
func New(cfg model.HTTPConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = ProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}
}

// ProxyFunc picks the configured proxy by scheme and falls back to
// HTTP_PROXY/HTTPS_PROXY/NO_PROXY when none is set.
func ProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
