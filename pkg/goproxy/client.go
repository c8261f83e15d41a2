// Package goproxy downloads module zip archives from the Go module proxy
// chain configured through GOPROXY.
package goproxy

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/module"

	"github.com/apisurf-labs/apisurf/pkg/errors"
)

const (
	defaultProxy      = "https://proxy.golang.org,direct"
	httpClientTimeout = 30 * time.Second
	defaultUserAgent  = "apisurf/0.1.0"
)

// Client downloads module zip files from the Go module proxy.
type Client struct {
	httpClient *http.Client
	userAgent  string
	proxies    []string
	logger     *log.Logger
}

// NewClient creates a Client that reads the GOPROXY environment variable to
// determine the proxy chain, defaulting to "https://proxy.golang.org,direct".
func NewClient() *Client {
	goproxy := os.Getenv("GOPROXY")
	if strings.TrimSpace(goproxy) == "" {
		goproxy = defaultProxy
	}

	// GOPROXY is a comma- or pipe-separated list of proxy URLs.
	normalized := strings.ReplaceAll(goproxy, "|", ",")

	var proxies []string
	for _, p := range strings.Split(normalized, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			proxies = append(proxies, trimmed)
		}
	}

	return &Client{
		httpClient: &http.Client{Timeout: httpClientTimeout},
		userAgent:  defaultUserAgent,
		proxies:    proxies,
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "goproxy"}),
	}
}

// DownloadZip fetches the zip archive for module@version from the proxy
// chain and returns the raw zip bytes.
func (c *Client) DownloadZip(ctx context.Context, mod, version string) ([]byte, error) {
	escapedMod, err := module.EscapePath(mod)
	if err != nil {
		return nil, errors.Wrapf(err, "escaping module path %q", mod)
	}

	for i, proxy := range c.proxies {
		switch proxy {
		case "direct":
			c.logger.Warn("direct mode not supported, skipping proxy entry")
			continue
		case "off":
			return nil, errors.Newf("module %s@%s not found: proxy chain contains 'off'", mod, version)
		}

		zipURL := proxy + "/" + escapedMod + "/@v/" + version + ".zip"

		data, tryNext, fetchErr := c.fetch(ctx, zipURL)
		if fetchErr == nil {
			return data, nil
		}

		if tryNext && i < len(c.proxies)-1 {
			c.logger.Warn("proxy failed, trying next", "url", zipURL, "err", fetchErr)
			continue
		}

		return nil, fetchErr
	}

	return nil, errors.Newf("module %s@%s not found on any proxy", mod, version)
}

// fetch performs a single HTTP GET. tryNext signals that the caller should
// attempt the next proxy in the chain.
func (c *Client) fetch(ctx context.Context, url string) (data []byte, tryNext bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errors.Wrapf(err, "building request for %s", url)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network-level error; the next proxy may still work.
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, true, errors.Newf("proxy returned %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return nil, false, errors.Newf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading response body from %s", url)
	}

	return body, false, nil
}
