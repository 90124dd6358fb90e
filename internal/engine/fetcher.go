package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// VCardFetcher defines the contract for retrieving vCard data.
// Credentials, when needed, travel in the URL userinfo.
type VCardFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher implements VCardFetcher with retries on transient failures
// (connection errors, 5xx, 429).
type HTTPFetcher struct {
	Client *retryablehttp.Client
}

// NewHTTPFetcher creates a fetcher with the configured timeout and retry policy.
func NewHTTPFetcher() *HTTPFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = config.HTTPRetryMax
	client.RetryWaitMin = config.HTTPRetryWaitMin
	client.RetryWaitMax = config.HTTPRetryWaitMax
	client.HTTPClient.Timeout = config.HTTPTimeout
	client.Logger = slog.Default().With(config.LogKeyComponent, config.CompFetcher)
	// Hand the last response back so the status check below reports it.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &HTTPFetcher{Client: client}
}

// Fetch retrieves vCard data from a remote URL.
// It sanitizes the URL for logging purposes to avoid leaking sensitive tokens.
// It enforces a maximum response size limit.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	// Security check: ensure strictly HTTP or HTTPS.
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	// Strip userinfo and query, which may carry secrets.
	safeURL := u.Scheme + "://" + u.Host + u.Path

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, safeURL),
	)
	log.Debug(config.MsgVCardStart)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if u.User != nil {
		pass, _ := u.User.Password()
		req.SetBasicAuth(u.User.Username(), pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close() // Ensure we don't leak resources on error.
		log.Warn(config.MsgVCardStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %d %s", config.ErrStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	log.Info(config.MsgVCardDownload, slog.Int64(config.LogKeyLength, resp.ContentLength))

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser keeps the original Closer while limiting the read size.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
