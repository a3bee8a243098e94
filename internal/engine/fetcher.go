package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// ErrBodyTooLarge is returned by a fetched body once more than the fetcher's
// MaxBytes have arrived.
var ErrBodyTooLarge = errors.New(config.ErrBodyTooLarge)

// Credentials carries optional HTTP Basic Auth for remote vCard sources.
type Credentials struct {
	User string
	Pass string
}

func (c Credentials) empty() bool { return c.User == "" && c.Pass == "" }

// VCardFetcher defines the contract for retrieving remote vCard data.
type VCardFetcher interface {
	Fetch(ctx context.Context, url string, creds Credentials) (io.ReadCloser, error)
}

// HTTPFetcher downloads vCard sources over http(s).
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher returns a fetcher with the default timeout and size cap.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: config.HTTPTimeout},
		MaxBytes: config.MaxHTTPResponseSize,
	}
}

// Fetch opens a remote vCard stream. The returned body yields at most MaxBytes
// and then fails with ErrBodyTooLarge if the server still has more.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string, creds Credentials) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, logSafeURL(u)),
	)
	log.Debug(config.MsgFetchStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if !creds.empty() {
		req.SetBasicAuth(creds.User, creds.Pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrFetchStatus, resp.Status)
	}

	log.Info(config.MsgFetchBody, slog.Int64(config.LogKeyBytes, resp.ContentLength))
	return &cappedBody{body: resp.Body, left: f.MaxBytes, log: log}, nil
}

// logSafeURL drops the query and user info, which may carry secrets.
func logSafeURL(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

// cappedBody passes through up to left bytes of body. Hitting the cap with
// data still pending is an error, never a silent truncation.
type cappedBody struct {
	body io.ReadCloser
	left int64
	log  *slog.Logger
}

func (c *cappedBody) Read(p []byte) (int, error) {
	if c.left <= 0 {
		var extra [1]byte
		n, err := c.body.Read(extra[:])
		if n > 0 {
			c.log.Warn(config.MsgFetchCapped)
			return 0, ErrBodyTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > c.left {
		p = p[:c.left]
	}
	n, err := c.body.Read(p)
	c.left -= int64(n)
	return n, err
}

func (c *cappedBody) Close() error { return c.body.Close() }
