package engine

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// IsRemote reports whether source is an http(s) URL rather than a local path.
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, config.SchemeHTTP+"://") || strings.HasPrefix(lower, config.SchemeHTTPS+"://")
}

// OpenSource opens a local vCard file or downloads a remote one.
func OpenSource(ctx context.Context, source string, creds Credentials, fetcher VCardFetcher) (io.ReadCloser, error) {
	if source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if !IsRemote(source) {
		return os.Open(source)
	}
	if fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}
	return fetcher.Fetch(ctx, source, creds)
}
