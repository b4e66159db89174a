package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/zap"
)

const (
	_maxImageSize   = 64 * 1024 * 1024 // APOD hdurl images can be large
	_maxJSONSize    = 1 * 1024 * 1024
	_userAgent      = "dailywall/1.0"
	_defaultTimeout = 30 * time.Second
)

// HTTPFetcher handles JSON metadata requests and image downloads
type HTTPFetcher struct {
	logger  *zap.Logger
	client  *http.Client
	maxSize int64
}

// NewHTTPFetcher creates a new HTTP-based fetcher instance
func NewHTTPFetcher(logger *zap.Logger, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = _defaultTimeout
	}
	return &HTTPFetcher{
		logger: logger,
		client: &http.Client{
			Timeout: timeout,
		},
		maxSize: _maxImageSize,
	}
}

// GetJSON requests url and decodes the JSON body into v
func (f *HTTPFetcher) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, _maxJSONSize)).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", domain.ErrFormat, redact(url), err)
	}
	return nil
}

// Download streams the image at url into dest.
// The body goes to a temp file in the same directory which is renamed over dest on success.
func (f *HTTPFetcher) Download(ctx context.Context, url, dest string) error {
	resp, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: url is not an image: %s", domain.ErrFormat, ct)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", domain.ErrIO, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, f.maxSize+1))
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrIO, dest, err)
	}
	if n > f.maxSize {
		return fmt.Errorf("%w: image exceeds %d bytes", domain.ErrFetch, f.maxSize)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("%w: moving download into place: %v", domain.ErrIO, err)
	}

	f.logger.Debug("Image downloaded", zap.Int64("bytes", n), zap.String("path", dest))
	return nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrFetch, err)
	}

	req.Header.Set("User-Agent", _userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		var ue *neturl.Error
		if errors.As(err, &ue) {
			ue.URL = redact(ue.URL)
		}
		return nil, fmt.Errorf("%w: network error: %w", domain.ErrFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrFetch, resp.StatusCode)
	}

	return resp, nil
}

// redact hides the api_key query value in logged URLs
func redact(url string) string {
	i := strings.Index(url, "api_key=")
	if i < 0 {
		return url
	}
	end := strings.IndexByte(url[i:], '&')
	if end < 0 {
		return url[:i] + "api_key=REDACTED"
	}
	return url[:i] + "api_key=REDACTED" + url[i+end:]
}
