package catalog

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LocalePlaceholder is replaced by the requested locale in candidate URLs.
const LocalePlaceholder = "{locale}"

// maxCatalogBytes bounds how much of a catalog response we are willing to
// read; real catalogs are a few kilobytes.
const maxCatalogBytes = 1 << 20

// Loader fetches the localized trophy catalog from an ordered list of
// candidate URLs. The list exists to tolerate different base-path
// deployments of the site; the first URL answering 2xx with a parseable
// document wins.
type Loader struct {
	client     *http.Client
	candidates []string
	logger     *zap.Logger
}

func NewLoader(candidates []string, logger *zap.Logger) *Loader {
	return &Loader{
		client:     newCatalogHTTPClient(),
		candidates: candidates,
		logger:     logger,
	}
}

// newCatalogHTTPClient returns an HTTP client with timeouts tuned for
// fetching a small static asset.
func newCatalogHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		IdleConnTimeout:     30 * time.Second,
		MaxIdleConns:        4,
	}

	return &http.Client{
		Timeout:   10 * time.Second,
		Transport: transport,
	}
}

// Load returns the catalog for locale. It fails soft: when every candidate
// fails or returns garbage, the embedded fallback catalog is returned, so
// the result is always usable.
func (l *Loader) Load(ctx context.Context, locale string) []Definition {
	for _, candidate := range l.candidates {
		url := strings.ReplaceAll(candidate, LocalePlaceholder, locale)

		defs, err := l.fetch(ctx, url)
		if err != nil {
			l.logger.Debug("catalog source failed", zap.String("url", url), zap.Error(err))
			continue
		}

		l.logger.Info("trophy catalog loaded",
			zap.String("url", url),
			zap.String("locale", locale),
			zap.Int("trophies", len(defs)))
		return defs
	}

	if len(l.candidates) > 0 {
		l.logger.Error("all catalog sources failed, using embedded fallback",
			zap.String("locale", locale),
			zap.Int("sources", len(l.candidates)))
	}
	return Fallback(locale)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]Definition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, err
	}

	return Parse(body)
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return http.StatusText(e.status)
}
