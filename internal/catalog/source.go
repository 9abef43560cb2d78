package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// ErrEmptySource is returned when no catalog location was configured.
var ErrEmptySource = errors.New("catalog source not configured")

// maxDocumentBytes bounds the catalog body we are willing to decode.
const maxDocumentBytes = 256 << 20

// StatusError reports a non-success HTTP response from the catalog host.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog fetch %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Source fetches the raw catalog document.
type Source interface {
	Fetch(ctx context.Context) (*Document, error)
	String() string
}

// HTTPOptions tunes the retrying HTTP client.
type HTTPOptions struct {
	Timeout  time.Duration
	RetryMax int
	Logger   *zerolog.Logger
}

// HTTPSource downloads the catalog over HTTP(S) with bounded retries.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource builds a source backed by go-retryablehttp.
func NewHTTPSource(rawURL string, opts HTTPOptions) *HTTPSource {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = retryLogger{log: opts.Logger}
	if opts.Timeout > 0 {
		retryClient.HTTPClient.Timeout = opts.Timeout
	}

	return &HTTPSource{
		url:    rawURL,
		client: retryClient.StandardClient(),
	}
}

func (s *HTTPSource) String() string {
	return s.url
}

// Fetch performs the single catalog GET.
func (s *HTTPSource) Fetch(ctx context.Context) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: s.url, StatusCode: resp.StatusCode}
	}

	return decodeDocument(resp.Body, s.url)
}

// FileSource reads the catalog from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) String() string {
	return s.path
}

// Fetch reads and decodes the file. ctx is only checked before the read.
func (s *FileSource) Fetch(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", s.path, err)
	}
	defer f.Close()
	return decodeDocument(f, s.path)
}

// OpenSource picks an implementation from the location string.
func OpenSource(location string, opts HTTPOptions) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrEmptySource
	}

	u, err := url.Parse(location)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return NewHTTPSource(location, opts), nil
		case "file":
			p := u.Path
			if p == "" {
				p = u.Opaque
			}
			return NewFileSource(p), nil
		}
	}
	return NewFileSource(location), nil
}

func decodeDocument(r io.Reader, origin string) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(io.LimitReader(r, maxDocumentBytes))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", origin, err)
	}
	return &doc, nil
}

// retryLogger adapts zerolog to retryablehttp.LeveledLogger; only warnings
// and errors are kept.
type retryLogger struct {
	log *zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	if l.log != nil {
		l.log.Error().Fields(keysAndValues).Msg(msg)
	}
}

func (l retryLogger) Info(string, ...interface{}) {}

func (l retryLogger) Debug(string, ...interface{}) {}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	if l.log != nil {
		l.log.Warn().Fields(keysAndValues).Msg(msg)
	}
}
