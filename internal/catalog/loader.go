package catalog

import (
	"context"
	"sync"
	"time"
)

// LoadRequest describes one catalog fetch.
type LoadRequest struct {
	Token    int
	Source   Source
	Paths    PathOptions
	Callback func(LoadResult)
}

// LoadResult is delivered once the fetch completes, unless it was cancelled.
type LoadResult struct {
	Token   int
	Entries []Entry
	Elapsed time.Duration
	Source  string
	Err     error
}

// Loader fetches catalogs asynchronously. A cancelled token never reaches its
// callback.
type Loader interface {
	Start(req LoadRequest)
	Cancel(token int)
	CancelAll()
}

// NewAsyncLoader constructs the default goroutine-based loader.
func NewAsyncLoader() Loader {
	return &asyncLoader{
		jobs: make(map[int]context.CancelFunc),
	}
}

type asyncLoader struct {
	mu   sync.Mutex
	jobs map[int]context.CancelFunc
}

func (l *asyncLoader) Start(req LoadRequest) {
	if req.Token == 0 || req.Source == nil || req.Callback == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	l.jobs[req.Token] = cancel
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			delete(l.jobs, req.Token)
			l.mu.Unlock()
			cancel()
		}()

		started := time.Now()
		doc, err := req.Source.Fetch(ctx)

		select {
		case <-ctx.Done():
			return
		default:
		}

		result := LoadResult{
			Token:   req.Token,
			Elapsed: time.Since(started),
			Source:  req.Source.String(),
			Err:     err,
		}
		if err == nil && doc != nil {
			result.Entries = Normalize(doc.Entries, req.Paths)
		}
		req.Callback(result)
	}()
}

func (l *asyncLoader) Cancel(token int) {
	l.mu.Lock()
	if cancel, ok := l.jobs[token]; ok {
		cancel()
		delete(l.jobs, token)
	}
	l.mu.Unlock()
}

func (l *asyncLoader) CancelAll() {
	l.mu.Lock()
	for token, cancel := range l.jobs {
		cancel()
		delete(l.jobs, token)
	}
	l.mu.Unlock()
}

// Load fetches and normalizes a catalog synchronously.
func Load(ctx context.Context, src Source, paths PathOptions) ([]Entry, error) {
	if src == nil {
		return nil, ErrEmptySource
	}
	doc, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return Normalize(doc.Entries, paths), nil
}
