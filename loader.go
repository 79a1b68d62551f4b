package finalenglish

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Translation table names.
const (
	TableUI           = "ui"
	TableContent      = "content"
	TableExplanations = "explanations"
)

// Default resource locations, relative to the fetcher root.
const (
	DefaultTranslationsPath = "data/translations"
	DefaultDataPath         = "data"
)

// LoadState is the lifecycle state of a lazily loaded resource.
type LoadState int

const (
	// LoadStateNotLoaded means no load has been attempted.
	LoadStateNotLoaded LoadState = iota
	// LoadStateLoading means a load is in flight.
	LoadStateLoading
	// LoadStateLoaded means the resource loaded successfully.
	LoadStateLoaded
	// LoadStateEmpty means the load failed and an empty result is
	// negative-cached for the process lifetime.
	LoadStateEmpty
)

// Loader lazily fetches static JSON resources. Each resource is loaded at
// most once per process: concurrent requests for the same resource share
// a single in-flight fetch, and a failed load is negative-cached as empty
// rather than retried.
type Loader struct {
	fetcher          Fetcher
	translationsPath string
	dataPath         string
	log              *slog.Logger

	group singleflight.Group

	mu        sync.Mutex
	states    map[string]LoadState
	resources map[string][]byte
	tables    map[string]Table
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithTranslationsPath overrides the translation table base path.
func WithTranslationsPath(path string) LoaderOption {
	return func(l *Loader) {
		l.translationsPath = path
	}
}

// WithDataPath overrides the data file base path.
func WithDataPath(path string) LoaderOption {
	return func(l *Loader) {
		l.dataPath = path
	}
}

// WithLoaderLogger sets the logger.
func WithLoaderLogger(log *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a Loader over the given fetcher.
func NewLoader(fetcher Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:          fetcher,
		translationsPath: DefaultTranslationsPath,
		dataPath:         DefaultDataPath,
		log:              slog.Default(),
		states:           make(map[string]LoadState),
		resources:        make(map[string][]byte),
		tables:           make(map[string]Table),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Translations returns the named translation table, loading it on first
// use. The result is never nil: a failed load yields an empty table and
// the table is not re-fetched within the process lifetime.
func (l *Loader) Translations(ctx context.Context, name string) Table {
	path := l.translationsPath + "/" + name + ".json"

	l.mu.Lock()
	if tbl, ok := l.tables[name]; ok {
		l.mu.Unlock()
		return tbl
	}
	l.mu.Unlock()

	data, ok := l.load(ctx, path)

	l.mu.Lock()
	defer l.mu.Unlock()
	if tbl, done := l.tables[name]; done {
		return tbl
	}

	tbl := Table{}
	if ok {
		if err := json.Unmarshal(data, &tbl); err != nil {
			l.log.Warn("failed to parse translation table, caching empty",
				"error", &LoadError{Resource: name, Path: path, Cause: err})
			tbl = Table{}
			l.states[path] = LoadStateEmpty
		}
	}
	l.tables[name] = tbl
	return tbl
}

// DataFile returns the raw bytes of the named data file (for example
// "technical-terms" or "synonyms"), loading it on first use with the same
// coalescing and negative-cache guarantees as Translations.
func (l *Loader) DataFile(ctx context.Context, name string) ([]byte, bool) {
	return l.load(ctx, l.dataPath+"/"+name+".json")
}

// State returns the load state of the resource at path.
func (l *Loader) State(path string) LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.states[path]
}

// TableState returns the load state of a translation table by name.
func (l *Loader) TableState(name string) LoadState {
	return l.State(l.translationsPath + "/" + name + ".json")
}

// load fetches the resource at path exactly once. The NotLoaded→Loading
// transition is guarded so only the first caller performs it; concurrent
// callers join the same flight and observe the same outcome.
func (l *Loader) load(ctx context.Context, path string) ([]byte, bool) {
	l.mu.Lock()
	switch l.states[path] {
	case LoadStateLoaded:
		data := l.resources[path]
		l.mu.Unlock()
		return data, true
	case LoadStateEmpty:
		l.mu.Unlock()
		return nil, false
	case LoadStateNotLoaded:
		l.states[path] = LoadStateLoading
	}
	l.mu.Unlock()

	v, _, _ := l.group.Do(path, func() (any, error) {
		// A caller can reach here after the original flight completed;
		// the terminal state must not be overwritten or re-fetched.
		l.mu.Lock()
		switch l.states[path] {
		case LoadStateLoaded:
			data := l.resources[path]
			l.mu.Unlock()
			return data, nil
		case LoadStateEmpty:
			l.mu.Unlock()
			return []byte(nil), nil
		}
		l.mu.Unlock()

		data, err := l.fetcher.Fetch(ctx, path)

		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			l.log.Warn("resource load failed, caching empty result",
				"error", &LoadError{Resource: path, Path: path, Cause: err})
			l.states[path] = LoadStateEmpty
			l.resources[path] = nil
			return []byte(nil), nil
		}
		l.states[path] = LoadStateLoaded
		l.resources[path] = data
		return data, nil
	})

	data := v.([]byte)
	return data, data != nil
}
