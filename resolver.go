package finalenglish

import (
	"context"
	"log/slog"
	"strings"
)

// ContentCache is the cache consulted before any table or data file load.
type ContentCache interface {
	// Get retrieves cached content. ok is false when absent or expired.
	Get(key string) (Content, bool)

	// Set stores resolved content.
	Set(key string, value Content) error
}

// Resolver resolves bilingual content by key, consulting a bounded cache
// before falling back to lazily loaded translation tables and data files.
// It depends on the Registry only for default-mode lookup and is fully
// testable with an explicit mode argument.
type Resolver struct {
	loader   *Loader
	cache    ContentCache
	registry *Registry
	log      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithContentCache sets the content cache.
func WithContentCache(cache ContentCache) ResolverOption {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithRegistry sets the mode registry used when no explicit mode is given.
func WithRegistry(registry *Registry) ResolverOption {
	return func(r *Resolver) {
		r.registry = registry
	}
}

// WithResolverLogger sets the logger.
func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver creates a Resolver over the given loader.
func NewResolver(loader *Loader, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		loader: loader,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetContent resolves content for key. An invalid or zero mode falls back
// to the registry's current mode, then to the default. The context string
// disambiguates between multiple translations under the same key; empty
// means the default. Resolution never fails: a miss everywhere yields a
// fallback whose text is the key itself.
func (r *Resolver) GetContent(ctx context.Context, key, keyContext string, mode Mode) Content {
	mode = r.resolveMode(mode)

	cacheKey := ContentCacheKey(mode, key, keyContext)
	if r.cache != nil {
		if c, ok := r.cache.Get(cacheKey); ok {
			return c
		}
	}

	var c Content
	switch mode {
	case ModeExam:
		c = r.examContent(ctx, key)
	case ModeStudy:
		exam := r.examContent(ctx, key)
		help, _ := r.ArabicTranslation(ctx, key, keyContext)
		c = Content{
			Mode:     mode,
			Main:     exam.Main,
			Help:     help,
			ShowHelp: true,
			Entry:    exam.Entry,
			Fallback: exam.Fallback,
		}
	case ModeBeginner:
		exam := r.examContent(ctx, key)
		main, ok := r.ArabicTranslation(ctx, key, keyContext)
		if !ok {
			main = exam.Main
		}
		c = Content{
			Mode:      mode,
			Main:      main,
			English:   exam.Main,
			Bilingual: true,
			Entry:     exam.Entry,
			Fallback:  exam.Fallback && !ok,
		}
	}

	if r.cache != nil {
		if err := r.cache.Set(cacheKey, c); err != nil {
			r.log.Warn("failed to cache content", "key", cacheKey, "error", err)
		}
	}
	return c
}

// examContent resolves the English-only form of a key: a data file record
// when one matches, otherwise the key verbatim as fallback text.
func (r *Resolver) examContent(ctx context.Context, key string) Content {
	if entry, ok := r.lookupDataFile(ctx, key); ok {
		return Content{
			Mode:  ModeExam,
			Main:  entry.Term,
			Entry: entry,
		}
	}
	return Content{
		Mode:     ModeExam,
		Main:     key,
		Fallback: true,
	}
}

// ArabicTranslation looks up the Arabic translation for key, trying the
// content table first and the ui table second. A simple miss reports
// absent; it is never an error.
func (r *Resolver) ArabicTranslation(ctx context.Context, key, keyContext string) (string, bool) {
	if s, ok := FindString(key, keyContext, r.loader.Translations(ctx, TableContent)); ok {
		return s, true
	}
	if s, ok := FindString(key, keyContext, r.loader.Translations(ctx, TableUI)); ok {
		return s, true
	}
	return "", false
}

// Explanation returns the explanation registered for term, matched
// case-insensitively against the top-level entries of the explanations
// table.
func (r *Resolver) Explanation(ctx context.Context, term string) (string, bool) {
	table := r.loader.Translations(ctx, TableExplanations)
	for k, v := range table {
		if !strings.EqualFold(k, term) {
			continue
		}
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// resolveMode picks the effective mode: the explicit argument when valid,
// else the registry's current mode, else the default.
func (r *Resolver) resolveMode(mode Mode) Mode {
	if mode.IsValid() {
		return mode
	}
	if r.registry != nil {
		return r.registry.Mode()
	}
	return DefaultMode
}
