// Package page applies resolved bilingual content to static HTML pages.
//
// Elements annotated with a data-i18n attribute name the content key to
// substitute; an optional data-i18n-ctx attribute disambiguates between
// translations registered under the same key. Subtrees under ignored tags
// or a data-no-translate attribute are left untouched.
package page

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	finalenglish "github.com/phoenixcrypto/final-english"
)

// Attribute names recognized on annotated elements.
const (
	AttrKey     = "data-i18n"
	AttrContext = "data-i18n-ctx"
	AttrSkip    = "data-no-translate"
	AttrEnglish = "data-english"
)

// IgnoredTags contains tags whose subtrees are never substituted.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// ContentSource resolves a content key for a mode. *finalenglish.Resolver
// satisfies it.
type ContentSource interface {
	GetContent(ctx context.Context, key, keyContext string, mode finalenglish.Mode) finalenglish.Content
}

// Report summarizes a localization pass.
type Report struct {
	Total    int // annotated elements visited
	Resolved int // elements whose key resolved to real content
	Fallback int // elements left with the key or English-only text
}

// Localizer substitutes resolved content into HTML documents.
type Localizer struct {
	source      ContentSource
	ignoredTags map[string]bool
	log         *slog.Logger
}

// Option configures a Localizer.
type Option func(*Localizer)

// WithIgnoredTags replaces the default set of ignored tags.
func WithIgnoredTags(tags []string) Option {
	return func(l *Localizer) {
		ignored := make(map[string]bool, len(tags))
		for _, tag := range tags {
			ignored[strings.ToLower(tag)] = true
		}
		l.ignoredTags = ignored
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Localizer) {
		l.log = log
	}
}

// NewLocalizer creates a Localizer over the given content source.
func NewLocalizer(source ContentSource, opts ...Option) *Localizer {
	l := &Localizer{
		source:      source,
		ignoredTags: IgnoredTags,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Localize substitutes content for every annotated element and sets the
// document's lang, dir, and mode indicators for the requested mode.
func (l *Localizer) Localize(ctx context.Context, src string, mode finalenglish.Mode) (string, *Report, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", nil, &finalenglish.PageError{Message: "failed to parse HTML", Cause: err}
	}

	report := &Report{}
	doc.Find("[" + AttrKey + "]").Each(func(_ int, sel *goquery.Selection) {
		if l.skip(sel) {
			return
		}
		key := sel.AttrOr(AttrKey, "")
		if key == "" {
			return
		}
		report.Total++

		c := l.source.GetContent(ctx, key, sel.AttrOr(AttrContext, ""), mode)
		l.apply(sel, c)

		if c.Fallback {
			report.Fallback++
		} else {
			report.Resolved++
		}
	})

	htmlTag := doc.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", mode.Lang())
		htmlTag.SetAttr("dir", string(mode.Direction()))
	}
	doc.Find("body").SetAttr("data-mode", mode.String())

	out, err := doc.Html()
	if err != nil {
		return "", nil, &finalenglish.PageError{Message: "failed to serialize HTML", Cause: err}
	}
	return out, report, nil
}

// apply writes resolved content into one element.
func (l *Localizer) apply(sel *goquery.Selection, c finalenglish.Content) {
	sel.SetText(c.Main)

	if c.ShowHelp && c.Help != "" {
		sel.SetAttr("title", c.Help)
	}
	if c.Bilingual && c.English != "" && c.English != c.Main {
		sel.SetAttr(AttrEnglish, c.English)
	}
}

// skip reports whether the element sits inside an ignored tag or a
// data-no-translate subtree.
func (l *Localizer) skip(sel *goquery.Selection) bool {
	if len(sel.Nodes) == 0 {
		return true
	}
	for n := sel.Nodes[0]; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if l.ignoredTags[strings.ToLower(n.Data)] {
			return true
		}
		for _, attr := range n.Attr {
			if attr.Key == AttrSkip {
				return true
			}
		}
	}
	return false
}

// CollectKeys extracts every substitutable key reference from a document,
// in document order, skipping excluded subtrees.
func (l *Localizer) CollectKeys(src string) ([]KeyRef, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, &finalenglish.PageError{Message: "failed to parse HTML", Cause: err}
	}

	var refs []KeyRef
	doc.Find("[" + AttrKey + "]").Each(func(_ int, sel *goquery.Selection) {
		if l.skip(sel) {
			return
		}
		key := sel.AttrOr(AttrKey, "")
		if key == "" {
			return
		}
		refs = append(refs, KeyRef{
			Key:     key,
			Context: sel.AttrOr(AttrContext, ""),
		})
	})
	return refs, nil
}
