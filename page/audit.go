package page

import (
	"context"

	finalenglish "github.com/phoenixcrypto/final-english"
)

// KeyRef identifies one substitutable key on a page.
type KeyRef struct {
	Key     string
	Context string
}

func (k KeyRef) id() string {
	return k.Key + "\x00" + k.Context
}

// AuditResult classifies the keys referenced by a page by how they
// resolve for a mode.
type AuditResult struct {
	// Translated keys resolved with an Arabic translation.
	Translated []KeyRef
	// EnglishOnly keys resolved to English content but no translation.
	EnglishOnly []KeyRef
	// Unknown keys matched neither a data file nor a translation; the
	// page will show the key verbatim.
	Unknown []KeyRef
}

// Audit resolves every key a page references and reports which have
// translations, which fall back to English, and which are unknown. Keys
// are probed in study mode, the composition that carries both the English
// result and the Arabic help.
func (l *Localizer) Audit(ctx context.Context, src string) (*AuditResult, error) {
	refs, err := l.CollectKeys(src)
	if err != nil {
		return nil, err
	}

	result := &AuditResult{}
	for _, ref := range refs {
		c := l.source.GetContent(ctx, ref.Key, ref.Context, finalenglish.ModeStudy)
		switch {
		case c.Help != "":
			result.Translated = append(result.Translated, ref)
		case c.Fallback:
			result.Unknown = append(result.Unknown, ref)
		default:
			result.EnglishOnly = append(result.EnglishOnly, ref)
		}
	}
	return result, nil
}

// PageDiff is the key-level difference between two versions of a page,
// for incremental re-localization of the static site.
type PageDiff struct {
	// Added contains key references new to the second version.
	Added []KeyRef
	// Removed contains key references absent from the second version.
	Removed []KeyRef
	// Unchanged contains key references present in both versions.
	Unchanged []KeyRef
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Removed   int
	Unchanged int
}

// Stats returns summary statistics for the diff.
func (d *PageDiff) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
	}
}

// HasChanges returns true if there are any differences.
func (d *PageDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// DiffKeys compares the key references of two page versions. Only new
// keys need translations authored; removed keys can be retired from the
// tables.
func DiffKeys(oldRefs, newRefs []KeyRef) *PageDiff {
	oldSet := make(map[string]KeyRef, len(oldRefs))
	newSet := make(map[string]KeyRef, len(newRefs))
	for _, ref := range oldRefs {
		oldSet[ref.id()] = ref
	}
	for _, ref := range newRefs {
		newSet[ref.id()] = ref
	}

	diff := &PageDiff{}
	for _, ref := range oldRefs {
		if _, ok := newSet[ref.id()]; ok {
			diff.Unchanged = append(diff.Unchanged, ref)
		} else {
			diff.Removed = append(diff.Removed, ref)
		}
	}
	for _, ref := range newRefs {
		if _, ok := oldSet[ref.id()]; !ok {
			diff.Added = append(diff.Added, ref)
		}
	}
	return diff
}
