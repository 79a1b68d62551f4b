package page

import (
	"context"
	"testing"

	finalenglish "github.com/phoenixcrypto/final-english"
)

func TestAudit_Classification(t *testing.T) {
	src := &stubSource{content: map[string]finalenglish.Content{
		"vocab.hello/": {Main: "Hello", Help: "مرحبا", ShowHelp: true},
		"vocab.plain/": {Main: "Plain"},
	}}
	l := NewLocalizer(src)

	html := `<html><body>
		<span data-i18n="vocab.hello">x</span>
		<span data-i18n="vocab.plain">x</span>
		<span data-i18n="vocab.nowhere">x</span>
	</body></html>`
	result, err := l.Audit(context.Background(), html)
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}

	if len(result.Translated) != 1 || result.Translated[0].Key != "vocab.hello" {
		t.Errorf("Translated = %+v", result.Translated)
	}
	if len(result.EnglishOnly) != 1 || result.EnglishOnly[0].Key != "vocab.plain" {
		t.Errorf("EnglishOnly = %+v", result.EnglishOnly)
	}
	if len(result.Unknown) != 1 || result.Unknown[0].Key != "vocab.nowhere" {
		t.Errorf("Unknown = %+v", result.Unknown)
	}
}

func TestAudit_ProbesStudyMode(t *testing.T) {
	src := newStubSource()
	l := NewLocalizer(src)

	_, err := l.Audit(context.Background(), `<html><body><span data-i18n="vocab.hello">x</span></body></html>`)
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}

	for _, mode := range src.modes {
		if mode != finalenglish.ModeStudy {
			t.Errorf("audit probed mode %q, want study", mode)
		}
	}
}

func TestDiffKeys(t *testing.T) {
	oldRefs := []KeyRef{
		{Key: "a"},
		{Key: "b", Context: "formal"},
		{Key: "c"},
	}
	newRefs := []KeyRef{
		{Key: "a"},
		{Key: "b", Context: "casual"}, // context change counts as add+remove
		{Key: "d"},
	}

	diff := DiffKeys(oldRefs, newRefs)

	stats := diff.Stats()
	if stats.Added != 2 || stats.Removed != 2 || stats.Unchanged != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if !diff.HasChanges() {
		t.Error("HasChanges should be true")
	}
	if diff.Unchanged[0].Key != "a" {
		t.Errorf("Unchanged = %+v", diff.Unchanged)
	}
}

func TestDiffKeys_NoChanges(t *testing.T) {
	refs := []KeyRef{{Key: "a"}, {Key: "b"}}

	diff := DiffKeys(refs, refs)

	if diff.HasChanges() {
		t.Errorf("diff = %+v, want no changes", diff)
	}
	if len(diff.Unchanged) != 2 {
		t.Errorf("Unchanged = %+v", diff.Unchanged)
	}
}
