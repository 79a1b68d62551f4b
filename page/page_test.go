package page

import (
	"context"
	"strings"
	"testing"

	finalenglish "github.com/phoenixcrypto/final-english"
)

// stubSource serves canned content keyed by (key, context) and records
// the modes it was asked for.
type stubSource struct {
	content map[string]finalenglish.Content
	modes   []finalenglish.Mode
}

func (s *stubSource) GetContent(_ context.Context, key, keyContext string, mode finalenglish.Mode) finalenglish.Content {
	s.modes = append(s.modes, mode)
	if c, ok := s.content[key+"/"+keyContext]; ok {
		c.Mode = mode
		return c
	}
	return finalenglish.Content{Mode: mode, Main: key, Fallback: true}
}

func newStubSource() *stubSource {
	return &stubSource{content: map[string]finalenglish.Content{
		"vocab.hello/": {Main: "Hello"},
		"vocab.hello.study/": {
			Main:     "Hello",
			Help:     "مرحبا",
			ShowHelp: true,
		},
		"vocab.hello.beginner/": {
			Main:      "مرحبا",
			English:   "Hello",
			Bilingual: true,
		},
		"greeting.morning/formal": {Main: "Good morning"},
	}}
}

func TestLocalize_Substitution(t *testing.T) {
	l := NewLocalizer(newStubSource())

	src := `<html><body><span data-i18n="vocab.hello">placeholder</span></body></html>`
	out, report, err := l.Localize(context.Background(), src, finalenglish.ModeExam)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}

	if !strings.Contains(out, ">Hello</span>") {
		t.Errorf("output missing substituted text:\n%s", out)
	}
	if report.Total != 1 || report.Resolved != 1 || report.Fallback != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestLocalize_FallbackKeepsKey(t *testing.T) {
	l := NewLocalizer(newStubSource())

	src := `<html><body><span data-i18n="unknown.key">x</span></body></html>`
	out, report, err := l.Localize(context.Background(), src, finalenglish.ModeExam)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}

	if !strings.Contains(out, ">unknown.key</span>") {
		t.Errorf("fallback should show the key verbatim:\n%s", out)
	}
	if report.Fallback != 1 {
		t.Errorf("report = %+v, want one fallback", report)
	}
}

func TestLocalize_StudyHelpTitle(t *testing.T) {
	l := NewLocalizer(newStubSource())

	src := `<html><body><span data-i18n="vocab.hello.study">x</span></body></html>`
	out, _, err := l.Localize(context.Background(), src, finalenglish.ModeStudy)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}

	if !strings.Contains(out, `title="مرحبا"`) {
		t.Errorf("study help should land in the title attribute:\n%s", out)
	}
	if !strings.Contains(out, ">Hello</span>") {
		t.Errorf("study main text should stay English:\n%s", out)
	}
}

func TestLocalize_BeginnerEnglishAttr(t *testing.T) {
	l := NewLocalizer(newStubSource())

	src := `<html><body><span data-i18n="vocab.hello.beginner">x</span></body></html>`
	out, _, err := l.Localize(context.Background(), src, finalenglish.ModeBeginner)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}

	if !strings.Contains(out, ">مرحبا</span>") {
		t.Errorf("beginner main text should be Arabic:\n%s", out)
	}
	if !strings.Contains(out, `data-english="Hello"`) {
		t.Errorf("beginner output should carry the English original:\n%s", out)
	}
}

func TestLocalize_DocumentAttributes(t *testing.T) {
	tests := []struct {
		mode finalenglish.Mode
		lang string
		dir  string
	}{
		{finalenglish.ModeExam, "en", "ltr"},
		{finalenglish.ModeStudy, "en", "ltr"},
		{finalenglish.ModeBeginner, "ar", "rtl"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			l := NewLocalizer(newStubSource())
			out, _, err := l.Localize(context.Background(), `<html><body></body></html>`, tt.mode)
			if err != nil {
				t.Fatalf("Localize failed: %v", err)
			}
			if !strings.Contains(out, `lang="`+tt.lang+`"`) {
				t.Errorf("missing lang=%q:\n%s", tt.lang, out)
			}
			if !strings.Contains(out, `dir="`+tt.dir+`"`) {
				t.Errorf("missing dir=%q:\n%s", tt.dir, out)
			}
			if !strings.Contains(out, `data-mode="`+string(tt.mode)+`"`) {
				t.Errorf("missing body data-mode:\n%s", out)
			}
		})
	}
}

func TestLocalize_ContextAttribute(t *testing.T) {
	l := NewLocalizer(newStubSource())

	src := `<html><body><span data-i18n="greeting.morning" data-i18n-ctx="formal">x</span></body></html>`
	out, _, err := l.Localize(context.Background(), src, finalenglish.ModeExam)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}

	if !strings.Contains(out, ">Good morning</span>") {
		t.Errorf("context attribute not forwarded to resolution:\n%s", out)
	}
}

func TestLocalize_SkipsExcludedSubtrees(t *testing.T) {
	l := NewLocalizer(newStubSource())

	src := `<html><body>
		<code><span data-i18n="vocab.hello">keep-code</span></code>
		<div data-no-translate><span data-i18n="vocab.hello">keep-marked</span></div>
		<span data-i18n="vocab.hello">replace-me</span>
	</body></html>`
	out, report, err := l.Localize(context.Background(), src, finalenglish.ModeExam)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}

	if !strings.Contains(out, "keep-code") {
		t.Error("content under an ignored tag was substituted")
	}
	if !strings.Contains(out, "keep-marked") {
		t.Error("content under data-no-translate was substituted")
	}
	if strings.Contains(out, "replace-me") {
		t.Error("unexcluded element was not substituted")
	}
	if report.Total != 1 {
		t.Errorf("report.Total = %d, want only the unexcluded element", report.Total)
	}
}

func TestLocalize_CustomIgnoredTags(t *testing.T) {
	l := NewLocalizer(newStubSource(), WithIgnoredTags([]string{"nav"}))

	src := `<html><body>
		<nav><span data-i18n="vocab.hello">keep-nav</span></nav>
		<code><span data-i18n="vocab.hello">code-now-fair-game</span></code>
	</body></html>`
	out, _, err := l.Localize(context.Background(), src, finalenglish.ModeExam)
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}

	if !strings.Contains(out, "keep-nav") {
		t.Error("custom ignored tag was substituted")
	}
	if strings.Contains(out, "code-now-fair-game") {
		t.Error("default ignored tags should be replaced, not merged")
	}
}

func TestCollectKeys(t *testing.T) {
	l := NewLocalizer(newStubSource())

	src := `<html><body>
		<span data-i18n="a">x</span>
		<span data-i18n="b" data-i18n-ctx="formal">x</span>
		<code><span data-i18n="hidden">x</span></code>
		<span data-i18n="">x</span>
	</body></html>`
	refs, err := l.CollectKeys(src)
	if err != nil {
		t.Fatalf("CollectKeys failed: %v", err)
	}

	want := []KeyRef{{Key: "a"}, {Key: "b", Context: "formal"}}
	if len(refs) != len(want) {
		t.Fatalf("refs = %+v, want %+v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("refs[%d] = %+v, want %+v", i, refs[i], want[i])
		}
	}
}
