package finalenglish

// TermEntry is a record from a static data file: a technical term with
// its definition, usage example, and synonyms.
type TermEntry struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
}

// Content is resolved bilingual content, composed per mode:
//
//   - Exam: Main is the matched English term, or the key verbatim when no
//     data file matched (Fallback set).
//   - Study: Main as in exam mode, Help carries the Arabic translation,
//     ShowHelp is set.
//   - Beginner: Main is the Arabic translation (or the English text when
//     no translation exists), English carries the exam-mode text,
//     Bilingual is set.
type Content struct {
	Mode      Mode       `json:"mode"`
	Main      string     `json:"main"`
	English   string     `json:"english,omitempty"`
	Help      string     `json:"help,omitempty"`
	ShowHelp  bool       `json:"showHelp,omitempty"`
	Bilingual bool       `json:"bilingual,omitempty"`
	Entry     *TermEntry `json:"entry,omitempty"`
	Fallback  bool       `json:"fallback,omitempty"`
}

// defaultContext is the cache-key placeholder for an absent context.
const defaultContext = "default"

// ContentCacheKey builds the cache key for a resolution request. Keys are
// the readable triple (mode, key, context-or-"default").
func ContentCacheKey(mode Mode, key, context string) string {
	if context == "" {
		context = defaultContext
	}
	return string(mode) + ":" + key + ":" + context
}
