package finalenglish

import (
	"context"
	"encoding/json"
	"strings"
)

// Static data file names, matched against content keys by prefix.
const (
	DataFileTechnicalTerms = "technical-terms"
	DataFileSynonyms       = "synonyms"
	DataFileReading        = "reading"
	DataFileGrammar        = "grammar"
)

// dataFilePrefixes maps key prefixes to the data file that serves them,
// in dispatch order.
var dataFilePrefixes = []string{
	DataFileTechnicalTerms,
	DataFileSynonyms,
	DataFileReading,
	DataFileGrammar,
}

// matchDataFile returns the data file responsible for a content key, or
// "" when no recognizable prefix matches.
func matchDataFile(key string) string {
	for _, prefix := range dataFilePrefixes {
		if strings.HasPrefix(key, prefix) {
			return prefix
		}
	}
	return ""
}

// termFile is the on-disk shape of technical-terms.json.
type termFile struct {
	Terms []TermEntry `json:"terms"`
}

// synonymFile is the on-disk shape of synonyms.json. The synonyms field
// is a single comma-separated string in the source data.
type synonymFile struct {
	Synonyms []struct {
		Term       string `json:"term"`
		Synonyms   string `json:"synonyms"`
		Definition string `json:"definition"`
		Example    string `json:"example"`
	} `json:"synonyms"`
}

// genericFile covers the reading/grammar resources, which carry their
// records under an "items" or "entries" array of the same term shape.
type genericFile struct {
	Items   []TermEntry `json:"items"`
	Entries []TermEntry `json:"entries"`
}

// lookupDataFile searches the data file serving key for a record whose
// term matches the key's last dot-segment, case-insensitively. The data
// file is loaded lazily through the coalescing loader.
func (r *Resolver) lookupDataFile(ctx context.Context, key string) (*TermEntry, bool) {
	file := matchDataFile(key)
	if file == "" {
		return nil, false
	}

	data, ok := r.loader.DataFile(ctx, file)
	if !ok {
		return nil, false
	}

	term := key
	if i := strings.LastIndex(key, "."); i >= 0 {
		term = key[i+1:]
	}

	entries := decodeDataFile(file, data)
	for i := range entries {
		if strings.EqualFold(entries[i].Term, term) {
			return &entries[i], true
		}
	}
	return nil, false
}

// decodeDataFile parses a data file payload into term entries. Malformed
// payloads decode to nothing; a miss is always a valid, displayable state.
func decodeDataFile(file string, data []byte) []TermEntry {
	switch file {
	case DataFileTechnicalTerms:
		var f termFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil
		}
		return f.Terms
	case DataFileSynonyms:
		var f synonymFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil
		}
		entries := make([]TermEntry, 0, len(f.Synonyms))
		for _, s := range f.Synonyms {
			entry := TermEntry{
				Term:       s.Term,
				Definition: s.Definition,
				Example:    s.Example,
			}
			for _, syn := range strings.Split(s.Synonyms, ",") {
				if syn = strings.TrimSpace(syn); syn != "" {
					entry.Synonyms = append(entry.Synonyms, syn)
				}
			}
			entries = append(entries, entry)
		}
		return entries
	default:
		var f genericFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil
		}
		if len(f.Items) > 0 {
			return f.Items
		}
		return f.Entries
	}
}
