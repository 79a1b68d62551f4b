package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ExportFormat is the JSON envelope for cache export/import, used to warm
// the cache between CLI runs.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry is a single cache entry; the value keeps its JSON form.
type ExportEntry struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// exportVersion is the envelope schema version.
const exportVersion = "1.0"

// Export writes the non-expired contents of a memory cache to w.
func Export[V any](w io.Writer, c *Memory[V], metadata map[string]string) error {
	data := c.Entries()
	entries := make([]ExportEntry, 0, len(data))
	for key, value := range data {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding entry %q: %w", key, err)
		}
		entries = append(entries, ExportEntry{Key: key, Value: raw})
	}

	export := ExportFormat{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ExportToFile exports the cache to a file at the caller-provided path.
func ExportToFile[V any](path string, c *Memory[V], metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return Export(f, c, metadata)
}

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Failed   int
}

// Import reads an export envelope from r and loads its entries into the
// cache. Entries that fail to decode are counted, not fatal.
func Import[V any](r io.Reader, c *Memory[V]) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}
	for _, e := range export.Entries {
		var value V
		if err := json.Unmarshal(e.Value, &value); err != nil {
			result.Failed++
			continue
		}
		if err := c.Set(e.Key, value); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}
	return result, nil
}

// ImportFromFile imports cache entries from a file at the caller-provided path.
func ImportFromFile[V any](path string, c *Memory[V]) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Import(f, c)
}
