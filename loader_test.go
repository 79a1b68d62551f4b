package finalenglish

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// countingFetcher records fetch counts per path and serves canned
// responses. An optional gate holds fetches open until released.
type countingFetcher struct {
	mu        sync.Mutex
	calls     map[string]int
	responses map[string][]byte
	errs      map[string]error
	gate      chan struct{}
}

func newCountingFetcher() *countingFetcher {
	return &countingFetcher{
		calls:     make(map[string]int),
		responses: make(map[string][]byte),
		errs:      make(map[string]error),
	}
}

func (f *countingFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	f.calls[path]++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	if data, ok := f.responses[path]; ok {
		return data, nil
	}
	return nil, errors.New("not found")
}

func (f *countingFetcher) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func TestLoader_TranslationsLoadsOnce(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.responses["data/translations/ui.json"] = []byte(`{"nav":{"home":"الرئيسية"}}`)

	l := NewLoader(fetcher)
	ctx := context.Background()

	tbl := l.Translations(ctx, TableUI)
	if s, ok := FindString("nav.home", "", tbl); !ok || s != "الرئيسية" {
		t.Errorf("lookup = (%q, %v)", s, ok)
	}

	l.Translations(ctx, TableUI)
	l.Translations(ctx, TableUI)

	if n := fetcher.count("data/translations/ui.json"); n != 1 {
		t.Errorf("table fetched %d times, want 1", n)
	}
	if st := l.TableState(TableUI); st != LoadStateLoaded {
		t.Errorf("state = %v, want Loaded", st)
	}
}

func TestLoader_ConcurrentLoadsCoalesce(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.responses["data/translations/ui.json"] = []byte(`{"k":"v"}`)
	fetcher.gate = make(chan struct{})

	l := NewLoader(fetcher)
	ctx := context.Background()

	const callers = 10
	var wg sync.WaitGroup
	results := make([]Table, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Translations(ctx, TableUI)
		}(i)
	}

	close(fetcher.gate)
	wg.Wait()

	if n := fetcher.count("data/translations/ui.json"); n != 1 {
		t.Errorf("concurrent callers caused %d fetches, want 1", n)
	}
	for i, tbl := range results {
		if s, ok := FindString("k", "", tbl); !ok || s != "v" {
			t.Errorf("caller %d got (%q, %v), want the shared table", i, s, ok)
		}
	}
}

func TestLoader_FailedLoadIsNegativeCached(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.errs["data/translations/content.json"] = errors.New("connection refused")

	l := NewLoader(fetcher)
	ctx := context.Background()

	tbl := l.Translations(ctx, TableContent)
	if tbl == nil {
		t.Fatal("failed load must still yield a usable (empty) table")
	}
	if _, ok := FindString("any.key", "", tbl); ok {
		t.Error("empty table should miss every key")
	}

	// A later call must not re-fetch within the process lifetime.
	l.Translations(ctx, TableContent)
	if n := fetcher.count("data/translations/content.json"); n != 1 {
		t.Errorf("failed table fetched %d times, want 1", n)
	}
	if st := l.TableState(TableContent); st != LoadStateEmpty {
		t.Errorf("state = %v, want Empty", st)
	}
}

func TestLoader_MalformedTableIsNegativeCached(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.responses["data/translations/ui.json"] = []byte(`{broken`)

	l := NewLoader(fetcher)
	tbl := l.Translations(context.Background(), TableUI)

	if len(tbl) != 0 {
		t.Errorf("malformed table should decode to empty, got %v", tbl)
	}
	if st := l.TableState(TableUI); st != LoadStateEmpty {
		t.Errorf("state = %v, want Empty", st)
	}
}

func TestLoader_DataFile(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.responses["data/technical-terms.json"] = []byte(`{"terms":[]}`)

	l := NewLoader(fetcher)
	ctx := context.Background()

	data, ok := l.DataFile(ctx, DataFileTechnicalTerms)
	if !ok || string(data) != `{"terms":[]}` {
		t.Errorf("DataFile = (%q, %v)", data, ok)
	}

	if _, ok := l.DataFile(ctx, DataFileSynonyms); ok {
		t.Error("missing data file should report absent")
	}
	// And stay absent without a re-fetch.
	l.DataFile(ctx, DataFileSynonyms)
	if n := fetcher.count("data/synonyms.json"); n != 1 {
		t.Errorf("missing data file fetched %d times, want 1", n)
	}
}

func TestLoader_CustomPaths(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.responses["i18n/ui.json"] = []byte(`{"k":"v"}`)

	l := NewLoader(fetcher, WithTranslationsPath("i18n"))
	tbl := l.Translations(context.Background(), TableUI)

	if s, ok := FindString("k", "", tbl); !ok || s != "v" {
		t.Errorf("lookup = (%q, %v)", s, ok)
	}
}

func TestLoadStateInitial(t *testing.T) {
	l := NewLoader(newCountingFetcher())
	if st := l.TableState(TableUI); st != LoadStateNotLoaded {
		t.Errorf("initial state = %v, want NotLoaded", st)
	}
}
