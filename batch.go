package finalenglish

import (
	"context"
	"sync"
)

// BatchLoad resolves all keys concurrently under the same mode and
// returns a map from each input key to its content. The mode is resolved
// once up front so a registry change mid-batch cannot mix modes.
func (r *Resolver) BatchLoad(ctx context.Context, keys []string, mode Mode) map[string]Content {
	mode = r.resolveMode(mode)

	results := make([]Content, len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			results[i] = r.GetContent(ctx, key, "", mode)
		}(i, key)
	}
	wg.Wait()

	out := make(map[string]Content, len(keys))
	for i, key := range keys {
		out[key] = results[i]
	}
	return out
}
