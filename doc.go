// Package finalenglish is the bilingual content engine behind the FINAL
// ENGLISH study site: an educational English site for Arabic speakers with
// three presentation modes (exam, study, beginner) controlling language
// mixing and reading direction.
//
// The engine resolves content by key from static JSON translation tables
// and data files, with a bounded, time-boxed in-memory cache, coalesced
// lazy loading, and graceful fallback to English when a translation is
// missing.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "os"
//
//	    finalenglish "github.com/phoenixcrypto/final-english"
//	    "github.com/phoenixcrypto/final-english/cache"
//	)
//
//	func main() {
//	    registry := finalenglish.NewRegistry(
//	        finalenglish.WithPreferenceStore(finalenglish.NewFileStore("prefs.json")),
//	    )
//	    registry.Init(context.Background())
//
//	    loader := finalenglish.NewLoader(finalenglish.NewFSFetcher(os.DirFS("site")))
//	    resolver := finalenglish.NewResolver(loader,
//	        finalenglish.WithRegistry(registry),
//	        finalenglish.WithContentCache(cache.NewMemory[finalenglish.Content](0, 0)),
//	    )
//
//	    c := resolver.GetContent(context.Background(), "ui.nav.home", "", finalenglish.ModeBeginner)
//	    println(c.Main)
//	}
package finalenglish
