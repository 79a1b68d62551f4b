// Command final-english localizes the study site's HTML pages for a
// presentation mode, resolving content from static JSON translation
// tables and data files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/lmittmann/tint"

	finalenglish "github.com/phoenixcrypto/final-english"
	"github.com/phoenixcrypto/final-english/cache"
	"github.com/phoenixcrypto/final-english/page"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = finalenglish.Version
	commit    = finalenglish.GitCommit
	buildDate = finalenglish.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("final-english", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	modeFlag := fs.String("mode", "", "Presentation mode (exam, study, beginner)")
	site := fs.String("site", "", "Site root directory holding data/ resources (default: working directory)")
	baseURL := fs.String("base-url", "", "Static site origin to fetch resources from (overrides -site)")
	output := fs.String("output", "", "Output file (default: stdout)")
	outputShort := fs.String("o", "", "Output file (short for --output)")
	cacheFile := fs.String("cache-file", "", "Warm-start cache file, imported before and exported after the run")
	prefsFile := fs.String("prefs", "", "Mode preference file (default: FE_PREFERENCE_PATH)")
	audit := fs.Bool("audit", false, "Report translation coverage instead of writing output")
	diffFile := fs.String("diff", "", "Compare key references with a previous page version")
	retries := fs.Int("retries", 0, "Retry transient fetch failures up to N times")
	rpm := fs.Int("rpm", 0, "Limit resource fetches to N requests per minute")
	jsonOutput := fs.Bool("json", false, "Output reports as JSON")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", finalenglish.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	if *outputShort != "" && *output == "" {
		*output = *outputShort
	}

	cfg, err := finalenglish.LoadConfig()
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}

	log := newLogger(stderr, cfg.LogLevel, *quiet)
	ctx := context.Background()

	// Resource backend
	var fetcher finalenglish.Fetcher
	switch {
	case *baseURL != "":
		fetcher = finalenglish.NewHTTPFetcher(*baseURL, http.DefaultClient)
	case cfg.BaseURL != "" && *site == "":
		fetcher = finalenglish.NewHTTPFetcher(cfg.BaseURL, http.DefaultClient)
	case *site != "":
		fetcher = finalenglish.NewFSFetcher(os.DirFS(*site))
	default:
		fetcher = finalenglish.NewFSFetcher(os.DirFS("."))
	}
	if *retries > 0 {
		retryCfg := finalenglish.DefaultRetryConfig()
		retryCfg.MaxRetries = *retries
		fetcher = finalenglish.NewRetryFetcher(fetcher, retryCfg)
	}
	if *rpm > 0 {
		fetcher = finalenglish.NewRateLimitedFetcher(fetcher, finalenglish.RateLimitConfig{
			RequestsPerMinute: *rpm,
		})
	}

	loader := finalenglish.NewLoader(fetcher,
		finalenglish.WithTranslationsPath(cfg.TranslationsPath),
		finalenglish.WithDataPath(cfg.DataPath),
		finalenglish.WithLoaderLogger(log),
	)

	contentCache := cache.NewMemory[finalenglish.Content](cfg.CacheSize, cfg.CacheTTL)
	if *cacheFile != "" {
		if result, err := cache.ImportFromFile(*cacheFile, contentCache); err == nil {
			log.Info("imported content cache",
				"file", *cacheFile, "imported", result.Imported, "failed", result.Failed)
		}
	}

	// Mode registry
	prefsPath := *prefsFile
	if prefsPath == "" {
		prefsPath = cfg.PreferencePath
	}
	var store finalenglish.PreferenceStore = finalenglish.NewMemoryStore()
	if prefsPath != "" {
		store = finalenglish.NewFileStore(prefsPath)
	}
	registry := finalenglish.NewRegistry(
		finalenglish.WithPreferenceStore(store),
		finalenglish.WithRegistryLogger(log),
	)
	registry.Init(ctx)
	switch {
	case *modeFlag != "":
		mode, ok := finalenglish.ParseMode(*modeFlag)
		if !ok {
			return fmt.Errorf("unknown mode %q (want exam, study, or beginner)", *modeFlag)
		}
		registry.SetMode(ctx, mode)
	case prefsPath == "":
		// No flag and no preference file: the configured default decides.
		registry.SetMode(ctx, cfg.Mode())
	}

	resolver := finalenglish.NewResolver(loader,
		finalenglish.WithRegistry(registry),
		finalenglish.WithContentCache(contentCache),
		finalenglish.WithResolverLogger(log),
	)
	localizer := page.NewLocalizer(resolver, page.WithLogger(log))

	// Input
	var input, inputName string
	if fs.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
		inputName = "stdin"
	} else {
		inputPath := fs.Arg(0)
		data, err := os.ReadFile(inputPath) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		input = string(data)
		inputName = inputPath
	}

	switch {
	case *diffFile != "":
		err = runDiff(localizer, input, *diffFile, *jsonOutput, stdout)
	case *audit:
		err = runAudit(ctx, localizer, input, *jsonOutput, stdout)
	default:
		err = runLocalize(ctx, localizer, registry.Mode(), input, inputName, *output, *jsonOutput, stdout, log)
	}
	if err != nil {
		return err
	}

	if *cacheFile != "" {
		if err := cache.ExportToFile(*cacheFile, contentCache, map[string]string{
			"source": inputName,
			"mode":   registry.Mode().String(),
		}); err != nil {
			log.Warn("failed to export content cache", "file", *cacheFile, "error", err)
		}
	}
	return nil
}

func runLocalize(ctx context.Context, localizer *page.Localizer, mode finalenglish.Mode,
	input, inputName, output string, jsonOutput bool, stdout io.Writer, log *slog.Logger) error {

	result, report, err := localizer.Localize(ctx, input, mode)
	if err != nil {
		return err
	}
	log.Info("localized page",
		"input", inputName, "mode", mode,
		"total", report.Total, "resolved", report.Resolved, "fallback", report.Fallback)

	if output != "" {
		if err := os.WriteFile(output, []byte(result), 0o644); err != nil { // #nosec G306 - published site content
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	if jsonOutput {
		return json.NewEncoder(stdout).Encode(map[string]any{
			"mode":    mode,
			"report":  report,
			"content": result,
		})
	}
	_, err = io.WriteString(stdout, result)
	return err
}

func runAudit(ctx context.Context, localizer *page.Localizer, input string, jsonOutput bool, stdout io.Writer) error {
	result, err := localizer.Audit(ctx, input)
	if err != nil {
		return err
	}
	if jsonOutput {
		return json.NewEncoder(stdout).Encode(result)
	}

	fmt.Fprintf(stdout, "translated:   %d\n", len(result.Translated))
	fmt.Fprintf(stdout, "english-only: %d\n", len(result.EnglishOnly))
	fmt.Fprintf(stdout, "unknown:      %d\n", len(result.Unknown))
	for _, ref := range result.EnglishOnly {
		fmt.Fprintf(stdout, "  missing translation: %s\n", refString(ref))
	}
	for _, ref := range result.Unknown {
		fmt.Fprintf(stdout, "  unknown key: %s\n", refString(ref))
	}
	return nil
}

func runDiff(localizer *page.Localizer, input, oldPath string, jsonOutput bool, stdout io.Writer) error {
	oldData, err := os.ReadFile(oldPath) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return fmt.Errorf("reading previous version: %w", err)
	}
	oldRefs, err := localizer.CollectKeys(string(oldData))
	if err != nil {
		return err
	}
	newRefs, err := localizer.CollectKeys(input)
	if err != nil {
		return err
	}

	diff := page.DiffKeys(oldRefs, newRefs)
	if jsonOutput {
		return json.NewEncoder(stdout).Encode(diff)
	}

	stats := diff.Stats()
	fmt.Fprintf(stdout, "added: %d  removed: %d  unchanged: %d\n",
		stats.Added, stats.Removed, stats.Unchanged)
	for _, ref := range diff.Added {
		fmt.Fprintf(stdout, "  + %s\n", refString(ref))
	}
	for _, ref := range diff.Removed {
		fmt.Fprintf(stdout, "  - %s\n", refString(ref))
	}
	return nil
}

func refString(ref page.KeyRef) string {
	if ref.Context != "" {
		return ref.Key + " (" + ref.Context + ")"
	}
	return ref.Key
}

func newLogger(w io.Writer, level string, quiet bool) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if quiet {
		lvl = slog.LevelWarn
	}
	return slog.New(tint.NewHandler(w, &tint.Options{Level: lvl}))
}
