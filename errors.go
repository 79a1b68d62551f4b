package finalenglish

import "fmt"

// LoadError indicates a translation table or data file failed to load
// (fetch failure, non-2xx response, or malformed JSON). Failed loads are
// negative-cached for the process lifetime; the error is logged, never
// surfaced to content lookups.
type LoadError struct {
	Resource string
	Path     string
	Cause    error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error (%s): %s: %v", e.Resource, e.Path, e.Cause)
	}
	return fmt.Sprintf("load error (%s): %s", e.Resource, e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// StorageError indicates a preference read/write failure. A read failure
// is treated as "no saved preference"; a write failure is logged and the
// in-memory state stays authoritative.
type StorageError struct {
	Op    string // "load" or "save"
	Cause error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error: %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("storage error: %s", e.Op)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// FetchError indicates an HTTP fetch of a static resource returned a
// non-2xx status.
type FetchError struct {
	Path       string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error: %s: status %d", e.Path, e.StatusCode)
}

// Retryable reports whether the failed fetch may succeed if reissued.
// Server errors and throttling are transient; client errors are not.
func (e *FetchError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// PageError indicates an HTML document could not be parsed or serialized.
type PageError struct {
	Message string
	Cause   error
}

func (e *PageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("page error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("page error: %s", e.Message)
}

func (e *PageError) Unwrap() error {
	return e.Cause
}
