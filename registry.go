package finalenglish

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// setModeBudget is the soft time budget for a mode change including all
// subscriber callbacks. Overruns are logged, never failed.
const setModeBudget = 50 * time.Millisecond

// Snapshot is the registry state delivered to subscribers on every
// successful mode change.
type Snapshot struct {
	Mode           Mode
	Direction      Direction
	IsExamMode     bool
	ShowArabicHelp bool
	IsBilingual    bool
}

// SubscriberFunc receives a Snapshot after each mode change.
type SubscriberFunc func(Snapshot)

// PresentationSink receives presentation side effects of a mode change
// (direction and mode indicators for the surrounding environment). A real
// UI layer implements it; the default is a no-op.
type PresentationSink interface {
	Apply(mode Mode, dir Direction)
}

type noopSink struct{}

func (noopSink) Apply(Mode, Direction) {}

// Registry holds the current language mode, derives direction and display
// flags from it, persists the mode across sessions, and notifies
// subscribers of changes. Construct exactly one per process and pass it
// to the layers that need it.
type Registry struct {
	mu          sync.RWMutex
	mode        Mode
	dir         Direction
	initialized bool
	subs        []*subscriber

	store PreferenceStore
	sink  PresentationSink
	log   *slog.Logger
	now   func() time.Time
}

type subscriber struct {
	fn SubscriberFunc
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithPreferenceStore sets the preference persistence backend.
func WithPreferenceStore(store PreferenceStore) RegistryOption {
	return func(r *Registry) {
		r.store = store
	}
}

// WithPresentationSink sets the presentation side-effect target.
func WithPresentationSink(sink PresentationSink) RegistryOption {
	return func(r *Registry) {
		r.sink = sink
	}
}

// WithRegistryLogger sets the logger.
func WithRegistryLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry creates a Registry in the default mode. Call Init to load
// the persisted preference.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		mode:  DefaultMode,
		dir:   DefaultMode.Direction(),
		store: NewMemoryStore(),
		sink:  noopSink{},
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init loads the persisted preference and applies it. It is idempotent:
// repeated calls are no-ops. Any failure during load falls back silently
// to the default mode; Init never leaves the registry uninitialized.
func (r *Registry) Init(ctx context.Context) {
	r.mu.Lock()
	if r.initialized {
		r.mu.Unlock()
		return
	}

	mode := DefaultMode
	pref, ok, err := r.store.Load(ctx)
	switch {
	case err != nil:
		r.log.Warn("failed to load mode preference, using default",
			"error", err, "mode", mode)
	case ok && pref.Version == PreferenceSchemaVersion:
		if m, valid := ParseMode(string(pref.Mode)); valid {
			mode = m
		}
	case ok:
		// Schema changed since the record was written; discard it.
		r.log.Info("discarding stale mode preference",
			"stored_version", pref.Version, "version", PreferenceSchemaVersion)
	}

	r.mode = mode
	// Direction is always recomputed; a stored dir that disagrees with
	// the mode is never trusted.
	r.dir = mode.Direction()
	r.initialized = true
	snap := r.snapshotLocked()
	subs := r.subscribersLocked()
	r.mu.Unlock()

	r.sink.Apply(snap.Mode, snap.Direction)
	r.notify(subs, snap)
}

// SetMode switches the current mode. An invalid mode is silently replaced
// by the default. Setting the already-current mode is a no-op: no
// persistence write, no notification. Otherwise the new mode is applied,
// persisted, and all subscribers are notified synchronously before
// SetMode returns.
func (r *Registry) SetMode(ctx context.Context, mode Mode) {
	start := r.now()

	parsed, valid := ParseMode(string(mode))
	if !valid {
		r.log.Warn("invalid mode requested, substituting default",
			"requested", string(mode), "mode", parsed)
	}

	r.mu.Lock()
	if parsed == r.mode {
		r.mu.Unlock()
		return
	}
	r.applyLocked(parsed)
	snap := r.snapshotLocked()
	subs := r.subscribersLocked()
	r.mu.Unlock()

	r.sink.Apply(snap.Mode, snap.Direction)
	r.persist(ctx, snap)
	r.notify(subs, snap)

	if elapsed := r.now().Sub(start); elapsed > setModeBudget {
		r.log.Warn("mode change exceeded budget",
			"elapsed", elapsed, "budget", setModeBudget, "mode", snap.Mode)
	}
}

// Reset forces the mode back to the default, persisting and notifying
// unconditionally, even when the default is already current.
func (r *Registry) Reset(ctx context.Context) {
	r.mu.Lock()
	r.applyLocked(DefaultMode)
	snap := r.snapshotLocked()
	subs := r.subscribersLocked()
	r.mu.Unlock()

	r.sink.Apply(snap.Mode, snap.Direction)
	r.persist(ctx, snap)
	r.notify(subs, snap)
}

// Mode returns the current mode.
func (r *Registry) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// Direction returns the current reading direction.
func (r *Registry) Direction() Direction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dir
}

// ShouldShowArabicHelp reports whether the current mode displays Arabic help.
func (r *Registry) ShouldShowArabicHelp() bool {
	return r.Mode().ShowsArabicHelp()
}

// IsBilingual reports whether the current mode renders both languages.
func (r *Registry) IsBilingual() bool {
	return r.Mode().IsBilingual()
}

// IsExamMode reports whether the current mode is the exam mode.
func (r *Registry) IsExamMode() bool {
	return r.Mode() == ModeExam
}

// Initialized reports whether Init has completed.
func (r *Registry) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// Subscribe registers a callback invoked synchronously with a state
// snapshot on every successful mode change, including the one triggered
// by Init. The returned function unsubscribes exactly that callback and
// is safe to call more than once.
func (r *Registry) Subscribe(fn SubscriberFunc) (unsubscribe func()) {
	sub := &subscriber{fn: fn}

	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.subs {
			if s == sub {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				return
			}
		}
		// Already removed; unsubscribing twice is a no-op.
	}
}

// applyLocked sets mode and derived direction. Caller holds r.mu.
func (r *Registry) applyLocked(mode Mode) {
	r.mode = mode
	r.dir = mode.Direction()
}

func (r *Registry) snapshotLocked() Snapshot {
	return Snapshot{
		Mode:           r.mode,
		Direction:      r.dir,
		IsExamMode:     r.mode == ModeExam,
		ShowArabicHelp: r.mode.ShowsArabicHelp(),
		IsBilingual:    r.mode.IsBilingual(),
	}
}

func (r *Registry) subscribersLocked() []*subscriber {
	subs := make([]*subscriber, len(r.subs))
	copy(subs, r.subs)
	return subs
}

func (r *Registry) persist(ctx context.Context, snap Snapshot) {
	pref := Preference{
		Version:   PreferenceSchemaVersion,
		Mode:      snap.Mode,
		Dir:       snap.Direction,
		Timestamp: r.now().UnixMilli(),
	}
	if err := r.store.Save(ctx, pref); err != nil {
		r.log.Warn("failed to persist mode preference", "error", err, "mode", snap.Mode)
	}
}

// notify calls each subscriber in subscription order. A panicking
// subscriber is logged and the remaining subscribers are still notified.
func (r *Registry) notify(subs []*subscriber, snap Snapshot) {
	for _, sub := range subs {
		r.safeNotify(sub, snap)
	}
}

func (r *Registry) safeNotify(sub *subscriber, snap Snapshot) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("mode subscriber panicked", "panic", rec, "mode", snap.Mode)
		}
	}()
	sub.fn(snap)
}
