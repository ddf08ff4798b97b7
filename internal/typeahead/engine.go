package typeahead

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathanTyoung/wayfare-client/internal/geocode"
)

const (
	defaultMinQueryLength   = 3
	defaultDebounceInterval = 400 * time.Millisecond
)

// LookupFunc resolves a text query into candidate locations.
type LookupFunc func(ctx context.Context, query string) ([]geocode.Suggestion, error)

// Snapshot is an immutable view of the typeahead state, delivered to the
// update callback after every visible change.
type Snapshot struct {
	// Text is the current free-text field content.
	Text string
	// Suggestions is the list produced by the most recent applied lookup.
	Suggestions []geocode.Suggestion
	// Confirmed is the location the user explicitly picked, nil when the
	// text has diverged from any earlier pick.
	Confirmed *geocode.Suggestion
}

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	MinQueryLength   int
	DebounceInterval time.Duration
	// OnUpdate is invoked after every change to the visible state. It
	// runs on the goroutine that produced the change.
	OnUpdate func(Snapshot)
}

// Engine drives the location typeahead: keystrokes go in through
// SetText, debounced queries go out through the lookup, and responses
// are applied in issuance order. All state is single-owner and local to
// one form instance.
type Engine struct {
	logger   *zap.SugaredLogger
	lookup   LookupFunc
	minLen   int
	onUpdate func(Snapshot)

	debouncer *Debouncer
	seq       Sequencer

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	text        string
	suggestions []geocode.Suggestion
	confirmed   *geocode.Suggestion
}

// NewEngine creates a typeahead engine around the given lookup.
func NewEngine(logger *zap.SugaredLogger, lookup LookupFunc, opts Options) *Engine {
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = defaultMinQueryLength
	}
	if opts.DebounceInterval <= 0 {
		opts.DebounceInterval = defaultDebounceInterval
	}

	engine := &Engine{
		logger:   logger,
		lookup:   lookup,
		minLen:   opts.MinQueryLength,
		onUpdate: opts.OnUpdate,
	}
	engine.ctx, engine.cancel = context.WithCancel(context.Background())
	engine.debouncer = NewDebouncer(opts.DebounceInterval, engine.onQuiet)
	return engine
}

// SetText records a keystroke. Any confirmed location whose name no
// longer matches the text is invalidated before the next lookup can
// fire, so stale coordinates can never ride along with edited text.
func (e *Engine) SetText(text string) {
	e.mu.Lock()
	if e.confirmed != nil && e.confirmed.Name != text {
		e.confirmed = nil
	}
	e.text = text
	e.mu.Unlock()

	e.debouncer.Input(text)
}

// Select confirms a candidate from the suggestion list. The text field
// snaps to the candidate name and the suggestion list is cleared in the
// same step. Any lookup still pending or in flight for the pre-select
// text is discarded, so it cannot repopulate the list the pick just
// closed.
func (e *Engine) Select(candidate geocode.Suggestion) {
	e.mu.Lock()
	picked := candidate
	e.confirmed = &picked
	e.text = candidate.Name
	e.suggestions = nil
	// Supersede an in-flight lookup for the old text.
	e.seq.Next()
	snap := e.snapshotLocked()
	e.mu.Unlock()

	// The pick is a text change like any other: routing it through the
	// debouncer replaces a pending query, and the quiet-window callback
	// then lands on the confirmed-text skip.
	e.debouncer.Input(candidate.Name)

	e.notify(snap)
}

// Invalidate clears the confirmed location without touching the text.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.confirmed = nil
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
}

// Confirmed returns a copy of the confirmed location, or nil.
func (e *Engine) Confirmed() *geocode.Suggestion {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.confirmed == nil {
		return nil
	}
	confirmed := *e.confirmed
	return &confirmed
}

// Snapshot returns the current visible state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Close stops the debouncer and cancels any in-flight lookups.
func (e *Engine) Close() {
	e.debouncer.Stop()
	e.cancel()
}

// onQuiet runs once the text has been stable for the debounce interval.
// Token issuance and the skip checks share the engine mutex with result
// application, so a response can never be applied after a newer query
// was admitted.
func (e *Engine) onQuiet(query string) {
	e.mu.Lock()

	if utf8.RuneCountInString(strings.TrimSpace(query)) < e.minLen {
		// Too short to query. Bump the sequence so any lookup still in
		// flight for an older, longer query cannot repopulate the list.
		e.seq.Next()
		changed := len(e.suggestions) > 0
		e.suggestions = nil
		snap := e.snapshotLocked()
		e.mu.Unlock()
		if changed {
			e.notify(snap)
		}
		return
	}

	if e.confirmed != nil && e.confirmed.Name == query {
		// The user just picked this exact value; re-querying it would
		// only reopen a dropdown they closed.
		e.mu.Unlock()
		return
	}

	token := e.seq.Next()
	e.mu.Unlock()

	lookupCtr.Inc()
	go e.run(token, query)
}

// run performs a single lookup and applies the result only if no newer
// lookup was issued in the meantime.
func (e *Engine) run(token uint64, query string) {
	results, err := e.lookup(e.ctx, query)

	e.mu.Lock()
	if !e.seq.Current(token) {
		e.mu.Unlock()
		staleDropCtr.Inc()
		e.logger.Debugw("Dropping superseded lookup", "query", query)
		return
	}

	if err != nil {
		// Degrade to an empty list. The failure is not surfaced; the
		// next keystroke retries naturally.
		lookupFailureCtr.Inc()
		e.logger.Debugw("Lookup failed, suggestions cleared", "query", query, "error", err)
		e.suggestions = nil
	} else {
		e.suggestions = results
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{Text: e.text}
	if len(e.suggestions) > 0 {
		snap.Suggestions = append([]geocode.Suggestion(nil), e.suggestions...)
	}
	if e.confirmed != nil {
		confirmed := *e.confirmed
		snap.Confirmed = &confirmed
	}
	return snap
}

func (e *Engine) notify(snap Snapshot) {
	if e.onUpdate != nil {
		e.onUpdate(snap)
	}
}
