// Package urlstate keeps a table view's query string in step with its filter instance.
//
// In-memory state changes immediately. Only the push of the encoded query is
// delayed, and only for edits that change nothing but filter values.
package urlstate

import (
	"sync"
	"time"

	"github.com/rebeliceyang/lazytable/internal/codec"
	"github.com/rebeliceyang/lazytable/internal/filter"
	"github.com/rebeliceyang/lazytable/internal/logger"
	"github.com/rebeliceyang/lazytable/internal/models"
)

// DefaultDebounce is the wait applied to value edits
const DefaultDebounce = 300 * time.Millisecond

// SyncOption configures a Syncer.
type SyncOption func(*Syncer)

// WithDebounce sets the wait for value-only edits.
func WithDebounce(wait time.Duration) SyncOption {
	return func(s *Syncer) {
		s.wait = wait
	}
}

// WithLogger sets the syncer logger.
func WithLogger(log logger.Logger) SyncOption {
	return func(s *Syncer) {
		s.log = log.Component("urlstate")
	}
}

// WithOnPush is called with the query string after every successful save.
// It may run on the debounce timer goroutine.
func WithOnPush(fn func(query string)) SyncOption {
	return func(s *Syncer) {
		s.onPush = fn
	}
}

// WithSorting sets the initial sort state.
func WithSorting(sorting models.SortingState) SyncOption {
	return func(s *Syncer) {
		s.sorting = sorting.Clone()
	}
}

// Syncer pushes encoded filter and sort state into a Store
type Syncer struct {
	store    Store
	defaults codec.Defaults
	wait     time.Duration
	debounce *Debouncer
	log      logger.Logger
	onPush   func(string)

	mu      sync.Mutex
	idle    *sync.Cond
	filters models.FiltersState
	sorting models.SortingState
	closed  bool
	// pushing is set while one goroutine owns the store; dirty asks it to save again.
	pushing bool
	dirty   bool

	unsubscribe func()
}

// NewSyncer subscribes to in. Call Close when the view goes away.
func NewSyncer(in *filter.Instance, store Store, defaults codec.Defaults, opts ...SyncOption) *Syncer {
	s := &Syncer{
		store:    store,
		defaults: defaults,
		wait:     DefaultDebounce,
		log:      logger.Nop(),
		filters:  in.State(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.idle = sync.NewCond(&s.mu)
	s.debounce = NewDebouncer(s.wait)
	s.unsubscribe = in.Subscribe(s.onChange)
	return s
}

// Query returns the encoded query for the current state, pushed or not
func (s *Syncer) Query() string {
	s.mu.Lock()
	state := codec.URLState{Filters: s.filters.Clone(), Sorting: s.sorting.Clone()}
	s.mu.Unlock()

	q, err := codec.EncodeString(state, s.defaults)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode query")
		return ""
	}
	return q
}

// Sorting returns the current sort state
func (s *Syncer) Sorting() models.SortingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorting.Clone()
}

// SetSorting replaces the sort state and pushes it immediately
func (s *Syncer) SetSorting(sorting models.SortingState) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.sorting = sorting.Clone()
	s.mu.Unlock()

	s.debounce.Cancel()
	s.push()
}

// Flush pushes a pending value edit now
func (s *Syncer) Flush() {
	s.debounce.Flush()
}

// Pending reports whether a value edit is waiting to be pushed
func (s *Syncer) Pending() bool {
	return s.debounce.Pending()
}

// Close unsubscribes and drops any pending push. A save already in
// progress is waited for; nothing is saved after Close returns.
func (s *Syncer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.unsubscribe()
	s.debounce.Stop()

	s.mu.Lock()
	for s.pushing {
		s.idle.Wait()
	}
	s.mu.Unlock()
}

func (s *Syncer) onChange(filters []models.Filter, join models.JoinOperator) {
	next := models.FiltersState{Filters: filters, JoinOperator: join}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	prev := s.filters
	s.filters = next.Clone()
	s.mu.Unlock()

	if ValueOnlyChange(prev, next) {
		s.debounce.Trigger(s.push)
		return
	}

	s.debounce.Cancel()
	s.push()
}

// push saves the state as it is now. Saves never overlap: while one is in
// progress, later pushes mark the syncer dirty and the running goroutine
// saves again with the newest state, so the store always ends on it.
func (s *Syncer) push() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.pushing {
		s.dirty = true
		s.mu.Unlock()
		return
	}
	s.pushing = true

	for {
		s.dirty = false
		state := codec.URLState{Filters: s.filters.Clone(), Sorting: s.sorting.Clone()}
		s.mu.Unlock()

		s.save(state)

		s.mu.Lock()
		if !s.dirty || s.closed {
			break
		}
	}

	s.pushing = false
	s.idle.Broadcast()
	s.mu.Unlock()
}

func (s *Syncer) save(state codec.URLState) {
	values, err := codec.Encode(state, s.defaults)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode query")
		return
	}
	if err := s.store.Save(values); err != nil {
		s.log.Error().Err(err).Msg("failed to save query")
		return
	}

	query := values.Encode()
	s.log.Debug().Str("query", query).Msg("pushed query")
	if s.onPush != nil {
		s.onPush(query)
	}
}

// ValueOnlyChange reports whether next differs from prev only in filter values
func ValueOnlyChange(prev, next models.FiltersState) bool {
	if prev.JoinOperator != next.JoinOperator || len(prev.Filters) != len(next.Filters) {
		return false
	}

	changed := false
	for i := range prev.Filters {
		p, n := prev.Filters[i], next.Filters[i]
		if p.ID != n.ID ||
			p.FieldID != n.FieldID ||
			p.Type != n.Type ||
			p.State.Operator != n.State.Operator ||
			p.State.IsActive != n.State.IsActive {
			return false
		}
		if !p.State.Value.Equal(n.State.Value) {
			changed = true
		}
	}
	return changed
}
