package dataset

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ortelius/vulnview-backend/engine"
	"github.com/ortelius/vulnview-backend/model"
	"github.com/ortelius/vulnview-backend/scheduler"
)

// ErrNotLoaded is returned when a derived view is requested before the
// base dataset has been loaded
var ErrNotLoaded = errors.New("dataset: not loaded")

// Store is the session-scoped owner of the base dataset and everything
// derived from it. The base sequence is immutable after Load; metrics
// are computed exactly once; filter and sort produce new derived slices
// and never touch the base. Construct one Store per session and pass it
// down explicitly.
type Store struct {
	log       *zap.Logger
	sessionID string

	filterGuard *scheduler.Guard
	sortGuard   *scheduler.Guard
	debounce    *scheduler.Debouncer

	mu       sync.RWMutex
	base     []model.VulnerabilityRecord
	byID     map[string]int
	metrics  *model.VulnerabilityMetrics
	criteria model.FilterCriteria
	sortBy   string
	sortDir  model.SortDirection
	filtered []model.VulnerabilityRecord
	view     []model.VulnerabilityRecord
	compare  map[string]struct{}
	lastErr  error
}

// NewStore creates an empty session store. debounce applies to
// search-text changes; pass 0 for the default quiet period.
func NewStore(log *zap.Logger, debounce time.Duration) *Store {
	s := &Store{
		log:       log,
		sessionID: uuid.NewString(),
		compare:   make(map[string]struct{}),
		debounce:  scheduler.NewDebouncer(debounce),
	}
	s.filterGuard = scheduler.NewGuard("filter", log, nil, s.recordError)
	s.sortGuard = scheduler.NewGuard("sort", log, nil, s.recordError)
	return s
}

// SessionID identifies this store in logs
func (s *Store) SessionID() string { return s.sessionID }

// Load installs the base dataset and computes the session metrics in a
// single pass. It runs once per session; a second call replaces the
// session wholesale.
func (s *Store) Load(records []model.VulnerabilityRecord) {
	metrics := engine.ComputeMetrics(records)

	byID := make(map[string]int, len(records))
	for i := range records {
		byID[records[i].ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = records
	s.byID = byID
	s.metrics = &metrics
	s.criteria = model.FilterCriteria{}
	s.sortBy = ""
	s.sortDir = model.SortAscending
	s.filtered = records
	s.view = records
	s.compare = make(map[string]struct{})
	s.lastErr = nil

	s.log.Info("dataset loaded",
		zap.String("session", s.sessionID),
		zap.Int("records", metrics.Total))
}

// LoadFrom fetches, normalizes, and installs the dataset
func (s *Store) LoadFrom(ctx context.Context, loader *Loader) error {
	data, err := loader.Fetch(ctx)
	if err != nil {
		return err
	}
	records, err := engine.NormalizeJSON(data)
	if err != nil {
		return err
	}
	s.Load(records)
	return nil
}

// Base returns the immutable base dataset. Callers must treat it as
// read-only.
func (s *Store) Base() []model.VulnerabilityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base
}

// Metrics returns the session-cached aggregate metrics
func (s *Store) Metrics() (model.VulnerabilityMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.metrics == nil {
		return model.VulnerabilityMetrics{}, ErrNotLoaded
	}
	return *s.metrics, nil
}

// View returns the current derived view (filtered then sorted). The
// returned slice is replaced wholesale on every pass and is safe to
// iterate without holding the store.
func (s *Store) View() []model.VulnerabilityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// ViewState reports the parameters the current view was derived with
func (s *Store) ViewState() (model.FilterCriteria, string, model.SortDirection) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria, s.sortBy, s.sortDir
}

// Busy reports whether a filter or sort pass is in flight
func (s *Store) Busy() bool {
	return s.filterGuard.IsBusy() || s.sortGuard.IsBusy()
}

// LastError returns the most recent guarded-operation failure, if any.
// The previous view stays in place when a pass fails.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) recordError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// GuardedFilter schedules a filter pass with the given criteria. The
// current sort is re-applied so the view stays stable. Requests made
// while a pass is in flight coalesce to the newest criteria.
func (s *Store) GuardedFilter(criteria model.FilterCriteria) error {
	return s.filterGuard.Do(func(ctx context.Context) error {
		s.mu.RLock()
		base := s.base
		sortBy, sortDir := s.sortBy, s.sortDir
		s.mu.RUnlock()
		if base == nil {
			return ErrNotLoaded
		}

		filtered := engine.Filter(base, criteria)
		view := engine.Sort(filtered, sortBy, sortDir)

		// Never deliver to a torn-down consumer
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.mu.Lock()
		s.criteria = criteria
		s.filtered = filtered
		s.view = view
		s.lastErr = nil
		s.mu.Unlock()
		return nil
	})
}

// GuardedSort schedules a sort pass over the current filtered sequence
func (s *Store) GuardedSort(field string, direction model.SortDirection) error {
	return s.sortGuard.Do(func(ctx context.Context) error {
		s.mu.RLock()
		filtered := s.filtered
		s.mu.RUnlock()
		if filtered == nil {
			return ErrNotLoaded
		}

		view := engine.Sort(filtered, field, direction)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.mu.Lock()
		s.sortBy = field
		s.sortDir = direction
		s.view = view
		s.lastErr = nil
		s.mu.Unlock()
		return nil
	})
}

// SetSearch updates the text-search term behind the debounce quiet
// period, so a keystroke burst triggers at most one filter pass
func (s *Store) SetSearch(term string) {
	s.debounce.Trigger(func() {
		s.mu.RLock()
		criteria := s.criteria
		s.mu.RUnlock()
		criteria.Search = term
		if err := s.GuardedFilter(criteria); err != nil {
			s.log.Warn("debounced filter rejected", zap.Error(err))
		}
	})
}

// CompareAdd records a row in the comparison selection. Membership is
// keyed by record id so it stays valid as the view changes shape.
func (s *Store) CompareAdd(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	s.compare[id] = struct{}{}
	return true
}

// CompareRemove drops a row from the comparison selection
func (s *Store) CompareRemove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.compare, id)
}

// CompareSelection resolves the selected ids against the base dataset,
// in base order
func (s *Store) CompareSelection() []model.VulnerabilityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.VulnerabilityRecord, 0, len(s.compare))
	for i := range s.base {
		if _, ok := s.compare[s.base[i].ID]; ok {
			out = append(out, s.base[i])
		}
	}
	return out
}

// Close tears down the guards and the debouncer. In-flight passes are
// cancelled and their results discarded.
func (s *Store) Close() {
	s.debounce.Close()
	s.filterGuard.Close()
	s.sortGuard.Close()
}
