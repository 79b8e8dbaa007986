// Package recordstore keeps a local snapshot of one remote table and patches
// it from the server's answer to every write.
package recordstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
	"github.com/MrJamesThe3rd/eventdesk/internal/tablestore"
)

// Table is the remote side of a store.
type Table[T records.Row] interface {
	Name() string
	Select(ctx context.Context, order *tablestore.Order) ([]T, error)
	Insert(ctx context.Context, fields map[string]any) (T, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Payload is a validated set of column values for an insert or a patch.
type Payload interface {
	Validate() error
	Fields() map[string]any
}

// FetchOptions controls the server-side sort of FetchAll. An empty OrderBy
// leaves the order to the server.
type FetchOptions struct {
	OrderBy   string
	Ascending bool
}

// Ordered sorts by column ascending.
func Ordered(column string) FetchOptions {
	return FetchOptions{OrderBy: column, Ascending: true}
}

// Newest sorts by column descending.
func Newest(column string) FetchOptions {
	return FetchOptions{OrderBy: column}
}

type Store[T records.Row] struct {
	table  Table[T]
	logger *zap.Logger

	mu       sync.RWMutex
	rows     []T
	loaded   bool
	inFlight int
	err      string
	opts     FetchOptions
}

func New[T records.Row](table Table[T], logger *zap.Logger) *Store[T] {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store[T]{table: table, logger: logger.With(zap.String("table", table.Name()))}
}

// FetchAll replaces the cache with the full table. A failed fetch clears the
// cache and records the error instead of returning it.
func (s *Store[T]) FetchAll(ctx context.Context, opts FetchOptions) {
	s.mu.Lock()
	s.opts = opts
	s.inFlight++
	s.mu.Unlock()

	var order *tablestore.Order
	if opts.OrderBy != "" {
		order = &tablestore.Order{Column: opts.OrderBy, Ascending: opts.Ascending}
	}

	rows, err := s.table.Select(ctx, order)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight--

	if err != nil {
		s.logger.Warn("fetch failed", zap.Error(err))
		s.rows = nil
		s.loaded = false
		s.err = err.Error()

		return
	}

	if rows == nil {
		rows = []T{}
	}

	s.rows = rows
	s.loaded = true
	s.err = ""

	s.logger.Debug("fetched rows", zap.Int("count", len(rows)))
}

// Refetch repeats FetchAll with the options of the previous call.
func (s *Store[T]) Refetch(ctx context.Context) {
	s.mu.RLock()
	opts := s.opts
	s.mu.RUnlock()

	s.FetchAll(ctx, opts)
}

func (s *Store[T]) Create(ctx context.Context, payload Payload) (T, error) {
	var zero T

	if err := payload.Validate(); err != nil {
		s.fail(err)
		return zero, err
	}

	row, err := s.table.Insert(ctx, payload.Fields())
	if err != nil {
		err = fmt.Errorf("creating %s row: %w", s.table.Name(), err)
		s.fail(err)

		return zero, err
	}

	s.mu.Lock()
	s.rows = append(s.rows, row)
	s.mu.Unlock()

	s.logger.Info("row created", zap.Stringer("id", row.RowID()))

	return row, nil
}

func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, payload Payload) (T, error) {
	var zero T

	if err := payload.Validate(); err != nil {
		s.fail(err)
		return zero, err
	}

	row, err := s.table.Update(ctx, id, payload.Fields())
	if err != nil {
		err = fmt.Errorf("updating %s row %s: %w", s.table.Name(), id, err)
		s.fail(err)

		return zero, err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.rows[i] = row
	}
	s.mu.Unlock()

	s.logger.Info("row updated", zap.Stringer("id", id))

	return row, nil
}

// Remove deletes the row remotely and then drops it from the cache. Callers
// confirm with the user first; there is no undo.
func (s *Store[T]) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.table.Delete(ctx, id); err != nil {
		err = fmt.Errorf("deleting %s row %s: %w", s.table.Name(), id, err)
		s.fail(err)

		return err
	}

	s.mu.Lock()
	if s.rows != nil {
		s.rows = slices.DeleteFunc(s.rows, func(r T) bool { return r.RowID() == id })
	}
	s.mu.Unlock()

	s.logger.Info("row removed", zap.Stringer("id", id))

	return nil
}

// Rows returns a copy of the cache, nil until a fetch has succeeded.
func (s *Store[T]) Rows() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rows == nil {
		return nil
	}

	return slices.Clone(s.rows)
}

// Find returns the cached row with the given id.
func (s *Store[T]) Find(id uuid.UUID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.rows[i], true
	}

	var zero T

	return zero, false
}

func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inFlight > 0
}

// Err is the message of the last failed operation, empty after a successful
// fetch.
func (s *Store[T]) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

func (s *Store[T]) Name() string { return s.table.Name() }

func (s *Store[T]) fail(err error) {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()

	s.logger.Warn("write failed", zap.Error(err))
}

// indexOf must be called with mu held.
func (s *Store[T]) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.rows, func(r T) bool { return r.RowID() == id })
}
