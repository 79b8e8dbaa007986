package tablestore

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// Placeholder values used when the table store is not configured. Any call
// made with them fails with records.ErrUnconfigured.
const (
	PlaceholderURL = "https://your-project-id.supabase.co"
	PlaceholderKey = "your-anon-key-here"
)

// Order sorts a select by a single column.
type Order struct {
	Column    string
	Ascending bool
}

// Backend is a generic tabular data service addressed by table name. Rows
// travel as JSON objects so every driver decodes the same way.
//
//go:generate mockgen -source=tablestore.go -destination=backend_mock.go -package=tablestore
type Backend interface {
	Select(ctx context.Context, table string, order *Order) ([]json.RawMessage, error)
	Insert(ctx context.Context, table string, fields map[string]any) (json.RawMessage, error)
	Update(ctx context.Context, table string, id uuid.UUID, fields map[string]any) (json.RawMessage, error)
	Delete(ctx context.Context, table string, id uuid.UUID) error
}

// Table is a typed view over one remote table.
type Table[T records.Row] struct {
	backend Backend
	name    string
}

// Open returns the table holding rows of type T.
func Open[T records.Row](backend Backend) *Table[T] {
	var zero T
	return &Table[T]{backend: backend, name: zero.Table()}
}

func (t *Table[T]) Name() string { return t.name }

func (t *Table[T]) Select(ctx context.Context, order *Order) ([]T, error) {
	raws, err := t.backend.Select(ctx, t.name, order)
	if err != nil {
		return nil, err
	}

	rows := make([]T, 0, len(raws))

	for _, raw := range raws {
		row, err := decode[T](raw)
		if err != nil {
			return nil, fmt.Errorf("decoding %s row: %w", t.name, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (t *Table[T]) Insert(ctx context.Context, fields map[string]any) (T, error) {
	raw, err := t.backend.Insert(ctx, t.name, fields)
	if err != nil {
		var zero T
		return zero, err
	}

	return decode[T](raw)
}

func (t *Table[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (T, error) {
	raw, err := t.backend.Update(ctx, t.name, id, fields)
	if err != nil {
		var zero T
		return zero, err
	}

	return decode[T](raw)
}

func (t *Table[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return t.backend.Delete(ctx, t.name, id)
}

func decode[T any](raw json.RawMessage) (T, error) {
	var row T
	if err := json.Unmarshal(raw, &row); err != nil {
		return row, err
	}

	return row, nil
}

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkIdentifier(kind, name string) error {
	if !identifierPattern.MatchString(name) {
		return &records.ValidationError{Fields: []records.FieldError{{Field: kind, Message: fmt.Sprintf("invalid identifier %q", name)}}}
	}

	return nil
}

// IsPlaceholder reports whether url/key are missing or still the placeholders.
func IsPlaceholder(url, key string) bool {
	return url == "" || key == "" || url == PlaceholderURL || key == PlaceholderKey
}
