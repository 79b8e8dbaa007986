package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNetwork is returned when the remote table store could not be reached
	// or answered with a server-side failure.
	ErrNetwork = errors.New("remote table store request failed")
	// ErrUnconfigured is returned for every call made while the table store
	// still carries its placeholder URL or key.
	ErrUnconfigured = fmt.Errorf("%w: table store is not configured (set SUPABASE_URL and SUPABASE_ANON_KEY)", ErrNetwork)
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("record not found")
)

// Row is implemented by every record kind stored in a remote table.
type Row interface {
	RowID() uuid.UUID
	Table() string
}

// FieldError describes a single rejected form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every field that failed validation. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}

	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Table names as exposed by the remote store.
const (
	TableCustomers           = "customers"
	TableEmployees           = "employees"
	TableEvents              = "events"
	TableIncomeRecords       = "income_records"
	TableExpenseRecords      = "expense_records"
	TableProfitDistributions = "profit_distributions"
	TableReceipts            = "receipts"
)
