package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	ExpensePaid    ExpenseStatus = "paid"
	ExpensePending ExpenseStatus = "pending"
	ExpenseOverdue ExpenseStatus = "overdue"
)

type ExpenseRecord struct {
	ID            uuid.UUID       `json:"id"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Vendor        string          `json:"vendor"`
	PaymentMethod string          `json:"payment_method"`
	Date          Date            `json:"date"`
	ReceiptNumber string          `json:"receipt_number"`
	Status        ExpenseStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

func (r ExpenseRecord) RowID() uuid.UUID { return r.ID }
func (ExpenseRecord) Table() string      { return TableExpenseRecords }
