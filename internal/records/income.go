package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IncomeStatus string

const (
	IncomeReceived IncomeStatus = "received"
	IncomePending  IncomeStatus = "pending"
	IncomeOverdue  IncomeStatus = "overdue"
)

type IncomeRecord struct {
	ID            uuid.UUID       `json:"id"`
	EventName     string          `json:"event_name"`
	CustomerName  string          `json:"customer_name"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description"`
	Date          Date            `json:"date"`
	Status        IncomeStatus    `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

func (r IncomeRecord) RowID() uuid.UUID { return r.ID }
func (IncomeRecord) Table() string      { return TableIncomeRecords }
