package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReceiptStatus string

const (
	ReceiptPaid    ReceiptStatus = "paid"
	ReceiptPending ReceiptStatus = "pending"
)

// Receipt is a payment acknowledgement handed to a customer. ReceiptNumber
// is generated client-side and expected to be unique.
type Receipt struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	CustomerName  string          `json:"customer_name"`
	EventName     string          `json:"event_name"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Date          Date            `json:"date"`
	Status        ReceiptStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (r Receipt) RowID() uuid.UUID { return r.ID }
func (Receipt) Table() string      { return TableReceipts }
