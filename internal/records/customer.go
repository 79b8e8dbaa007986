package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerStatus is the lifecycle flag of a customer.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// Customer is a client of the company. TotalEvents and TotalSpent are
// denormalized figures that no write path maintains automatically.
type Customer struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Company     string          `json:"company"`
	Address     string          `json:"address"`
	Notes       string          `json:"notes"`
	Status      CustomerStatus  `json:"status"`
	TotalEvents int             `json:"total_events"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	JoinDate    Date            `json:"join_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func (c Customer) RowID() uuid.UUID { return c.ID }
func (Customer) Table() string      { return TableCustomers }
