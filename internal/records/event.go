package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventStatus tracks an event from first enquiry to completion.
type EventStatus string

const (
	EventPlanning   EventStatus = "planning"
	EventConfirmed  EventStatus = "confirmed"
	EventInProgress EventStatus = "in-progress"
	EventCompleted  EventStatus = "completed"
	EventCancelled  EventStatus = "cancelled"
)

// EventStatuses lists every status in lifecycle order.
var EventStatuses = []EventStatus{EventPlanning, EventConfirmed, EventInProgress, EventCompleted, EventCancelled}

// Event is a booked engagement. Customer and employee are referenced by name
// only; renaming either does not touch existing events.
type Event struct {
	ID            uuid.UUID       `json:"id"`
	EventName     string          `json:"event_name"`
	EventType     string          `json:"event_type"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	Location      string          `json:"location"`
	EventDate     Date            `json:"event_date"`
	EmployeeName  string          `json:"employee_name"`
	Budget        decimal.Decimal `json:"budget"`
	Description   string          `json:"description"`
	Status        EventStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

func (e Event) RowID() uuid.UUID { return e.ID }
func (Event) Table() string      { return TableEvents }
