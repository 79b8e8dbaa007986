package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Performance is the latest review grade of an employee.
type Performance string

const (
	PerformanceExcellent        Performance = "excellent"
	PerformanceGood             Performance = "good"
	PerformanceAverage          Performance = "average"
	PerformanceNeedsImprovement Performance = "needs_improvement"
)

type Employee struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Position         string          `json:"position"`
	Department       string          `json:"department"`
	Salary           decimal.Decimal `json:"salary"`
	JoinDate         Date            `json:"join_date"`
	Address          string          `json:"address"`
	EmergencyContact string          `json:"emergency_contact"`
	Notes            string          `json:"notes"`
	Status           EmployeeStatus  `json:"status"`
	EventsHandled    int             `json:"events_handled"`
	Performance      Performance     `json:"performance"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"`
}

func (e Employee) RowID() uuid.UUID { return e.ID }
func (Employee) Table() string      { return TableEmployees }
