package forms

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/recordstore"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

type Customer struct {
	Name    string                 `json:"name" validate:"required"`
	Email   string                 `json:"email" validate:"required,email"`
	Phone   string                 `json:"phone" validate:"min=10"`
	Company string                 `json:"company"`
	Address string                 `json:"address"`
	Notes   string                 `json:"notes"`
	Status  records.CustomerStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

func CustomerFrom(c records.Customer) Customer {
	return Customer{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Address: c.Address,
		Notes:   c.Notes,
		Status:  c.Status,
	}
}

func (f Customer) editable() map[string]any {
	return map[string]any{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"company": f.Company,
		"address": f.Address,
		"notes":   f.Notes,
	}
}

// Insert fills the columns a new customer starts with.
func (f Customer) Insert(today records.Date) recordstore.Payload {
	fields := f.editable()
	fields["status"] = orDefault(f.Status, records.CustomerActive)
	fields["total_events"] = 0
	fields["total_spent"] = decimal.Zero
	fields["join_date"] = today

	return payload{form: f, fields: fields}
}

func (f Customer) Patch() recordstore.Payload {
	fields := f.editable()
	if f.Status != "" {
		fields["status"] = f.Status
	}

	return payload{form: f, fields: fields}
}

type Employee struct {
	Name             string                 `json:"name" validate:"required"`
	Email            string                 `json:"email" validate:"required,email"`
	Phone            string                 `json:"phone" validate:"min=10"`
	Position         string                 `json:"position" validate:"required"`
	Department       string                 `json:"department" validate:"required"`
	Salary           decimal.Decimal        `json:"salary" validate:"gte=0"`
	JoinDate         records.Date           `json:"join_date" validate:"required"`
	Address          string                 `json:"address"`
	EmergencyContact string                 `json:"emergency_contact"`
	Notes            string                 `json:"notes"`
	Status           records.EmployeeStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Performance      records.Performance    `json:"performance" validate:"omitempty,oneof=excellent good average needs_improvement"`
}

func EmployeeFrom(e records.Employee) Employee {
	return Employee{
		Name:             e.Name,
		Email:            e.Email,
		Phone:            e.Phone,
		Position:         e.Position,
		Department:       e.Department,
		Salary:           e.Salary,
		JoinDate:         e.JoinDate,
		Address:          e.Address,
		EmergencyContact: e.EmergencyContact,
		Notes:            e.Notes,
		Status:           e.Status,
		Performance:      e.Performance,
	}
}

func (f Employee) editable() map[string]any {
	return map[string]any{
		"name":              f.Name,
		"email":             f.Email,
		"phone":             f.Phone,
		"position":          f.Position,
		"department":        f.Department,
		"salary":            f.Salary,
		"join_date":         f.JoinDate,
		"address":           f.Address,
		"emergency_contact": f.EmergencyContact,
		"notes":             f.Notes,
	}
}

func (f Employee) Insert() recordstore.Payload {
	fields := f.editable()
	fields["status"] = orDefault(f.Status, records.EmployeeActive)
	fields["events_handled"] = 0
	fields["performance"] = orDefault(f.Performance, records.PerformanceGood)

	return payload{form: f, fields: fields}
}

func (f Employee) Patch() recordstore.Payload {
	fields := f.editable()
	if f.Status != "" {
		fields["status"] = f.Status
	}

	if f.Performance != "" {
		fields["performance"] = f.Performance
	}

	return payload{form: f, fields: fields}
}
