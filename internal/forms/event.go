package forms

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/recordstore"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

type Event struct {
	EventName     string              `json:"event_name" validate:"required"`
	EventType     string              `json:"event_type" validate:"required"`
	CustomerName  string              `json:"customer_name" validate:"required"`
	CustomerPhone string              `json:"customer_phone" validate:"min=10"`
	CustomerEmail string              `json:"customer_email" validate:"required,email"`
	Location      string              `json:"location" validate:"required"`
	EventDate     records.Date        `json:"event_date" validate:"required"`
	EmployeeName  string              `json:"employee_name" validate:"required"`
	Budget        decimal.Decimal     `json:"budget" validate:"gte=0"`
	Description   string              `json:"description"`
	Status        records.EventStatus `json:"status" validate:"omitempty,oneof=planning confirmed in-progress completed cancelled"`
}

func EventFrom(e records.Event) Event {
	return Event{
		EventName:     e.EventName,
		EventType:     e.EventType,
		CustomerName:  e.CustomerName,
		CustomerPhone: e.CustomerPhone,
		CustomerEmail: e.CustomerEmail,
		Location:      e.Location,
		EventDate:     e.EventDate,
		EmployeeName:  e.EmployeeName,
		Budget:        e.Budget,
		Description:   e.Description,
		Status:        e.Status,
	}
}

func (f Event) fields() map[string]any {
	return map[string]any{
		"event_name":     f.EventName,
		"event_type":     f.EventType,
		"customer_name":  f.CustomerName,
		"customer_phone": f.CustomerPhone,
		"customer_email": f.CustomerEmail,
		"location":       f.Location,
		"event_date":     f.EventDate,
		"employee_name":  f.EmployeeName,
		"budget":         f.Budget,
		"description":    f.Description,
		"status":         orDefault(f.Status, records.EventPlanning),
	}
}

func (f Event) Insert() recordstore.Payload { return payload{form: f, fields: f.fields()} }

func (f Event) Patch() recordstore.Payload { return payload{form: f, fields: f.fields()} }
