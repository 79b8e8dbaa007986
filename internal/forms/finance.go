package forms

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/recordstore"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

type Income struct {
	EventName     string               `json:"event_name" validate:"required"`
	CustomerName  string               `json:"customer_name" validate:"required"`
	Amount        decimal.Decimal      `json:"amount" validate:"gte=0"`
	PaymentMethod string               `json:"payment_method" validate:"required"`
	Description   string               `json:"description"`
	Date          records.Date         `json:"date" validate:"required"`
	Status        records.IncomeStatus `json:"status" validate:"omitempty,oneof=received pending overdue"`
}

func IncomeFrom(r records.IncomeRecord) Income {
	return Income{
		EventName:     r.EventName,
		CustomerName:  r.CustomerName,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Description:   r.Description,
		Date:          r.Date,
		Status:        r.Status,
	}
}

func (f Income) editable() map[string]any {
	return map[string]any{
		"event_name":     f.EventName,
		"customer_name":  f.CustomerName,
		"amount":         f.Amount,
		"payment_method": f.PaymentMethod,
		"description":    f.Description,
		"date":           f.Date,
	}
}

func (f Income) Insert() recordstore.Payload {
	fields := f.editable()
	fields["status"] = orDefault(f.Status, records.IncomeReceived)

	return payload{form: f, fields: fields}
}

func (f Income) Patch() recordstore.Payload {
	fields := f.editable()
	if f.Status != "" {
		fields["status"] = f.Status
	}

	return payload{form: f, fields: fields}
}

type Expense struct {
	Category      string                `json:"category" validate:"required"`
	Description   string                `json:"description" validate:"required"`
	Amount        decimal.Decimal       `json:"amount" validate:"gte=0"`
	Vendor        string                `json:"vendor"`
	PaymentMethod string                `json:"payment_method" validate:"required"`
	Date          records.Date          `json:"date" validate:"required"`
	ReceiptNumber string                `json:"receipt_number"`
	Status        records.ExpenseStatus `json:"status" validate:"omitempty,oneof=paid pending overdue"`
}

func ExpenseFrom(r records.ExpenseRecord) Expense {
	return Expense{
		Category:      r.Category,
		Description:   r.Description,
		Amount:        r.Amount,
		Vendor:        r.Vendor,
		PaymentMethod: r.PaymentMethod,
		Date:          r.Date,
		ReceiptNumber: r.ReceiptNumber,
		Status:        r.Status,
	}
}

func (f Expense) editable() map[string]any {
	return map[string]any{
		"category":       f.Category,
		"description":    f.Description,
		"amount":         f.Amount,
		"vendor":         f.Vendor,
		"payment_method": f.PaymentMethod,
		"date":           f.Date,
		"receipt_number": f.ReceiptNumber,
	}
}

func (f Expense) Insert() recordstore.Payload {
	fields := f.editable()
	fields["status"] = orDefault(f.Status, records.ExpensePaid)

	return payload{form: f, fields: fields}
}

func (f Expense) Patch() recordstore.Payload {
	fields := f.editable()
	if f.Status != "" {
		fields["status"] = f.Status
	}

	return payload{form: f, fields: fields}
}

type ProfitDistribution struct {
	Month            string          `json:"month" validate:"required"`
	Year             int             `json:"year" validate:"gte=2020,lte=2030"`
	TotalProfit      decimal.Decimal `json:"total_profit" validate:"gte=0"`
	Partner1Pct      decimal.Decimal `json:"partner1_percentage" validate:"gte=0,lte=100"`
	Partner2Pct      decimal.Decimal `json:"partner2_percentage" validate:"gte=0,lte=100"`
	DistributionDate records.Date    `json:"distribution_date" validate:"required"`
}

func ProfitDistributionFrom(p records.ProfitDistribution) ProfitDistribution {
	return ProfitDistribution{
		Month:            p.Month,
		Year:             p.Year,
		TotalProfit:      p.TotalProfit,
		Partner1Pct:      p.Partner1Percentage,
		Partner2Pct:      p.Partner2Percentage,
		DistributionDate: p.DistributionDate,
	}
}

// fields stores the shares computed from the submitted percentages; they are
// never recomputed on read.
func (f ProfitDistribution) fields() map[string]any {
	p1, p2 := aggregate.Shares(f.TotalProfit, f.Partner1Pct, f.Partner2Pct)

	return map[string]any{
		"month":               f.Month,
		"year":                f.Year,
		"total_profit":        f.TotalProfit,
		"partner1_percentage": f.Partner1Pct,
		"partner2_percentage": f.Partner2Pct,
		"partner1_share":      p1,
		"partner2_share":      p2,
		"distribution_date":   f.DistributionDate,
	}
}

func (f ProfitDistribution) Insert() recordstore.Payload {
	fields := f.fields()
	fields["distributed"] = true

	return payload{form: f, fields: fields}
}

func (f ProfitDistribution) Patch() recordstore.Payload {
	return payload{form: f, fields: f.fields()}
}

type Receipt struct {
	ReceiptNumber string                `json:"receipt_number" validate:"required"`
	CustomerName  string                `json:"customer_name" validate:"required"`
	EventName     string                `json:"event_name" validate:"required"`
	Amount        decimal.Decimal       `json:"amount" validate:"gte=0"`
	PaymentMethod string                `json:"payment_method" validate:"required"`
	Date          records.Date          `json:"date" validate:"required"`
	Status        records.ReceiptStatus `json:"status" validate:"omitempty,oneof=paid pending"`
}

func ReceiptFrom(r records.Receipt) Receipt {
	return Receipt{
		ReceiptNumber: r.ReceiptNumber,
		CustomerName:  r.CustomerName,
		EventName:     r.EventName,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Date:          r.Date,
		Status:        r.Status,
	}
}

func (f Receipt) editable() map[string]any {
	return map[string]any{
		"receipt_number": f.ReceiptNumber,
		"customer_name":  f.CustomerName,
		"event_name":     f.EventName,
		"amount":         f.Amount,
		"payment_method": f.PaymentMethod,
		"date":           f.Date,
	}
}

func (f Receipt) Insert() recordstore.Payload {
	fields := f.editable()
	fields["status"] = orDefault(f.Status, records.ReceiptPaid)

	return payload{form: f, fields: fields}
}

func (f Receipt) Patch() recordstore.Payload {
	fields := f.editable()
	if f.Status != "" {
		fields["status"] = f.Status
	}

	return payload{form: f, fields: fields}
}

// NewReceiptNumber returns RCP-YYYYMMDD-NNN with a random three digit suffix.
func NewReceiptNumber(now time.Time) string {
	return fmt.Sprintf("RCP-%s-%03d", now.Format("20060102"), rand.IntN(1000))
}
