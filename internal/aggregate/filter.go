package aggregate

import (
	"strings"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// AllOption disables a select filter. An empty option does the same.
const AllOption = "all"

// Filter narrows a management table. Search is a case-insensitive substring
// match over the page's searchable columns; Status and Category are exact
// matches unless empty or "all".
type Filter struct {
	Search   string
	Status   string
	Category string
}

func FilterCustomers(rows []records.Customer, f Filter) []records.Customer {
	return keep(rows, func(c records.Customer) bool {
		return f.matches(c.Name, c.Email, c.Company) && option(f.Status, string(c.Status))
	})
}

// FilterEmployees uses Category for the department.
func FilterEmployees(rows []records.Employee, f Filter) []records.Employee {
	return keep(rows, func(e records.Employee) bool {
		return f.matches(e.Name, e.Email, e.Position) &&
			option(f.Category, e.Department) &&
			option(f.Status, string(e.Status))
	})
}

// FilterEvents uses Category for the event type.
func FilterEvents(rows []records.Event, f Filter) []records.Event {
	return keep(rows, func(e records.Event) bool {
		return f.matches(e.EventName, e.CustomerName, e.Location) &&
			option(f.Status, string(e.Status)) &&
			option(f.Category, e.EventType)
	})
}

func FilterIncome(rows []records.IncomeRecord, f Filter) []records.IncomeRecord {
	return keep(rows, func(r records.IncomeRecord) bool {
		return f.matches(r.EventName, r.CustomerName) && option(f.Status, string(r.Status))
	})
}

func FilterExpenses(rows []records.ExpenseRecord, f Filter) []records.ExpenseRecord {
	return keep(rows, func(r records.ExpenseRecord) bool {
		return f.matches(r.Description) &&
			option(f.Category, r.Category) &&
			option(f.Status, string(r.Status))
	})
}

func FilterReceipts(rows []records.Receipt, f Filter) []records.Receipt {
	return keep(rows, func(r records.Receipt) bool {
		return f.matches(r.ReceiptNumber, r.CustomerName, r.EventName) && option(f.Status, string(r.Status))
	})
}

// FilterDistributions searches the "<month> <year>" period; Category narrows
// to periods containing it, e.g. a month name.
func FilterDistributions(rows []records.ProfitDistribution, f Filter) []records.ProfitDistribution {
	return keep(rows, func(p records.ProfitDistribution) bool {
		period := p.Period()
		return f.matches(period) && (f.Category == "" || strings.Contains(period, f.Category))
	})
}

func (f Filter) matches(fields ...string) bool {
	if f.Search == "" {
		return true
	}

	term := strings.ToLower(f.Search)

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}

func option(want, got string) bool {
	return want == "" || want == AllOption || want == got
}

func keep[T any](rows []T, match func(T) bool) []T {
	out := make([]T, 0, len(rows))

	for _, r := range rows {
		if match(r) {
			out = append(out, r)
		}
	}

	return out
}
