package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// Rows is the set of fetched tables a page aggregates over. A nil slice
// means the table was not loaded.
type Rows struct {
	Customers     []records.Customer
	Employees     []records.Employee
	Events        []records.Event
	Income        []records.IncomeRecord
	Expenses      []records.ExpenseRecord
	Distributions []records.ProfitDistribution
	Receipts      []records.Receipt
}

const recentEventLimit = 4

type Dashboard struct {
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetProfit         decimal.Decimal
	ProfitMargin      decimal.Decimal
	ThisMonthIncome   decimal.Decimal
	ThisMonthExpenses decimal.Decimal

	TotalEvents     int
	ActiveEvents    int
	UpcomingEvents  int
	TotalCustomers  int
	ActiveEmployees int

	// RecentEvents is the first few events in fetch order.
	RecentEvents []records.Event
}

func BuildDashboard(rows Rows, now time.Time) Dashboard {
	income := TotalIncome(rows.Income)
	expenses := TotalExpenses(rows.Expenses)
	net := NetProfit(income, expenses)

	recent := rows.Events
	if len(recent) > recentEventLimit {
		recent = recent[:recentEventLimit]
	}

	return Dashboard{
		TotalIncome:       income,
		TotalExpenses:     expenses,
		NetProfit:         net,
		ProfitMargin:      ProfitMargin(net, income),
		ThisMonthIncome:   ThisMonthIncome(rows.Income, now),
		ThisMonthExpenses: ThisMonthExpenses(rows.Expenses, now),
		TotalEvents:       len(rows.Events),
		ActiveEvents:      CountEvents(rows.Events, records.EventInProgress),
		UpcomingEvents:    CountEvents(rows.Events, records.EventPlanning, records.EventConfirmed),
		TotalCustomers:    len(rows.Customers),
		ActiveEmployees:   count(rows.Employees, func(e records.Employee) bool { return e.Status == records.EmployeeActive }),
		RecentEvents:      append([]records.Event(nil), recent...),
	}
}
