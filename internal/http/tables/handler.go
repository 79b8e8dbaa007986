// Package tables serves the management screens: one CRUD resource per
// console table.
package tables

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/console"
	"github.com/MrJamesThe3rd/eventdesk/internal/forms"
	"github.com/MrJamesThe3rd/eventdesk/internal/recordstore"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

type Handler struct {
	console *console.Console
	now     func() time.Time
}

func NewHandler(c *console.Console) *Handler {
	return &Handler{console: c, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	c := h.console

	mount(r, "/customers", resource[records.Customer, forms.Customer]{
		store:   c.Customers,
		filter:  aggregate.FilterCustomers,
		summary: func(rows []records.Customer) any { return toCustomerSummary(aggregate.SummarizeCustomers(rows)) },
		from:    forms.CustomerFrom,
		insert:  func(f forms.Customer) recordstore.Payload { return f.Insert(records.NewDate(h.now())) },
		patch:   forms.Customer.Patch,
	})

	mount(r, "/employees", resource[records.Employee, forms.Employee]{
		store:   c.Employees,
		filter:  aggregate.FilterEmployees,
		summary: func(rows []records.Employee) any { return toEmployeeSummary(aggregate.SummarizeEmployees(rows)) },
		from:    forms.EmployeeFrom,
		insert:  forms.Employee.Insert,
		patch:   forms.Employee.Patch,
	})

	mount(r, "/events", resource[records.Event, forms.Event]{
		store:   c.Events,
		filter:  aggregate.FilterEvents,
		summary: func(rows []records.Event) any { return toEventSummary(aggregate.SummarizeEvents(rows)) },
		from:    forms.EventFrom,
		insert:  forms.Event.Insert,
		patch:   forms.Event.Patch,
	})

	mount(r, "/income", resource[records.IncomeRecord, forms.Income]{
		store:   c.Income,
		filter:  aggregate.FilterIncome,
		summary: func(rows []records.IncomeRecord) any { return toIncomeSummary(aggregate.SummarizeIncome(rows)) },
		from:    forms.IncomeFrom,
		insert:  forms.Income.Insert,
		patch:   forms.Income.Patch,
	})

	mount(r, "/expenses", resource[records.ExpenseRecord, forms.Expense]{
		store:   c.Expenses,
		filter:  aggregate.FilterExpenses,
		summary: func(rows []records.ExpenseRecord) any {
			return toExpenseSummary(aggregate.SummarizeExpenses(rows, h.now()))
		},
		from:   forms.ExpenseFrom,
		insert: forms.Expense.Insert,
		patch:  forms.Expense.Patch,
	})

	mount(r, "/distributions", resource[records.ProfitDistribution, forms.ProfitDistribution]{
		store:   c.Distributions,
		filter:  aggregate.FilterDistributions,
		summary: func(rows []records.ProfitDistribution) any {
			return toDistributionSummary(aggregate.SummarizeDistributions(rows))
		},
		from:   forms.ProfitDistributionFrom,
		insert: forms.ProfitDistribution.Insert,
		patch:  forms.ProfitDistribution.Patch,
	})

	mount(r, "/receipts", resource[records.Receipt, forms.Receipt]{
		store:   c.Receipts,
		filter:  aggregate.FilterReceipts,
		summary: func(rows []records.Receipt) any { return toReceiptSummary(aggregate.SummarizeReceipts(rows)) },
		from:    forms.ReceiptFrom,
		insert:  func(f forms.Receipt) recordstore.Payload {
			if f.ReceiptNumber == "" {
				f.ReceiptNumber = forms.NewReceiptNumber(h.now())
			}

			return f.Insert()
		},
		patch: forms.Receipt.Patch,
	})
}
