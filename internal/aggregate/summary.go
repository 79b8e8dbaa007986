package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// Summary cards shown above each management table.

type CustomerSummary struct {
	Total        int
	Active       int
	TotalRevenue decimal.Decimal
	AvgSpent     decimal.Decimal
}

func SummarizeCustomers(rows []records.Customer) CustomerSummary {
	return CustomerSummary{
		Total:        len(rows),
		Active:       count(rows, func(c records.Customer) bool { return c.Status == records.CustomerActive }),
		TotalRevenue: TotalCustomerValue(rows),
		AvgSpent:     AvgSpentPerCustomer(rows),
	}
}

type EmployeeSummary struct {
	Total       int
	Active      int
	TotalSalary decimal.Decimal
}

func SummarizeEmployees(rows []records.Employee) EmployeeSummary {
	return EmployeeSummary{
		Total:       len(rows),
		Active:      count(rows, func(e records.Employee) bool { return e.Status == records.EmployeeActive }),
		TotalSalary: TotalSalary(rows),
	}
}

type EventSummary struct {
	Total       int
	Active      int
	Completed   int
	TotalBudget decimal.Decimal
}

func SummarizeEvents(rows []records.Event) EventSummary {
	return EventSummary{
		Total:       len(rows),
		Active:      CountEvents(rows, records.EventInProgress),
		Completed:   CountEvents(rows, records.EventCompleted),
		TotalBudget: TotalEventBudget(rows),
	}
}

type IncomeSummary struct {
	Total    decimal.Decimal
	Received decimal.Decimal
	Pending  decimal.Decimal
}

func SummarizeIncome(rows []records.IncomeRecord) IncomeSummary {
	byStatus := func(status records.IncomeStatus) decimal.Decimal {
		return sum(rows, func(r records.IncomeRecord) decimal.Decimal {
			if r.Status != status {
				return decimal.Zero
			}

			return r.Amount
		})
	}

	return IncomeSummary{
		Total:    TotalIncome(rows),
		Received: byStatus(records.IncomeReceived),
		Pending:  byStatus(records.IncomePending),
	}
}

type ExpenseSummary struct {
	Total     decimal.Decimal
	ThisMonth decimal.Decimal
}

func SummarizeExpenses(rows []records.ExpenseRecord, now time.Time) ExpenseSummary {
	return ExpenseSummary{
		Total:     TotalExpenses(rows),
		ThisMonth: ThisMonthExpenses(rows, now),
	}
}

type ReceiptSummary struct {
	Count       int
	TotalAmount decimal.Decimal
}

func SummarizeReceipts(rows []records.Receipt) ReceiptSummary {
	return ReceiptSummary{
		Count:       len(rows),
		TotalAmount: sum(rows, func(r records.Receipt) decimal.Decimal { return r.Amount }),
	}
}

type DistributionSummary struct {
	Count            int
	TotalDistributed decimal.Decimal
}

func SummarizeDistributions(rows []records.ProfitDistribution) DistributionSummary {
	return DistributionSummary{
		Count:            len(rows),
		TotalDistributed: TotalDistributed(rows),
	}
}
