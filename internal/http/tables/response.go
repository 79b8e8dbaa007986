package tables

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
)

type customerSummary struct {
	Total        int             `json:"total"`
	Active       int             `json:"active"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AvgSpent     decimal.Decimal `json:"avg_spent"`
}

func toCustomerSummary(s aggregate.CustomerSummary) customerSummary {
	return customerSummary{Total: s.Total, Active: s.Active, TotalRevenue: s.TotalRevenue, AvgSpent: s.AvgSpent}
}

type employeeSummary struct {
	Total       int             `json:"total"`
	Active      int             `json:"active"`
	TotalSalary decimal.Decimal `json:"total_salary"`
}

func toEmployeeSummary(s aggregate.EmployeeSummary) employeeSummary {
	return employeeSummary{Total: s.Total, Active: s.Active, TotalSalary: s.TotalSalary}
}

type eventSummary struct {
	Total       int             `json:"total"`
	Active      int             `json:"active"`
	Completed   int             `json:"completed"`
	TotalBudget decimal.Decimal `json:"total_budget"`
}

func toEventSummary(s aggregate.EventSummary) eventSummary {
	return eventSummary{Total: s.Total, Active: s.Active, Completed: s.Completed, TotalBudget: s.TotalBudget}
}

type incomeSummary struct {
	Total    decimal.Decimal `json:"total"`
	Received decimal.Decimal `json:"received"`
	Pending  decimal.Decimal `json:"pending"`
}

func toIncomeSummary(s aggregate.IncomeSummary) incomeSummary {
	return incomeSummary{Total: s.Total, Received: s.Received, Pending: s.Pending}
}

type expenseSummary struct {
	Total     decimal.Decimal `json:"total"`
	ThisMonth decimal.Decimal `json:"this_month"`
}

func toExpenseSummary(s aggregate.ExpenseSummary) expenseSummary {
	return expenseSummary{Total: s.Total, ThisMonth: s.ThisMonth}
}

type receiptSummary struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func toReceiptSummary(s aggregate.ReceiptSummary) receiptSummary {
	return receiptSummary{Count: s.Count, TotalAmount: s.TotalAmount}
}

type distributionSummary struct {
	Count            int             `json:"count"`
	TotalDistributed decimal.Decimal `json:"total_distributed"`
}

func toDistributionSummary(s aggregate.DistributionSummary) distributionSummary {
	return distributionSummary{Count: s.Count, TotalDistributed: s.TotalDistributed}
}
