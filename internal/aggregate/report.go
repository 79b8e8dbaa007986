package aggregate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// Insight thresholds shown on the reports page.
var (
	MarginTarget     = decimal.NewFromInt(20)
	RetentionTarget  = decimal.NewFromInt(80)
	CompletionTarget = decimal.NewFromInt(90)
)

type CustomerReport struct {
	Total         int
	Active        int
	TotalValue    decimal.Decimal
	RetentionRate decimal.Decimal
}

type EmployeeReport struct {
	Total       int
	Active      int
	TotalSalary decimal.Decimal
}

type EventReport struct {
	Total          int
	Active         int
	Completed      int
	TotalBudget    decimal.Decimal
	CompletionRate decimal.Decimal
}

type FinancialReport struct {
	TotalIncome     decimal.Decimal
	TotalExpenses   decimal.Decimal
	NetProfit       decimal.Decimal
	ProfitMargin    decimal.Decimal
	Month           string
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	MonthlyProfit   decimal.Decimal
}

type DistributionReport struct {
	Count            int
	TotalDistributed decimal.Decimal
	TotalRetained    decimal.Decimal
}

// Insight is one line of the "key insights" panel.
type Insight struct {
	Metric   string
	Value    decimal.Decimal
	OnTarget bool
	Badge    string
	Text     string
}

type Report struct {
	GeneratedAt   time.Time
	Customers     CustomerReport
	Employees     EmployeeReport
	Events        EventReport
	Financial     FinancialReport
	Distributions DistributionReport
	Insights      []Insight
}

func BuildReport(rows Rows, now time.Time) Report {
	income := TotalIncome(rows.Income)
	expenses := TotalExpenses(rows.Expenses)
	net := NetProfit(income, expenses)
	monthlyIncome := ThisMonthIncome(rows.Income, now)
	monthlyExpenses := ThisMonthExpenses(rows.Expenses, now)

	r := Report{
		GeneratedAt: now,
		Customers: CustomerReport{
			Total:         len(rows.Customers),
			Active:        count(rows.Customers, func(c records.Customer) bool { return c.Status == records.CustomerActive }),
			TotalValue:    TotalCustomerValue(rows.Customers),
			RetentionRate: CustomerRetentionRate(rows.Customers),
		},
		Employees: EmployeeReport{
			Total:       len(rows.Employees),
			Active:      count(rows.Employees, func(e records.Employee) bool { return e.Status == records.EmployeeActive }),
			TotalSalary: TotalSalary(rows.Employees),
		},
		Events: EventReport{
			Total:          len(rows.Events),
			Active:         CountEvents(rows.Events, records.EventInProgress),
			Completed:      CountEvents(rows.Events, records.EventCompleted),
			TotalBudget:    TotalEventBudget(rows.Events),
			CompletionRate: EventCompletionRate(rows.Events),
		},
		Financial: FinancialReport{
			TotalIncome:     income,
			TotalExpenses:   expenses,
			NetProfit:       net,
			ProfitMargin:    ProfitMargin(net, income),
			Month:           now.Format("2006-01"),
			MonthlyIncome:   monthlyIncome,
			MonthlyExpenses: monthlyExpenses,
			MonthlyProfit:   monthlyIncome.Sub(monthlyExpenses),
		},
		Distributions: DistributionReport{
			Count:            len(rows.Distributions),
			TotalDistributed: TotalDistributed(rows.Distributions),
			TotalRetained:    TotalRetained(rows.Distributions),
		},
	}

	r.Insights = insights(r)

	return r
}

func insights(r Report) []Insight {
	margin := r.Financial.ProfitMargin
	retention := r.Customers.RetentionRate
	completion := r.Events.CompletionRate

	marginInsight := Insight{Metric: "profit_margin", Value: margin, OnTarget: margin.GreaterThanOrEqual(MarginTarget)}
	if marginInsight.OnTarget {
		marginInsight.Badge = "Good"
		marginInsight.Text = fmt.Sprintf("Profit margin is %s%% (meeting target)", margin.StringFixed(1))
	} else {
		marginInsight.Badge = "Needs Improvement"
		marginInsight.Text = fmt.Sprintf("Profit margin is %s%% (below %s%% target)", margin.StringFixed(1), MarginTarget)
	}

	return []Insight{
		marginInsight,
		rateInsight("customer_retention", "Customer retention rate", retention, RetentionTarget),
		rateInsight("event_completion", "Event completion rate", completion, CompletionTarget),
	}
}

func rateInsight(metric, label string, value, target decimal.Decimal) Insight {
	in := Insight{
		Metric:   metric,
		Value:    value,
		OnTarget: value.GreaterThanOrEqual(target),
		Badge:    "Good",
		Text:     fmt.Sprintf("%s is %s%%", label, value.StringFixed(1)),
	}

	if in.OnTarget {
		in.Badge = "Excellent"
	}

	return in
}
