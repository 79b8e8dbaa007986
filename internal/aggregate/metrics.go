// Package aggregate derives dashboard and report figures from fetched rows.
// Every function is a pure fold; nothing is cached between calls.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

var hundred = decimal.NewFromInt(100)

func TotalIncome(rows []records.IncomeRecord) decimal.Decimal {
	return sum(rows, func(r records.IncomeRecord) decimal.Decimal { return r.Amount })
}

func TotalExpenses(rows []records.ExpenseRecord) decimal.Decimal {
	return sum(rows, func(r records.ExpenseRecord) decimal.Decimal { return r.Amount })
}

func NetProfit(income, expenses decimal.Decimal) decimal.Decimal {
	return income.Sub(expenses)
}

// ProfitMargin is net/income as a percentage rounded to two places, or zero
// when there is no income.
func ProfitMargin(net, income decimal.Decimal) decimal.Decimal {
	if income.Sign() <= 0 {
		return decimal.Zero
	}

	return net.Div(income).Mul(hundred).Round(2)
}

// ThisMonthIncome sums income dated in the calendar month of now.
func ThisMonthIncome(rows []records.IncomeRecord, now time.Time) decimal.Decimal {
	return sum(rows, func(r records.IncomeRecord) decimal.Decimal {
		if !r.Date.SameMonth(now) {
			return decimal.Zero
		}

		return r.Amount
	})
}

func ThisMonthExpenses(rows []records.ExpenseRecord, now time.Time) decimal.Decimal {
	return sum(rows, func(r records.ExpenseRecord) decimal.Decimal {
		if !r.Date.SameMonth(now) {
			return decimal.Zero
		}

		return r.Amount
	})
}

func CountEvents(events []records.Event, statuses ...records.EventStatus) int {
	return count(events, func(e records.Event) bool {
		for _, s := range statuses {
			if e.Status == s {
				return true
			}
		}

		return false
	})
}

// EventCompletionRate is the percentage of events that are completed.
func EventCompletionRate(events []records.Event) decimal.Decimal {
	return percent(CountEvents(events, records.EventCompleted), len(events))
}

// CustomerRetentionRate is the percentage of customers still active.
func CustomerRetentionRate(customers []records.Customer) decimal.Decimal {
	active := count(customers, func(c records.Customer) bool { return c.Status == records.CustomerActive })
	return percent(active, len(customers))
}

func TotalCustomerValue(customers []records.Customer) decimal.Decimal {
	return sum(customers, func(c records.Customer) decimal.Decimal { return c.TotalSpent })
}

// AvgSpentPerCustomer rounds to a whole amount.
func AvgSpentPerCustomer(customers []records.Customer) decimal.Decimal {
	if len(customers) == 0 {
		return decimal.Zero
	}

	return TotalCustomerValue(customers).Div(decimal.NewFromInt(int64(len(customers)))).Round(0)
}

func TotalSalary(employees []records.Employee) decimal.Decimal {
	return sum(employees, func(e records.Employee) decimal.Decimal { return e.Salary })
}

func TotalEventBudget(events []records.Event) decimal.Decimal {
	return sum(events, func(e records.Event) decimal.Decimal { return e.Budget })
}

// Shares splits total between the two partners by percentage. The
// percentages are not required to add up to 100; anything left over stays
// with the company.
func Shares(total, partner1Pct, partner2Pct decimal.Decimal) (partner1, partner2 decimal.Decimal) {
	return total.Mul(partner1Pct).Div(hundred), total.Mul(partner2Pct).Div(hundred)
}

// TotalDistributed sums both partner shares across distributions.
func TotalDistributed(rows []records.ProfitDistribution) decimal.Decimal {
	return sum(rows, func(p records.ProfitDistribution) decimal.Decimal {
		return p.Partner1Share.Add(p.Partner2Share)
	})
}

// TotalRetained sums what each distribution left undistributed.
func TotalRetained(rows []records.ProfitDistribution) decimal.Decimal {
	return sum(rows, func(p records.ProfitDistribution) decimal.Decimal {
		return p.TotalProfit.Sub(p.Partner1Share).Sub(p.Partner2Share)
	})
}

func sum[T any](rows []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(value(r))
	}

	return total
}

func count[T any](rows []T, match func(T) bool) int {
	n := 0

	for _, r := range rows {
		if match(r) {
			n++
		}
	}

	return n
}

func percent(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole)))
}
