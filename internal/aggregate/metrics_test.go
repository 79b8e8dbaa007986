package aggregate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) records.Date {
	d, err := records.ParseDate(s)
	if err != nil {
		panic(err)
	}

	return d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestIncomeExpenseTotals(t *testing.T) {
	income := []records.IncomeRecord{{Amount: dec("50000")}, {Amount: dec("30000")}}
	expenses := []records.ExpenseRecord{{Amount: dec("20000")}}

	totalIncome := aggregate.TotalIncome(income)
	totalExpenses := aggregate.TotalExpenses(expenses)
	net := aggregate.NetProfit(totalIncome, totalExpenses)

	assertDecimal(t, "80000", totalIncome)
	assertDecimal(t, "20000", totalExpenses)
	assertDecimal(t, "60000", net)
	assertDecimal(t, "75", aggregate.ProfitMargin(net, totalIncome))
}

func TestNetProfitIsExact(t *testing.T) {
	income := []records.IncomeRecord{{Amount: dec("0.1")}, {Amount: dec("0.2")}}
	expenses := []records.ExpenseRecord{{Amount: dec("0.3")}}

	net := aggregate.NetProfit(aggregate.TotalIncome(income), aggregate.TotalExpenses(expenses))
	assert.True(t, net.IsZero(), "got %s", net)
}

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		name   string
		net    string
		income string
		want   string
	}{
		{name: "NoIncome", net: "-500", income: "0", want: "0"},
		{name: "RoundsToTwoPlaces", net: "1", income: "3", want: "33.33"},
		{name: "Loss", net: "-2000", income: "8000", want: "-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, aggregate.ProfitMargin(dec(tt.net), dec(tt.income)))
		})
	}
}

func TestShares(t *testing.T) {
	p1, p2 := aggregate.Shares(dec("100000"), dec("60"), dec("40"))
	assertDecimal(t, "60000", p1)
	assertDecimal(t, "40000", p2)

	p1, p2 = aggregate.Shares(dec("100000"), dec("30"), dec("30"))
	assertDecimal(t, "30000", p1)
	assertDecimal(t, "30000", p2)
}

func TestZeroDenominators(t *testing.T) {
	assert.True(t, aggregate.CustomerRetentionRate(nil).IsZero())
	assert.True(t, aggregate.AvgSpentPerCustomer(nil).IsZero())
	assert.True(t, aggregate.EventCompletionRate(nil).IsZero())
	assert.True(t, aggregate.ProfitMargin(decimal.Zero, decimal.Zero).IsZero())
	assert.True(t, aggregate.CustomerRetentionRate([]records.Customer{}).IsZero())
}

func TestRates(t *testing.T) {
	customers := []records.Customer{
		{Status: records.CustomerActive, TotalSpent: dec("1000")},
		{Status: records.CustomerActive, TotalSpent: dec("2000")},
		{Status: records.CustomerInactive, TotalSpent: dec("1001")},
		{Status: records.CustomerActive},
	}

	assertDecimal(t, "75", aggregate.CustomerRetentionRate(customers))
	assertDecimal(t, "1000", aggregate.AvgSpentPerCustomer(customers))

	events := []records.Event{
		{Status: records.EventCompleted},
		{Status: records.EventCompleted},
		{Status: records.EventPlanning},
	}

	assert.Equal(t, "66.7", aggregate.EventCompletionRate(events).StringFixed(1))
}

func TestThisMonth(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	income := []records.IncomeRecord{
		{Amount: dec("100"), Date: date("2024-06-01")},
		{Amount: dec("200"), Date: date("2024-06-30")},
		{Amount: dec("400"), Date: date("2023-06-10")},
		{Amount: dec("800"), Date: date("2024-05-31")},
		{Amount: dec("1600")},
	}

	expenses := []records.ExpenseRecord{
		{Amount: dec("50"), Date: date("2024-06-02")},
		{Amount: dec("70"), Date: date("2024-07-01")},
	}

	assertDecimal(t, "300", aggregate.ThisMonthIncome(income, now))
	assertDecimal(t, "50", aggregate.ThisMonthExpenses(expenses, now))
}

func TestDistributionTotals(t *testing.T) {
	rows := []records.ProfitDistribution{
		{TotalProfit: dec("100000"), Partner1Share: dec("60000"), Partner2Share: dec("40000")},
		{TotalProfit: dec("50000"), Partner1Share: dec("15000"), Partner2Share: dec("15000")},
	}

	assertDecimal(t, "130000", aggregate.TotalDistributed(rows))
	assertDecimal(t, "20000", aggregate.TotalRetained(rows))
}

func TestSalaryChangeMovesTotal(t *testing.T) {
	employees := []records.Employee{{Salary: dec("50000")}, {Salary: dec("42000")}}
	before := aggregate.TotalSalary(employees)

	employees[0].Salary = dec("55000")
	after := aggregate.TotalSalary(employees)

	assertDecimal(t, "5000", after.Sub(before))
}
