package aggregate_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

func sampleRows() aggregate.Rows {
	return aggregate.Rows{
		Customers: []records.Customer{
			{Status: records.CustomerActive, TotalSpent: dec("120000")},
			{Status: records.CustomerInactive, TotalSpent: dec("30000")},
		},
		Employees: []records.Employee{
			{Status: records.EmployeeActive, Salary: dec("50000")},
			{Status: records.EmployeeActive, Salary: dec("40000")},
			{Status: records.EmployeeInactive, Salary: dec("35000")},
		},
		Events: []records.Event{
			{ID: uuid.New(), Status: records.EventPlanning, Budget: dec("10000")},
			{ID: uuid.New(), Status: records.EventConfirmed, Budget: dec("20000")},
			{ID: uuid.New(), Status: records.EventInProgress, Budget: dec("30000")},
			{ID: uuid.New(), Status: records.EventCompleted, Budget: dec("40000")},
			{ID: uuid.New(), Status: records.EventCancelled, Budget: dec("50000")},
		},
		Income: []records.IncomeRecord{
			{Amount: dec("50000"), Date: date("2024-06-03")},
			{Amount: dec("30000"), Date: date("2024-04-20")},
		},
		Expenses: []records.ExpenseRecord{
			{Amount: dec("20000"), Date: date("2024-06-05")},
		},
		Distributions: []records.ProfitDistribution{
			{TotalProfit: dec("100000"), Partner1Share: dec("60000"), Partner2Share: dec("40000")},
		},
	}
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	rows := sampleRows()

	d := aggregate.BuildDashboard(rows, now)

	assertDecimal(t, "80000", d.TotalIncome)
	assertDecimal(t, "20000", d.TotalExpenses)
	assertDecimal(t, "60000", d.NetProfit)
	assertDecimal(t, "75", d.ProfitMargin)
	assertDecimal(t, "50000", d.ThisMonthIncome)
	assertDecimal(t, "20000", d.ThisMonthExpenses)
	assert.Equal(t, 5, d.TotalEvents)
	assert.Equal(t, 1, d.ActiveEvents)
	assert.Equal(t, 2, d.UpcomingEvents)
	assert.Equal(t, 2, d.TotalCustomers)
	assert.Equal(t, 2, d.ActiveEmployees)

	require.Len(t, d.RecentEvents, 4)
	assert.Equal(t, rows.Events[0].ID, d.RecentEvents[0].ID)
	assert.Equal(t, rows.Events[3].ID, d.RecentEvents[3].ID)
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := aggregate.BuildDashboard(aggregate.Rows{}, time.Now())

	assert.True(t, d.ProfitMargin.IsZero())
	assert.Empty(t, d.RecentEvents)
	assert.Zero(t, d.TotalEvents)
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)

	r := aggregate.BuildReport(sampleRows(), now)

	assert.Equal(t, 2, r.Customers.Total)
	assert.Equal(t, 1, r.Customers.Active)
	assertDecimal(t, "150000", r.Customers.TotalValue)
	assertDecimal(t, "50", r.Customers.RetentionRate)

	assert.Equal(t, 3, r.Employees.Total)
	assert.Equal(t, 2, r.Employees.Active)
	assertDecimal(t, "125000", r.Employees.TotalSalary)

	assert.Equal(t, 1, r.Events.Completed)
	assertDecimal(t, "150000", r.Events.TotalBudget)
	assertDecimal(t, "20", r.Events.CompletionRate)

	assert.Equal(t, "2024-06", r.Financial.Month)
	assertDecimal(t, "30000", r.Financial.MonthlyProfit)
	assertDecimal(t, "100000", r.Distributions.TotalDistributed)
	assert.True(t, r.Distributions.TotalRetained.IsZero())

	require.Len(t, r.Insights, 3)
	assert.True(t, r.Insights[0].OnTarget)
	assert.Equal(t, "Good", r.Insights[0].Badge)
	assert.Equal(t, "Profit margin is 75.0% (meeting target)", r.Insights[0].Text)
	assert.False(t, r.Insights[1].OnTarget)
	assert.Equal(t, "Customer retention rate is 50.0%", r.Insights[1].Text)
	assert.Equal(t, "Good", r.Insights[2].Badge)
}

func TestReportMarginBelowTarget(t *testing.T) {
	rows := aggregate.Rows{
		Income:   []records.IncomeRecord{{Amount: dec("1000")}},
		Expenses: []records.ExpenseRecord{{Amount: dec("900")}},
	}

	r := aggregate.BuildReport(rows, time.Now())

	assert.False(t, r.Insights[0].OnTarget)
	assert.Equal(t, "Needs Improvement", r.Insights[0].Badge)
	assert.Equal(t, "Profit margin is 10.0% (below 20% target)", r.Insights[0].Text)
}
