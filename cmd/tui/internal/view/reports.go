package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/console"
)

type ReportsModel struct {
	CommonModel
	console *console.Console
	money   *aggregate.Money

	loading bool
	err     error
	report  aggregate.Report
}

func NewReportsModel(c *console.Console, money *aggregate.Money) ReportsModel {
	return ReportsModel{console: c, money: money, loading: true}
}

func (m ReportsModel) Title() string     { return "Reports & Analytics" }
func (m ReportsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m ReportsModel) Init() tea.Cmd {
	return m.loadCmd()
}

type reportLoadedMsg struct {
	report aggregate.Report
	err    error
}

func (m ReportsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.console.LoadReports(ctx); err != nil {
			return reportLoadedMsg{err: err}
		}

		return reportLoadedMsg{report: m.console.Report(time.Now())}
	}
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report

		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m ReportsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading reports...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorLine(m.err) + "\n\n" + faintStyle.Render("r: retry | Esc: back"))
	}

	r := m.report

	financial := cards(
		[2]string{"Income", m.money.Format(r.Financial.TotalIncome)},
		[2]string{"Expenses", m.money.Format(r.Financial.TotalExpenses)},
		[2]string{"Net Profit", m.money.Format(r.Financial.NetProfit)},
		[2]string{"Margin", aggregate.Percent(r.Financial.ProfitMargin)},
	)

	monthly := cards(
		[2]string{r.Financial.Month + " Income", m.money.Format(r.Financial.MonthlyIncome)},
		[2]string{r.Financial.Month + " Expenses", m.money.Format(r.Financial.MonthlyExpenses)},
		[2]string{r.Financial.Month + " Profit", m.money.Format(r.Financial.MonthlyProfit)},
	)

	sections := cards(
		[2]string{"Customers", fmt.Sprintf("%d total, %d active\nvalue %s\nretention %s",
			r.Customers.Total, r.Customers.Active, m.money.Format(r.Customers.TotalValue), aggregate.Percent(r.Customers.RetentionRate))},
		[2]string{"Employees", fmt.Sprintf("%d total, %d active\nsalaries %s",
			r.Employees.Total, r.Employees.Active, m.money.Format(r.Employees.TotalSalary))},
		[2]string{"Events", fmt.Sprintf("%d total, %d active, %d done\nbudget %s\ncompletion %s",
			r.Events.Total, r.Events.Active, r.Events.Completed, m.money.Format(r.Events.TotalBudget), aggregate.Percent(r.Events.CompletionRate))},
		[2]string{"Distributions", fmt.Sprintf("%d records\ndistributed %s\nretained %s",
			r.Distributions.Count, m.money.Format(r.Distributions.TotalDistributed), m.money.Format(r.Distributions.TotalRetained))},
	)

	var insights strings.Builder

	insights.WriteString(titleStyle.Render("Key Insights") + "\n")

	for _, in := range r.Insights {
		badge := errorStyle.Render("[" + in.Badge + "]")
		if in.OnTarget {
			badge = successStyle.Render("[" + in.Badge + "]")
		}

		fmt.Fprintf(&insights, "%s %s\n", badge, in.Text)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Reports & Analytics"),
			"",
			financial,
			monthly,
			sections,
			"",
			insights.String(),
		),
	)
}
