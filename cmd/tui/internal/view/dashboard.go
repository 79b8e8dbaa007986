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

type DashboardModel struct {
	CommonModel
	console *console.Console
	money   *aggregate.Money

	loading   bool
	err       error
	dashboard aggregate.Dashboard
}

func NewDashboardModel(c *console.Console, money *aggregate.Money) DashboardModel {
	return DashboardModel{console: c, money: money, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

type dashboardLoadedMsg struct {
	dashboard aggregate.Dashboard
	err       error
}

// loadCmd waits for all dashboard tables before building the page.
func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.console.LoadDashboard(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{dashboard: m.console.Dashboard(time.Now())}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.dashboard = msg.dashboard

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

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorLine(m.err) + "\n\n" + faintStyle.Render("r: retry | Esc: back"))
	}

	d := m.dashboard

	money := cards(
		[2]string{"Total Income", m.money.Format(d.TotalIncome)},
		[2]string{"Total Expenses", m.money.Format(d.TotalExpenses)},
		[2]string{"Net Profit", m.money.Format(d.NetProfit)},
		[2]string{"Profit Margin", aggregate.Percent(d.ProfitMargin)},
	)

	counts := cards(
		[2]string{"Events", fmt.Sprintf("%d (%d active)", d.TotalEvents, d.ActiveEvents)},
		[2]string{"Upcoming", fmt.Sprintf("%d", d.UpcomingEvents)},
		[2]string{"Customers", fmt.Sprintf("%d", d.TotalCustomers)},
		[2]string{"Active Staff", fmt.Sprintf("%d", d.ActiveEmployees)},
	)

	month := cards(
		[2]string{"This Month Income", m.money.Format(d.ThisMonthIncome)},
		[2]string{"This Month Expenses", m.money.Format(d.ThisMonthExpenses)},
	)

	var recent strings.Builder

	recent.WriteString(titleStyle.Render("Recent Events") + "\n")

	if len(d.RecentEvents) == 0 {
		recent.WriteString(faintStyle.Render("No events yet."))
	}

	for _, e := range d.RecentEvents {
		fmt.Fprintf(&recent, "%-12s %-28s %-20s %s\n",
			FormatDate(e.EventDate), e.EventName, e.CustomerName, activeStyle(string(e.Status)))
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Dashboard"),
			"",
			money,
			counts,
			month,
			"",
			recent.String(),
		),
	)
}
