package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/auth"
	"github.com/MrJamesThe3rd/eventdesk/internal/bootstrap"
	"github.com/MrJamesThe3rd/eventdesk/internal/config"
	"github.com/MrJamesThe3rd/eventdesk/internal/console"
	"github.com/MrJamesThe3rd/eventdesk/internal/export"
	"github.com/MrJamesThe3rd/eventdesk/pkg/logger"
)

type menuItem struct {
	key   string
	label string
	open  func() view.View
}

type model struct {
	gate *auth.Gate

	menu    []menuItem
	current view.View // nil while on the menu
	size    tea.WindowSizeMsg
}

func newModel(gate *auth.Gate, c *console.Console, money *aggregate.Money, exp *export.Service) model {
	m := model{gate: gate}

	m.menu = []menuItem{
		{"1", "Dashboard", func() view.View { return view.NewDashboardModel(c, money) }},
		{"2", "Customers", func() view.View { return view.NewCustomersModel(c, money) }},
		{"3", "Employees", func() view.View { return view.NewEmployeesModel(c, money) }},
		{"4", "Events", func() view.View { return view.NewEventsModel(c, money) }},
		{"5", "Income", func() view.View { return view.NewIncomeModel(c, money) }},
		{"6", "Expenses", func() view.View { return view.NewExpensesModel(c, money) }},
		{"7", "Profit Distribution", func() view.View { return view.NewDistributionsModel(c, money) }},
		{"8", "Receipts", func() view.View { return view.NewReceiptsModel(c, money) }},
		{"9", "Reports & Analytics", func() view.View { return view.NewReportsModel(c, money) }},
		{"x", "Export Business Report", func() view.View { return view.NewExportModel(exp) }},
	}

	if _, ok := gate.State().(auth.Anonymous); ok {
		m.current = view.NewLoginModel(gate)
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.current != nil {
		return m.current.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			return m.updateMenu(msg)
		}
	case view.LoggedInMsg:
		m.current = nil
		return m, nil
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	if v, ok := next.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "l":
		m.gate.Logout()
		m.current = view.NewLoginModel(m.gate)

		return m, m.current.Init()
	}

	for _, item := range m.menu {
		if item.key == msg.String() {
			return m.open(item.open())
		}
	}

	return m, nil
}

// open switches to v and replays the last window size so it lays out
// before the next resize.
func (m model) open(v view.View) (tea.Model, tea.Cmd) {
	m.current = v
	size := m.size

	return m, tea.Batch(v.Init(), func() tea.Msg { return size })
}

var (
	menuTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if m.current != nil {
		return m.current.View() + "\n" + helpStyle.Render(m.current.ShortHelp())
	}

	var sb strings.Builder

	username, _ := m.gate.Username()
	sb.WriteString(menuTitle.Render("EventDesk Admin") + "\n")
	sb.WriteString(helpStyle.Render("Signed in as "+username) + "\n\n")

	for _, item := range m.menu {
		fmt.Fprintf(&sb, "%s. %s\n", item.key, item.label)
	}

	sb.WriteString("\nl. Log out\nq. Quit")

	return lipgloss.NewStyle().Padding(2).Render(sb.String())
}

// logPath keeps log output off the terminal the TUI draws on.
func logPath(cfg *config.Config) string {
	if cfg.App.LogFile != "" {
		return cfg.App.LogFile
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return os.DevNull
	}

	dir = filepath.Join(dir, "eventdesk")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return os.DevNull
	}

	return filepath.Join(dir, "tui.log")
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := logger.New(logger.Options{Level: cfg.App.LogLevel, File: logPath(cfg)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	fail := func(msg string, err error) {
		baseLogger.Error(msg, zap.Error(err))
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}

	backend, closeBackend, err := bootstrap.Backend(context.Background(), cfg, baseLogger)
	if err != nil {
		fail("failed to open table store", err)
	}
	defer func() { _ = closeBackend() }()

	money, err := bootstrap.Money(cfg)
	if err != nil {
		fail("invalid display settings", err)
	}

	// The terminal keeps its session on disk so a restart stays signed in.
	storage, err := bootstrap.FileSession(cfg.Session.File)
	if err != nil {
		fail("failed to open session storage", err)
	}

	var (
		gate          = auth.NewGate(storage, baseLogger.Named("auth"))
		adminConsole  = console.New(backend, baseLogger.Named("console"))
		exportService = export.NewService(adminConsole, money, baseLogger.Named("export"))
	)

	p := tea.NewProgram(newModel(gate, adminConsole, money, exportService), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail("failed to run TUI", err)
	}
}
