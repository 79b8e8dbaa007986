package view

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/eventdesk/internal/auth"
)

// LoggedInMsg is sent once the gate accepts the credentials.
type LoggedInMsg struct {
	Username string
}

type credentials struct {
	username string
	password string
}

type LoginModel struct {
	CommonModel
	gate *auth.Gate

	form  *huh.Form
	creds *credentials
	err   error
}

func NewLoginModel(gate *auth.Gate) LoginModel {
	m := LoginModel{gate: gate, creds: &credentials{}}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.creds.username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.creds.password),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Admin Login" }
func (m LoginModel) ShortHelp() string { return "Enter: sign in | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	username := m.creds.username
	if !m.gate.Login(username, m.creds.password) {
		m.err = errors.New("invalid username or password")
		m.creds.password = ""
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	return m, func() tea.Msg { return LoggedInMsg{Username: username} }
}

func (m LoginModel) View() string {
	body := titleStyle.Render("EventDesk Admin") + "\n\n" + m.form.View()
	if m.err != nil {
		body += "\n" + errorLine(m.err)
	}

	return lipgloss.NewStyle().Padding(2).Render(body)
}
