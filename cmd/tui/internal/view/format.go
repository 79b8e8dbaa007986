package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// FormatDate renders a calendar date, or a dash when unset.
func FormatDate(d records.Date) string {
	if d.IsZero() {
		return "-"
	}

	return d.String()
}

// StoreCtx returns the context for table store calls. It carries no
// deadline: a slow store keeps the screen in its loading state.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	cardStyle    = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorLine(err error) string {
	return errorStyle.Render(fmt.Sprintf("Error: %v", err))
}

// card renders one summary figure.
func card(label, value string) string {
	return cardStyle.Render(faintStyle.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value))
}

func cards(items ...[2]string) string {
	rendered := make([]string, 0, len(items))
	for _, it := range items {
		rendered = append(rendered, card(it[0], it[1]))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
