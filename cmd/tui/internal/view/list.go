package view

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/recordstore"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateSearch
	listStateEdit
	listStateConfirm
)

// draft is an edit in progress. Its fields bind to the form inputs and save
// writes the parsed values through the store.
type draft interface {
	fields() []huh.Field
	save(ctx context.Context) error
}

// entity describes how one table is shown and edited.
type entity[T records.Row] struct {
	title    string
	columns  []table.Column
	row      func(T) table.Row
	statuses []string
	category func(T) string
	filter   func([]T, aggregate.Filter) []T
	summary  func([]T) string
	// draft starts a new row when existing is nil.
	draft    func(existing *T) draft
}

type TableModel[T records.Row] struct {
	CommonModel
	store  *recordstore.Store[T]
	entity entity[T]

	state   listState
	table   table.Model
	search  textinput.Model
	visible []T

	statusIdx   int
	categoryIdx int

	form      *huh.Form
	draft     draft
	editing   bool
	confirmed *bool

	loading bool
	err     error
	status  string
}

func newTableModel[T records.Row](store *recordstore.Store[T], e entity[T]) TableModel[T] {
	t := table.New(
		table.WithColumns(e.columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "/ "

	return TableModel[T]{
		store:     store,
		entity:    e,
		table:     t,
		search:    search,
		confirmed: new(bool),
		loading:   true,
	}
}

func (m TableModel[T]) Title() string { return m.entity.title }

func (m TableModel[T]) ShortHelp() string {
	switch m.state {
	case listStateSearch:
		return "Type to search | Enter/Esc: done"
	case listStateEdit, listStateConfirm:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | /: search | s: status | c: category | n: new | e: edit | d: delete | r: refresh"
}

func (m TableModel[T]) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TableModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tableLoadedMsg:
		m.loading = false
		m.err = nil

		if msg.err != "" {
			m.err = errors.New(msg.err)
		}

		m.refreshTable()

		return m, nil

	case tableSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		// A rejected save reopens the form with what was typed.
		if msg.err != nil && m.draft != nil {
			m.form = m.newForm()
			m.state = listStateEdit

			return m, m.form.Init()
		}

		m.state = listStateBrowse
		m.form = nil
		m.draft = nil
		m.table.Focus()
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg)
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateSearch:
		return m.updateSearch(msg)
	case listStateEdit, listStateConfirm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m TableModel[T]) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "/":
			m.state = listStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % (len(m.entity.statuses) + 1)
			m.refreshTable()

			return m, nil
		case "c":
			if m.entity.category != nil {
				m.categoryIdx = (m.categoryIdx + 1) % (len(m.categories()) + 1)
				m.refreshTable()
			}

			return m, nil
		case "n":
			return m.enterEdit(nil)
		case "e":
			if row, ok := m.selected(); ok {
				return m.enterEdit(&row)
			}

			return m, nil
		case "d":
			return m.enterConfirm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TableModel[T]) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.state = listStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshTable()

	return m, cmd
}

func (m TableModel[T]) enterEdit(existing *T) (tea.Model, tea.Cmd) {
	m.draft = m.entity.draft(existing)
	m.editing = existing != nil

	m.form = m.newForm()
	m.state = listStateEdit
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m TableModel[T]) newForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(m.draft.fields()...)).
		WithWidth(45).
		WithShowHelp(false)
}

func (m TableModel[T]) enterConfirm() (tea.Model, tea.Cmd) {
	if _, ok := m.selected(); !ok {
		return m, nil
	}

	*m.confirmed = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this record?").
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirmed),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m TableModel[T]) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.draft = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	next := m.saveCmd()
	if m.state == listStateConfirm {
		next = m.deleteCmd()
	}

	m.state = listStateBrowse
	m.form = nil
	m.status = "Saving..."

	return m, next
}

func (m TableModel[T]) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Loading %s...", m.entity.title))
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorLine(m.err) + "\n\n" + faintStyle.Render("r: retry | Esc: back"))
	}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(m.statusLabel()))
	if m.entity.category != nil {
		header += fmt.Sprintf(" | [c] Category: %s", activeStyle(m.categoryLabel()))
	}

	if m.state == listStateSearch || m.search.Value() != "" {
		header += "\n" + m.search.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.entity.title),
		m.entity.summary(m.store.Rows()),
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(fmt.Sprintf("%d of %d shown", len(m.visible), len(m.store.Rows()))),
	)

	if m.form != nil {
		heading := "New record"
		switch {
		case m.state == listStateConfirm:
			heading = "Delete record"
		case m.editing:
			heading = "Edit record"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(heading + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m TableModel[T]) statusLabel() string {
	if m.statusIdx == 0 {
		return "All"
	}

	return m.entity.statuses[m.statusIdx-1]
}

func (m TableModel[T]) categoryLabel() string {
	cats := m.categories()
	if m.categoryIdx == 0 || m.categoryIdx > len(cats) {
		return "All"
	}

	return cats[m.categoryIdx-1]
}

// categories lists the distinct category values present in the table.
func (m TableModel[T]) categories() []string {
	var out []string

	for _, r := range m.store.Rows() {
		c := m.entity.category(r)
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	slices.Sort(out)

	return out
}

func (m TableModel[T]) currentFilter() aggregate.Filter {
	f := aggregate.Filter{Search: m.search.Value()}

	if m.statusIdx > 0 {
		f.Status = m.statusLabel()
	}

	if m.entity.category != nil && m.categoryIdx > 0 {
		f.Category = m.categoryLabel()
	}

	return f
}

func (m *TableModel[T]) refreshTable() {
	m.visible = m.entity.filter(m.store.Rows(), m.currentFilter())

	rows := make([]table.Row, 0, len(m.visible))
	for _, r := range m.visible {
		rows = append(rows, m.entity.row(r))
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m TableModel[T]) selected() (T, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		var zero T
		return zero, false
	}

	return m.visible[idx], true
}

// Messages

type tableLoadedMsg struct {
	err string
}

func (m TableModel[T]) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		m.store.Refetch(ctx)

		return tableLoadedMsg{err: m.store.Err()}
	}
}

type tableSavedMsg struct {
	status string
	err    error
}

func (m TableModel[T]) saveCmd() tea.Cmd {
	d := m.draft
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := d.save(ctx); err != nil {
			return tableSavedMsg{err: describe(err)}
		}

		if editing {
			return tableSavedMsg{status: "Record updated"}
		}

		return tableSavedMsg{status: "Record created"}
	}
}

func (m TableModel[T]) deleteCmd() tea.Cmd {
	row, ok := m.selected()
	if !ok || !*m.confirmed {
		return func() tea.Msg { return tableSavedMsg{} }
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.store.Remove(ctx, row.RowID()); err != nil {
			return tableSavedMsg{err: describe(err)}
		}

		return tableSavedMsg{status: "Record deleted"}
	}
}

// describe flattens field errors into one line for the status bar.
func describe(err error) error {
	var ve *records.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) == 0 {
		return err
	}

	msg := ""
	for i, f := range ve.Fields {
		if i > 0 {
			msg += "; "
		}

		msg += f.Field + " " + f.Message
	}

	return errors.New(msg)
}
