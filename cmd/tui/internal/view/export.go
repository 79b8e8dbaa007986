package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/eventdesk/internal/export"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// datedTables are narrowed by the chosen range; every other table is
// written whole.
var datedTables = []string{
	records.TableEvents,
	records.TableIncomeRecords,
	records.TableExpenseRecords,
	records.TableReceipts,
}

var wholeTables = []string{
	records.TableCustomers,
	records.TableEmployees,
	records.TableProfitDistributions,
}

type exportStep int

const (
	stepRange exportStep = iota
	stepTarget
	stepWriting
	stepDone
)

// ExportModel walks through range, target directory and optional archive,
// then lists what landed on disk.
type ExportModel struct {
	CommonModel
	service *export.Service

	step    exportStep
	picker  TimeframePicker
	rng     TimeframeSelectedMsg
	target  *huh.Form
	dir     *string
	archive *bool
	spinner spinner.Model
	done    exportFinishedMsg
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return ExportModel{
		service: svc,
		step:    stepRange,
		picker:  NewTimeframePicker(TimeframeThisMonth),
		dir:     new("./exports"),
		archive: new(false),
		spinner: s,
	}
}

func (m ExportModel) Title() string { return "Export Business Report" }

func (m ExportModel) ShortHelp() string {
	switch m.step {
	case stepTarget:
		return "Esc: change range | Enter: next"
	case stepWriting:
		return "Writing files..."
	case stepDone:
		return "n: new export | Esc: back to menu"
	}

	return "Esc: back | Enter: select"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.step {
	case stepRange:
		if sel, ok := msg.(TimeframeSelectedMsg); ok {
			m.rng = sel
			m.target = m.targetForm()
			m.step = stepTarget

			return m, m.target.Init()
		}

		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.picker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case stepTarget:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			m.picker.Reset()
			m.step = stepRange

			return m, nil
		}

		form, cmd := m.target.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.target = f
		}

		if m.target.State != huh.StateCompleted {
			return m, cmd
		}

		m.step = stepWriting

		return m, tea.Batch(m.spinner.Tick, m.write(m.rng.Filter(), *m.dir, *m.archive))

	case stepWriting:
		if done, ok := msg.(exportFinishedMsg); ok {
			m.done = done
			m.step = stepDone

			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case stepDone:
		key, ok := msg.(tea.KeyMsg)
		if !ok {
			return m, nil
		}

		switch {
		case key.Type == tea.KeyEsc:
			return m, Back
		case key.String() == "n":
			m.picker.Reset()
			m.done = exportFinishedMsg{}
			m.step = stepRange
		}
	}

	return m, nil
}

func (m ExportModel) targetForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Range").
				Description(m.rng.Label()),
			huh.NewInput().
				Title("Directory").
				Description("Created when missing; existing files are overwritten").
				Placeholder("./exports").
				Value(m.dir),
			huh.NewConfirm().
				Title("Bundle the files into a zip next to the directory?").
				Affirmative("Yes").
				Negative("No").
				Value(m.archive),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ExportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.step {
	case stepRange:
		return pad.Render(m.picker.View())
	case stepTarget:
		return pad.Render(m.target.View())
	case stepWriting:
		return pad.Render(fmt.Sprintf("%s Refreshing all tables for %s and writing to %s", m.spinner.View(), m.rng.Label(), *m.dir))
	case stepDone:
		return pad.Render(m.viewDone())
	}

	return ""
}

func (m ExportModel) viewDone() string {
	if m.done.err != nil {
		return errorLine(m.done.err) + "\n\n" + faintStyle.Render("n: try again | Esc: back to menu")
	}

	var b strings.Builder

	b.WriteString(successStyle.Bold(true).Render("Export written to "+*m.dir) + "\n\n")
	b.WriteString(filterNote(m.rng) + "\n\n")

	for _, f := range m.done.files {
		rows := faintStyle.Render("report")
		if f.rows >= 0 {
			rows = fmt.Sprintf("%d rows", f.rows)
		}

		fmt.Fprintf(&b, "  %-26s %s\n", f.name, rows)
	}

	if m.done.archive != "" {
		b.WriteString("\n" + titleStyle.Render("Archive") + " " + m.done.archive + "\n")
	}

	b.WriteString("\n" + m.done.summary)

	return b.String()
}

// filterNote says which tables the range narrowed.
func filterNote(sel TimeframeSelectedMsg) string {
	if sel.All {
		return "All dates: every row of every table was exported."
	}

	return fmt.Sprintf("%s applied to %s.\n%s",
		titleStyle.Render(sel.Label()),
		strings.Join(datedTables, ", "),
		faintStyle.Render("Exported whole: "+strings.Join(wholeTables, ", ")))
}

// writtenFile is one file of a finished export. rows is -1 for the summary.
type writtenFile struct {
	name string
	rows int
}

type exportFinishedMsg struct {
	files   []writtenFile
	archive string
	summary string
	err     error
}

func writtenFiles(result *export.Result) []writtenFile {
	counts := map[string]int{
		records.TableCustomers:           len(result.Rows.Customers),
		records.TableEmployees:           len(result.Rows.Employees),
		records.TableEvents:              len(result.Rows.Events),
		records.TableIncomeRecords:       len(result.Rows.Income),
		records.TableExpenseRecords:      len(result.Rows.Expenses),
		records.TableProfitDistributions: len(result.Rows.Distributions),
		records.TableReceipts:            len(result.Rows.Receipts),
	}

	files := make([]writtenFile, 0, len(result.Files))

	for _, path := range result.Files {
		name := filepath.Base(path)

		rows, ok := counts[strings.TrimSuffix(name, ".csv")]
		if !ok {
			rows = -1
		}

		files = append(files, writtenFile{name: name, rows: rows})
	}

	return files
}

// writeArchive zips dir into a sibling file named after it.
func writeArchive(dir string) (string, error) {
	path := filepath.Clean(dir) + ".zip"

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating archive: %w", err)
	}

	if err := export.WriteZip(f, dir); err != nil {
		f.Close()
		return "", fmt.Errorf("writing archive: %w", err)
	}

	return path, f.Close()
}

func (m ExportModel) write(filter export.Filter, dir string, archive bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		result, err := m.service.Export(ctx, filter, dir)
		if err != nil {
			return exportFinishedMsg{err: err}
		}

		done := exportFinishedMsg{
			files:   writtenFiles(result),
			summary: m.service.GenerateSummary(result.Report),
		}

		if archive {
			if done.archive, err = writeArchive(dir); err != nil {
				return exportFinishedMsg{err: err}
			}
		}

		return done
	}
}
