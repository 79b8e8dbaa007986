package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

const SummaryFile = "summary.txt"

// Filter limits dated rows (income, expenses, receipts, events) to a range.
// Nil bounds are open.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

func (f Filter) includes(d records.Date) bool {
	if f.StartDate == nil && f.EndDate == nil {
		return true
	}

	if d.IsZero() {
		return false
	}

	if f.StartDate != nil && d.Before(records.NewDate(*f.StartDate).Time) {
		return false
	}

	if f.EndDate != nil && d.After(records.NewDate(*f.EndDate).Time) {
		return false
	}

	return true
}

// Source loads and hands out every table.
type Source interface {
	LoadAll(ctx context.Context) error
	Rows() aggregate.Rows
}

// Result lists the files written and the report they summarize.
type Result struct {
	Files  []string
	Report aggregate.Report
	Rows   aggregate.Rows
}

// Service handles the export of the report archive.
type Service struct {
	source Source
	money  *aggregate.Money
	now    func() time.Time
	logger *zap.Logger
}

func NewService(source Source, money *aggregate.Money, logger *zap.Logger) *Service {
	if money == nil {
		money = aggregate.DefaultMoney()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{source: source, money: money, now: time.Now, logger: logger}
}

// Export refreshes every table and writes one CSV per table plus a summary
// into outputDir. Any table failing to load aborts the export.
func (s *Service) Export(ctx context.Context, filter Filter, outputDir string) (*Result, error) {
	if err := s.source.LoadAll(ctx); err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}

	rows := filterRows(s.source.Rows(), filter)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tables := []struct {
		name   string
		header []string
		lines  [][]string
	}{
		{records.TableCustomers, customerHeader, lines(rows.Customers, customerLine)},
		{records.TableEmployees, employeeHeader, lines(rows.Employees, employeeLine)},
		{records.TableEvents, eventHeader, lines(rows.Events, eventLine)},
		{records.TableIncomeRecords, incomeHeader, lines(rows.Income, incomeLine)},
		{records.TableExpenseRecords, expenseHeader, lines(rows.Expenses, expenseLine)},
		{records.TableProfitDistributions, distributionHeader, lines(rows.Distributions, distributionLine)},
		{records.TableReceipts, receiptHeader, lines(rows.Receipts, receiptLine)},
	}

	result := &Result{Rows: rows, Report: aggregate.BuildReport(rows, s.now())}

	for _, t := range tables {
		path := filepath.Join(outputDir, t.name+".csv")
		if err := writeCSV(path, t.header, t.lines); err != nil {
			return nil, fmt.Errorf("writing %s: %w", t.name, err)
		}

		result.Files = append(result.Files, path)
	}

	summaryPath := filepath.Join(outputDir, SummaryFile)
	if err := os.WriteFile(summaryPath, []byte(s.GenerateSummary(result.Report)), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	result.Files = append(result.Files, summaryPath)

	s.logger.Info("report exported", zap.String("dir", outputDir), zap.Int("files", len(result.Files)))

	return result, nil
}

// GenerateSummary renders the report as plain text.
func (s *Service) GenerateSummary(r aggregate.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Business report generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	fmt.Fprintf(&sb, "Financial\n")
	fmt.Fprintf(&sb, "* Total income: %s\n", s.money.Format(r.Financial.TotalIncome))
	fmt.Fprintf(&sb, "* Total expenses: %s\n", s.money.Format(r.Financial.TotalExpenses))
	fmt.Fprintf(&sb, "* Net profit: %s\n", s.money.Format(r.Financial.NetProfit))
	fmt.Fprintf(&sb, "* Profit margin: %s\n", aggregate.Percent(r.Financial.ProfitMargin))
	fmt.Fprintf(&sb, "* %s income: %s | expenses: %s | profit: %s\n\n", r.Financial.Month,
		s.money.Format(r.Financial.MonthlyIncome),
		s.money.Format(r.Financial.MonthlyExpenses),
		s.money.Format(r.Financial.MonthlyProfit))

	fmt.Fprintf(&sb, "Customers: %d (%d active), value %s, retention %s\n",
		r.Customers.Total, r.Customers.Active, s.money.Format(r.Customers.TotalValue), aggregate.Percent(r.Customers.RetentionRate))
	fmt.Fprintf(&sb, "Employees: %d (%d active), salaries %s\n",
		r.Employees.Total, r.Employees.Active, s.money.Format(r.Employees.TotalSalary))
	fmt.Fprintf(&sb, "Events: %d (%d in progress, %d completed), budget %s, completion %s\n",
		r.Events.Total, r.Events.Active, r.Events.Completed, s.money.Format(r.Events.TotalBudget), aggregate.Percent(r.Events.CompletionRate))
	fmt.Fprintf(&sb, "Profit distributions: %d, distributed %s, retained %s\n\n",
		r.Distributions.Count, s.money.Format(r.Distributions.TotalDistributed), s.money.Format(r.Distributions.TotalRetained))

	fmt.Fprintf(&sb, "Insights\n")

	for _, in := range r.Insights {
		fmt.Fprintf(&sb, "* [%s] %s\n", in.Badge, in.Text)
	}

	return sb.String()
}

func filterRows(rows aggregate.Rows, f Filter) aggregate.Rows {
	rows.Events = keep(rows.Events, func(e records.Event) bool { return f.includes(e.EventDate) })
	rows.Income = keep(rows.Income, func(r records.IncomeRecord) bool { return f.includes(r.Date) })
	rows.Expenses = keep(rows.Expenses, func(r records.ExpenseRecord) bool { return f.includes(r.Date) })
	rows.Receipts = keep(rows.Receipts, func(r records.Receipt) bool { return f.includes(r.Date) })

	return rows
}

func keep[T any](rows []T, match func(T) bool) []T {
	out := make([]T, 0, len(rows))

	for _, r := range rows {
		if match(r) {
			out = append(out, r)
		}
	}

	return out
}

func lines[T any](rows []T, line func(T) []string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, line(r))
	}

	return out
}

func writeCSV(path string, header []string, lines [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(header); err != nil {
		return err
	}

	if err := w.WriteAll(lines); err != nil {
		return err
	}

	return f.Close()
}

var (
	customerHeader     = []string{"id", "name", "email", "phone", "company", "address", "status", "total_events", "total_spent", "join_date", "notes"}
	employeeHeader     = []string{"id", "name", "email", "phone", "position", "department", "salary", "join_date", "status", "events_handled", "performance"}
	eventHeader        = []string{"id", "event_name", "event_type", "customer_name", "customer_phone", "customer_email", "location", "event_date", "employee_name", "budget", "status", "description"}
	incomeHeader       = []string{"id", "date", "event_name", "customer_name", "amount", "payment_method", "status", "description"}
	expenseHeader      = []string{"id", "date", "category", "description", "amount", "vendor", "payment_method", "receipt_number", "status"}
	distributionHeader = []string{"id", "month", "year", "total_profit", "partner1_percentage", "partner2_percentage", "partner1_share", "partner2_share", "distributed", "distribution_date"}
	receiptHeader      = []string{"id", "receipt_number", "date", "customer_name", "event_name", "amount", "payment_method", "status"}
)

func customerLine(c records.Customer) []string {
	return []string{c.ID.String(), c.Name, c.Email, c.Phone, c.Company, c.Address, string(c.Status),
		strconv.Itoa(c.TotalEvents), c.TotalSpent.String(), c.JoinDate.String(), c.Notes}
}

func employeeLine(e records.Employee) []string {
	return []string{e.ID.String(), e.Name, e.Email, e.Phone, e.Position, e.Department, e.Salary.String(),
		e.JoinDate.String(), string(e.Status), strconv.Itoa(e.EventsHandled), string(e.Performance)}
}

func eventLine(e records.Event) []string {
	return []string{e.ID.String(), e.EventName, e.EventType, e.CustomerName, e.CustomerPhone, e.CustomerEmail,
		e.Location, e.EventDate.String(), e.EmployeeName, e.Budget.String(), string(e.Status), e.Description}
}

func incomeLine(r records.IncomeRecord) []string {
	return []string{r.ID.String(), r.Date.String(), r.EventName, r.CustomerName, r.Amount.String(),
		r.PaymentMethod, string(r.Status), r.Description}
}

func expenseLine(r records.ExpenseRecord) []string {
	return []string{r.ID.String(), r.Date.String(), r.Category, r.Description, r.Amount.String(),
		r.Vendor, r.PaymentMethod, r.ReceiptNumber, string(r.Status)}
}

func distributionLine(p records.ProfitDistribution) []string {
	return []string{p.ID.String(), p.Month, strconv.Itoa(p.Year), p.TotalProfit.String(),
		p.Partner1Percentage.String(), p.Partner2Percentage.String(), p.Partner1Share.String(), p.Partner2Share.String(),
		strconv.FormatBool(p.Distributed), p.DistributionDate.String()}
}

func receiptLine(r records.Receipt) []string {
	return []string{r.ID.String(), r.ReceiptNumber, r.Date.String(), r.CustomerName, r.EventName,
		r.Amount.String(), r.PaymentMethod, string(r.Status)}
}
