package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/console"
	"github.com/MrJamesThe3rd/eventdesk/internal/forms"
	"github.com/MrJamesThe3rd/eventdesk/internal/recordstore"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

func NewCustomersModel(c *console.Console, money *aggregate.Money) TableModel[records.Customer] {
	store := c.Customers

	return newTableModel(store, entity[records.Customer]{
		title:   "Customers",
		columns: []table.Column{
			{Title: "Name", Width: 20},
			{Title: "Email", Width: 26},
			{Title: "Phone", Width: 14},
			{Title: "Company", Width: 18},
			{Title: "Status", Width: 10},
			{Title: "Events", Width: 7},
			{Title: "Spent", Width: 14},
			{Title: "Joined", Width: 12},
		},
		row: func(r records.Customer) table.Row {
			return table.Row{r.Name, r.Email, r.Phone, r.Company, string(r.Status),
				strconv.Itoa(r.TotalEvents), money.Format(r.TotalSpent), FormatDate(r.JoinDate)}
		},
		statuses: []string{string(records.CustomerActive), string(records.CustomerInactive)},
		filter:   aggregate.FilterCustomers,
		summary:  func(rows []records.Customer) string {
			s := aggregate.SummarizeCustomers(rows)
			return fmt.Sprintf("Total %d | Active %d | Revenue %s | Avg spent %s",
				s.Total, s.Active, money.Format(s.TotalRevenue), money.Format(s.AvgSpent))
		},
		draft: func(existing *records.Customer) draft {
			d := &customerDraft{store: store, status: string(records.CustomerActive)}
			if existing != nil {
				d.id = existing.ID
				d.name, d.email, d.phone = existing.Name, existing.Email, existing.Phone
				d.company, d.address, d.notes = existing.Company, existing.Address, existing.Notes
				d.status = string(existing.Status)
			}

			return d
		},
	})
}

type customerDraft struct {
	store *recordstore.Store[records.Customer]
	id    uuid.UUID

	name, email, phone, company, address, notes, status string
}

func (d *customerDraft) fields() []huh.Field {
	return []huh.Field{
		input("Name", &d.name),
		input("Email", &d.email),
		input("Phone", &d.phone),
		input("Company", &d.company),
		input("Address", &d.address),
		huh.NewText().Title("Notes").Value(&d.notes),
		choice("Status", &d.status, string(records.CustomerActive), string(records.CustomerInactive)),
	}
}

func (d *customerDraft) save(ctx context.Context) error {
	f := forms.Customer{
		Name:    d.name,
		Email:   d.email,
		Phone:   d.phone,
		Company: d.company,
		Address: d.address,
		Notes:   d.notes,
		Status:  records.CustomerStatus(d.status),
	}

	return persist(ctx, d.store, d.id, func() recordstore.Payload { return f.Insert(records.NewDate(time.Now())) }, f.Patch)
}

func NewEmployeesModel(c *console.Console, money *aggregate.Money) TableModel[records.Employee] {
	store := c.Employees

	return newTableModel(store, entity[records.Employee]{
		title:   "Employees",
		columns: []table.Column{
			{Title: "Name", Width: 20},
			{Title: "Position", Width: 18},
			{Title: "Department", Width: 16},
			{Title: "Salary", Width: 14},
			{Title: "Status", Width: 10},
			{Title: "Performance", Width: 18},
			{Title: "Joined", Width: 12},
		},
		row: func(r records.Employee) table.Row {
			return table.Row{r.Name, r.Position, r.Department, money.Format(r.Salary),
				string(r.Status), string(r.Performance), FormatDate(r.JoinDate)}
		},
		statuses: []string{string(records.EmployeeActive), string(records.EmployeeInactive)},
		category: func(r records.Employee) string { return r.Department },
		filter:   aggregate.FilterEmployees,
		summary:  func(rows []records.Employee) string {
			s := aggregate.SummarizeEmployees(rows)
			return fmt.Sprintf("Total %d | Active %d | Salaries %s", s.Total, s.Active, money.Format(s.TotalSalary))
		},
		draft: func(existing *records.Employee) draft {
			d := &employeeDraft{
				store:       store,
				joinDate:    records.NewDate(time.Now()).String(),
				status:      string(records.EmployeeActive),
				performance: string(records.PerformanceGood),
			}
			if existing != nil {
				d.id = existing.ID
				d.name, d.email, d.phone = existing.Name, existing.Email, existing.Phone
				d.position, d.department = existing.Position, existing.Department
				d.salary = existing.Salary.String()
				d.joinDate = existing.JoinDate.String()
				d.address, d.emergency, d.notes = existing.Address, existing.EmergencyContact, existing.Notes
				d.status, d.performance = string(existing.Status), string(existing.Performance)
			}

			return d
		},
	})
}

type employeeDraft struct {
	store *recordstore.Store[records.Employee]
	id    uuid.UUID

	name, email, phone, position, department string
	salary, joinDate                         string
	address, emergency, notes                string
	status, performance                      string
}

func (d *employeeDraft) fields() []huh.Field {
	return []huh.Field{
		input("Name", &d.name),
		input("Email", &d.email),
		input("Phone", &d.phone),
		input("Position", &d.position),
		input("Department", &d.department),
		input("Salary", &d.salary),
		input("Join date (YYYY-MM-DD)", &d.joinDate),
		input("Address", &d.address),
		input("Emergency contact", &d.emergency),
		huh.NewText().Title("Notes").Value(&d.notes),
		choice("Status", &d.status, string(records.EmployeeActive), string(records.EmployeeInactive)),
		choice("Performance", &d.performance,
			string(records.PerformanceExcellent),
			string(records.PerformanceGood),
			string(records.PerformanceAverage),
			string(records.PerformanceNeedsImprovement),
		),
	}
}

func (d *employeeDraft) save(ctx context.Context) error {
	salary, err := forms.ParseAmount("salary", d.salary)
	if err != nil {
		return err
	}

	joined, err := forms.ParseDateField("join_date", d.joinDate)
	if err != nil {
		return err
	}

	f := forms.Employee{
		Name:             d.name,
		Email:            d.email,
		Phone:            d.phone,
		Position:         d.position,
		Department:       d.department,
		Salary:           salary,
		JoinDate:         joined,
		Address:          d.address,
		EmergencyContact: d.emergency,
		Notes:            d.notes,
		Status:           records.EmployeeStatus(d.status),
		Performance:      records.Performance(d.performance),
	}

	return persist(ctx, d.store, d.id, f.Insert, f.Patch)
}

var eventStatuses = []string{
	string(records.EventPlanning),
	string(records.EventConfirmed),
	string(records.EventInProgress),
	string(records.EventCompleted),
	string(records.EventCancelled),
}

func NewEventsModel(c *console.Console, money *aggregate.Money) TableModel[records.Event] {
	store := c.Events

	return newTableModel(store, entity[records.Event]{
		title:   "Events",
		columns: []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Event", Width: 22},
			{Title: "Type", Width: 14},
			{Title: "Customer", Width: 18},
			{Title: "Location", Width: 16},
			{Title: "Staff", Width: 14},
			{Title: "Budget", Width: 14},
			{Title: "Status", Width: 12},
		},
		row: func(r records.Event) table.Row {
			return table.Row{FormatDate(r.EventDate), r.EventName, r.EventType, r.CustomerName,
				r.Location, r.EmployeeName, money.Format(r.Budget), string(r.Status)}
		},
		statuses: eventStatuses,
		category: func(r records.Event) string { return r.EventType },
		filter:   aggregate.FilterEvents,
		summary:  func(rows []records.Event) string {
			s := aggregate.SummarizeEvents(rows)
			return fmt.Sprintf("Total %d | In progress %d | Completed %d | Budget %s",
				s.Total, s.Active, s.Completed, money.Format(s.TotalBudget))
		},
		draft: func(existing *records.Event) draft {
			d := &eventDraft{store: store, status: string(records.EventPlanning)}
			if existing != nil {
				d.id = existing.ID
				d.name, d.kind = existing.EventName, existing.EventType
				d.customer, d.phone, d.email = existing.CustomerName, existing.CustomerPhone, existing.CustomerEmail
				d.location, d.staff = existing.Location, existing.EmployeeName
				d.date = existing.EventDate.String()
				d.budget = existing.Budget.String()
				d.description = existing.Description
				d.status = string(existing.Status)
			}

			return d
		},
	})
}

type eventDraft struct {
	store *recordstore.Store[records.Event]
	id    uuid.UUID

	name, kind, customer, phone, email string
	location, date, staff, budget      string
	description, status                string
}

func (d *eventDraft) fields() []huh.Field {
	return []huh.Field{
		input("Event name", &d.name),
		input("Event type", &d.kind),
		input("Customer name", &d.customer),
		input("Customer phone", &d.phone),
		input("Customer email", &d.email),
		input("Location", &d.location),
		input("Event date (YYYY-MM-DD)", &d.date),
		input("Assigned employee", &d.staff),
		input("Budget", &d.budget),
		huh.NewText().Title("Description").Value(&d.description),
		choice("Status", &d.status, eventStatuses...),
	}
}

func (d *eventDraft) save(ctx context.Context) error {
	budget, err := forms.ParseAmount("budget", d.budget)
	if err != nil {
		return err
	}

	date, err := forms.ParseDateField("event_date", d.date)
	if err != nil {
		return err
	}

	f := forms.Event{
		EventName:     d.name,
		EventType:     d.kind,
		CustomerName:  d.customer,
		CustomerPhone: d.phone,
		CustomerEmail: d.email,
		Location:      d.location,
		EventDate:     date,
		EmployeeName:  d.staff,
		Budget:        budget,
		Description:   d.description,
		Status:        records.EventStatus(d.status),
	}

	return persist(ctx, d.store, d.id, f.Insert, f.Patch)
}

var incomeStatuses = []string{
	string(records.IncomeReceived),
	string(records.IncomePending),
	string(records.IncomeOverdue),
}

func NewIncomeModel(c *console.Console, money *aggregate.Money) TableModel[records.IncomeRecord] {
	store := c.Income

	return newTableModel(store, entity[records.IncomeRecord]{
		title:   "Income",
		columns: []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Event", Width: 22},
			{Title: "Customer", Width: 18},
			{Title: "Amount", Width: 14},
			{Title: "Method", Width: 14},
			{Title: "Status", Width: 10},
		},
		row: func(r records.IncomeRecord) table.Row {
			return table.Row{FormatDate(r.Date), r.EventName, r.CustomerName,
				money.Format(r.Amount), r.PaymentMethod, string(r.Status)}
		},
		statuses: incomeStatuses,
		filter:   aggregate.FilterIncome,
		summary:  func(rows []records.IncomeRecord) string {
			s := aggregate.SummarizeIncome(rows)
			return fmt.Sprintf("Total %s | Received %s | Pending %s",
				money.Format(s.Total), money.Format(s.Received), money.Format(s.Pending))
		},
		draft: func(existing *records.IncomeRecord) draft {
			d := &incomeDraft{
				store:  store,
				date:   records.NewDate(time.Now()).String(),
				status: string(records.IncomeReceived),
			}
			if existing != nil {
				d.id = existing.ID
				d.event, d.customer = existing.EventName, existing.CustomerName
				d.amount = existing.Amount.String()
				d.method, d.description = existing.PaymentMethod, existing.Description
				d.date = existing.Date.String()
				d.status = string(existing.Status)
			}

			return d
		},
	})
}

type incomeDraft struct {
	store *recordstore.Store[records.IncomeRecord]
	id    uuid.UUID

	event, customer, amount, method string
	description, date, status       string
}

func (d *incomeDraft) fields() []huh.Field {
	return []huh.Field{
		input("Event name", &d.event),
		input("Customer name", &d.customer),
		input("Amount", &d.amount),
		input("Payment method", &d.method),
		input("Date (YYYY-MM-DD)", &d.date),
		huh.NewText().Title("Description").Value(&d.description),
		choice("Status", &d.status, incomeStatuses...),
	}
}

func (d *incomeDraft) save(ctx context.Context) error {
	amount, err := forms.ParseAmount("amount", d.amount)
	if err != nil {
		return err
	}

	date, err := forms.ParseDateField("date", d.date)
	if err != nil {
		return err
	}

	f := forms.Income{
		EventName:     d.event,
		CustomerName:  d.customer,
		Amount:        amount,
		PaymentMethod: d.method,
		Description:   d.description,
		Date:          date,
		Status:        records.IncomeStatus(d.status),
	}

	return persist(ctx, d.store, d.id, f.Insert, f.Patch)
}

var expenseStatuses = []string{
	string(records.ExpensePaid),
	string(records.ExpensePending),
	string(records.ExpenseOverdue),
}

func NewExpensesModel(c *console.Console, money *aggregate.Money) TableModel[records.ExpenseRecord] {
	store := c.Expenses

	return newTableModel(store, entity[records.ExpenseRecord]{
		title:   "Expenses",
		columns: []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Category", Width: 16},
			{Title: "Description", Width: 26},
			{Title: "Vendor", Width: 16},
			{Title: "Amount", Width: 14},
			{Title: "Status", Width: 10},
		},
		row: func(r records.ExpenseRecord) table.Row {
			return table.Row{FormatDate(r.Date), r.Category, r.Description, r.Vendor,
				money.Format(r.Amount), string(r.Status)}
		},
		statuses: expenseStatuses,
		category: func(r records.ExpenseRecord) string { return r.Category },
		filter:   aggregate.FilterExpenses,
		summary:  func(rows []records.ExpenseRecord) string {
			s := aggregate.SummarizeExpenses(rows, time.Now())
			return fmt.Sprintf("Total %s | This month %s", money.Format(s.Total), money.Format(s.ThisMonth))
		},
		draft: func(existing *records.ExpenseRecord) draft {
			d := &expenseDraft{
				store:  store,
				date:   records.NewDate(time.Now()).String(),
				status: string(records.ExpensePaid),
			}
			if existing != nil {
				d.id = existing.ID
				d.category, d.description, d.vendor = existing.Category, existing.Description, existing.Vendor
				d.amount = existing.Amount.String()
				d.method, d.receipt = existing.PaymentMethod, existing.ReceiptNumber
				d.date = existing.Date.String()
				d.status = string(existing.Status)
			}

			return d
		},
	})
}

type expenseDraft struct {
	store *recordstore.Store[records.ExpenseRecord]
	id    uuid.UUID

	category, description, amount, vendor string
	method, date, receipt, status         string
}

func (d *expenseDraft) fields() []huh.Field {
	return []huh.Field{
		input("Category", &d.category),
		input("Description", &d.description),
		input("Amount", &d.amount),
		input("Vendor", &d.vendor),
		input("Payment method", &d.method),
		input("Date (YYYY-MM-DD)", &d.date),
		input("Receipt number", &d.receipt),
		choice("Status", &d.status, expenseStatuses...),
	}
}

func (d *expenseDraft) save(ctx context.Context) error {
	amount, err := forms.ParseAmount("amount", d.amount)
	if err != nil {
		return err
	}

	date, err := forms.ParseDateField("date", d.date)
	if err != nil {
		return err
	}

	f := forms.Expense{
		Category:      d.category,
		Description:   d.description,
		Amount:        amount,
		Vendor:        d.vendor,
		PaymentMethod: d.method,
		Date:          date,
		ReceiptNumber: d.receipt,
		Status:        records.ExpenseStatus(d.status),
	}

	return persist(ctx, d.store, d.id, f.Insert, f.Patch)
}

func NewDistributionsModel(c *console.Console, money *aggregate.Money) TableModel[records.ProfitDistribution] {
	store := c.Distributions

	return newTableModel(store, entity[records.ProfitDistribution]{
		title:   "Profit Distribution",
		columns: []table.Column{
			{Title: "Month", Width: 10},
			{Title: "Year", Width: 6},
			{Title: "Profit", Width: 14},
			{Title: "P1 %", Width: 6},
			{Title: "P2 %", Width: 6},
			{Title: "P1 share", Width: 14},
			{Title: "P2 share", Width: 14},
			{Title: "Date", Width: 12},
		},
		row: func(r records.ProfitDistribution) table.Row {
			return table.Row{r.Month, strconv.Itoa(r.Year), money.Format(r.TotalProfit),
				r.Partner1Percentage.String(), r.Partner2Percentage.String(),
				money.Format(r.Partner1Share), money.Format(r.Partner2Share), FormatDate(r.DistributionDate)}
		},
		filter:  aggregate.FilterDistributions,
		summary: func(rows []records.ProfitDistribution) string {
			s := aggregate.SummarizeDistributions(rows)
			return fmt.Sprintf("Distributions %d | Distributed %s", s.Count, money.Format(s.TotalDistributed))
		},
		draft: func(existing *records.ProfitDistribution) draft {
			now := time.Now()
			d := &distributionDraft{
				store: store,
				month: now.Month().String(),
				year:  strconv.Itoa(now.Year()),
				p1:    "50",
				p2:    "50",
				date:  records.NewDate(now).String(),
			}
			if existing != nil {
				d.id = existing.ID
				d.month, d.year = existing.Month, strconv.Itoa(existing.Year)
				d.profit = existing.TotalProfit.String()
				d.p1, d.p2 = existing.Partner1Percentage.String(), existing.Partner2Percentage.String()
				d.date = existing.DistributionDate.String()
			}

			return d
		},
	})
}

type distributionDraft struct {
	store *recordstore.Store[records.ProfitDistribution]
	id    uuid.UUID

	month, year, profit, p1, p2, date string
}

func (d *distributionDraft) fields() []huh.Field {
	return []huh.Field{
		input("Month", &d.month),
		input("Year", &d.year),
		input("Total profit", &d.profit),
		input("Partner 1 %", &d.p1),
		input("Partner 2 %", &d.p2),
		input("Distribution date (YYYY-MM-DD)", &d.date),
	}
}

func (d *distributionDraft) save(ctx context.Context) error {
	year, err := strconv.Atoi(strings.TrimSpace(d.year))
	if err != nil {
		return &records.ValidationError{Fields: []records.FieldError{{Field: "year", Message: "must be a whole number"}}}
	}

	amounts := make([]decimal.Decimal, 3)
	for i, in := range []struct{ field, value string }{
		{"total_profit", d.profit},
		{"partner1_percentage", d.p1},
		{"partner2_percentage", d.p2},
	} {
		if amounts[i], err = forms.ParseAmount(in.field, in.value); err != nil {
			return err
		}
	}

	date, err := forms.ParseDateField("distribution_date", d.date)
	if err != nil {
		return err
	}

	f := forms.ProfitDistribution{
		Month:            d.month,
		Year:             year,
		TotalProfit:      amounts[0],
		Partner1Pct:      amounts[1],
		Partner2Pct:      amounts[2],
		DistributionDate: date,
	}

	return persist(ctx, d.store, d.id, f.Insert, f.Patch)
}

var receiptStatuses = []string{string(records.ReceiptPaid), string(records.ReceiptPending)}

func NewReceiptsModel(c *console.Console, money *aggregate.Money) TableModel[records.Receipt] {
	store := c.Receipts

	return newTableModel(store, entity[records.Receipt]{
		title:   "Receipts",
		columns: []table.Column{
			{Title: "Number", Width: 18},
			{Title: "Date", Width: 12},
			{Title: "Customer", Width: 18},
			{Title: "Event", Width: 22},
			{Title: "Amount", Width: 14},
			{Title: "Method", Width: 12},
			{Title: "Status", Width: 9},
		},
		row: func(r records.Receipt) table.Row {
			return table.Row{r.ReceiptNumber, FormatDate(r.Date), r.CustomerName, r.EventName,
				money.Format(r.Amount), r.PaymentMethod, string(r.Status)}
		},
		statuses: receiptStatuses,
		filter:   aggregate.FilterReceipts,
		summary:  func(rows []records.Receipt) string {
			s := aggregate.SummarizeReceipts(rows)
			return fmt.Sprintf("Receipts %d | Total %s", s.Count, money.Format(s.TotalAmount))
		},
		draft: func(existing *records.Receipt) draft {
			now := time.Now()
			d := &receiptDraft{
				store:  store,
				number: forms.NewReceiptNumber(now),
				date:   records.NewDate(now).String(),
				status: string(records.ReceiptPaid),
			}
			if existing != nil {
				d.id = existing.ID
				d.number = existing.ReceiptNumber
				d.customer, d.event = existing.CustomerName, existing.EventName
				d.amount = existing.Amount.String()
				d.method = existing.PaymentMethod
				d.date = existing.Date.String()
				d.status = string(existing.Status)
			}

			return d
		},
	})
}

type receiptDraft struct {
	store *recordstore.Store[records.Receipt]
	id    uuid.UUID

	number, customer, event, amount string
	method, date, status            string
}

func (d *receiptDraft) fields() []huh.Field {
	return []huh.Field{
		input("Receipt number", &d.number),
		input("Customer name", &d.customer),
		input("Event name", &d.event),
		input("Amount", &d.amount),
		input("Payment method", &d.method),
		input("Date (YYYY-MM-DD)", &d.date),
		choice("Status", &d.status, receiptStatuses...),
	}
}

func (d *receiptDraft) save(ctx context.Context) error {
	amount, err := forms.ParseAmount("amount", d.amount)
	if err != nil {
		return err
	}

	date, err := forms.ParseDateField("date", d.date)
	if err != nil {
		return err
	}

	number := strings.TrimSpace(d.number)
	if number == "" {
		number = forms.NewReceiptNumber(time.Now())
	}

	f := forms.Receipt{
		ReceiptNumber: number,
		CustomerName:  d.customer,
		EventName:     d.event,
		Amount:        amount,
		PaymentMethod: d.method,
		Date:          date,
		Status:        records.ReceiptStatus(d.status),
	}

	return persist(ctx, d.store, d.id, f.Insert, f.Patch)
}

// persist creates the row when id is unset and patches it otherwise.
func persist[T records.Row](ctx context.Context, store *recordstore.Store[T], id uuid.UUID, insert, patch func() recordstore.Payload) error {
	var err error
	if id == uuid.Nil {
		_, err = store.Create(ctx, insert())
	} else {
		_, err = store.Update(ctx, id, patch())
	}

	return err
}

func input(title string, value *string) *huh.Input {
	return huh.NewInput().Title(title).Value(value)
}

func choice(title string, value *string, options ...string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(value)
}
