package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// amount carries the exact value and its display form.
type amount struct {
	Value   decimal.Decimal `json:"value"`
	Display string          `json:"display"`
}

func (h *Handler) amount(d decimal.Decimal) amount {
	return amount{Value: d, Display: h.money.Format(d)}
}

type eventResponse struct {
	ID           uuid.UUID           `json:"id"`
	EventName    string              `json:"event_name"`
	CustomerName string              `json:"customer_name"`
	EventDate    records.Date        `json:"event_date"`
	Status       records.EventStatus `json:"status"`
	Budget       amount              `json:"budget"`
}

type dashboardResponse struct {
	TotalIncome       amount          `json:"total_income"`
	TotalExpenses     amount          `json:"total_expenses"`
	NetProfit         amount          `json:"net_profit"`
	ProfitMargin      string          `json:"profit_margin"`
	ThisMonthIncome   amount          `json:"this_month_income"`
	ThisMonthExpenses amount          `json:"this_month_expenses"`
	TotalEvents       int             `json:"total_events"`
	ActiveEvents      int             `json:"active_events"`
	UpcomingEvents    int             `json:"upcoming_events"`
	TotalCustomers    int             `json:"total_customers"`
	ActiveEmployees   int             `json:"active_employees"`
	RecentEvents      []eventResponse `json:"recent_events"`
}

func (h *Handler) toDashboardResponse(d aggregate.Dashboard) dashboardResponse {
	recent := make([]eventResponse, 0, len(d.RecentEvents))
	for _, e := range d.RecentEvents {
		recent = append(recent, eventResponse{
			ID:           e.ID,
			EventName:    e.EventName,
			CustomerName: e.CustomerName,
			EventDate:    e.EventDate,
			Status:       e.Status,
			Budget:       h.amount(e.Budget),
		})
	}

	return dashboardResponse{
		TotalIncome:       h.amount(d.TotalIncome),
		TotalExpenses:     h.amount(d.TotalExpenses),
		NetProfit:         h.amount(d.NetProfit),
		ProfitMargin:      aggregate.Percent(d.ProfitMargin),
		ThisMonthIncome:   h.amount(d.ThisMonthIncome),
		ThisMonthExpenses: h.amount(d.ThisMonthExpenses),
		TotalEvents:       d.TotalEvents,
		ActiveEvents:      d.ActiveEvents,
		UpcomingEvents:    d.UpcomingEvents,
		TotalCustomers:    d.TotalCustomers,
		ActiveEmployees:   d.ActiveEmployees,
		RecentEvents:      recent,
	}
}

type insightResponse struct {
	Metric   string `json:"metric"`
	Value    string `json:"value"`
	OnTarget bool   `json:"on_target"`
	Badge    string `json:"badge"`
	Text     string `json:"text"`
}

type reportResponse struct {
	GeneratedAt time.Time `json:"generated_at"`
	Customers   struct {
		Total         int    `json:"total"`
		Active        int    `json:"active"`
		TotalValue    amount `json:"total_value"`
		RetentionRate string `json:"retention_rate"`
	} `json:"customers"`
	Employees struct {
		Total       int    `json:"total"`
		Active      int    `json:"active"`
		TotalSalary amount `json:"total_salary"`
	} `json:"employees"`
	Events struct {
		Total          int    `json:"total"`
		Active         int    `json:"active"`
		Completed      int    `json:"completed"`
		TotalBudget    amount `json:"total_budget"`
		CompletionRate string `json:"completion_rate"`
	} `json:"events"`
	Financial struct {
		TotalIncome     amount `json:"total_income"`
		TotalExpenses   amount `json:"total_expenses"`
		NetProfit       amount `json:"net_profit"`
		ProfitMargin    string `json:"profit_margin"`
		Month           string `json:"month"`
		MonthlyIncome   amount `json:"monthly_income"`
		MonthlyExpenses amount `json:"monthly_expenses"`
		MonthlyProfit   amount `json:"monthly_profit"`
	} `json:"financial"`
	Distributions struct {
		Count            int    `json:"count"`
		TotalDistributed amount `json:"total_distributed"`
		TotalRetained    amount `json:"total_retained"`
	} `json:"distributions"`
	Insights []insightResponse `json:"insights"`
}

func (h *Handler) toReportResponse(r aggregate.Report) reportResponse {
	var resp reportResponse

	resp.GeneratedAt = r.GeneratedAt

	resp.Customers.Total = r.Customers.Total
	resp.Customers.Active = r.Customers.Active
	resp.Customers.TotalValue = h.amount(r.Customers.TotalValue)
	resp.Customers.RetentionRate = aggregate.Percent(r.Customers.RetentionRate)

	resp.Employees.Total = r.Employees.Total
	resp.Employees.Active = r.Employees.Active
	resp.Employees.TotalSalary = h.amount(r.Employees.TotalSalary)

	resp.Events.Total = r.Events.Total
	resp.Events.Active = r.Events.Active
	resp.Events.Completed = r.Events.Completed
	resp.Events.TotalBudget = h.amount(r.Events.TotalBudget)
	resp.Events.CompletionRate = aggregate.Percent(r.Events.CompletionRate)

	resp.Financial.TotalIncome = h.amount(r.Financial.TotalIncome)
	resp.Financial.TotalExpenses = h.amount(r.Financial.TotalExpenses)
	resp.Financial.NetProfit = h.amount(r.Financial.NetProfit)
	resp.Financial.ProfitMargin = aggregate.Percent(r.Financial.ProfitMargin)
	resp.Financial.Month = r.Financial.Month
	resp.Financial.MonthlyIncome = h.amount(r.Financial.MonthlyIncome)
	resp.Financial.MonthlyExpenses = h.amount(r.Financial.MonthlyExpenses)
	resp.Financial.MonthlyProfit = h.amount(r.Financial.MonthlyProfit)

	resp.Distributions.Count = r.Distributions.Count
	resp.Distributions.TotalDistributed = h.amount(r.Distributions.TotalDistributed)
	resp.Distributions.TotalRetained = h.amount(r.Distributions.TotalRetained)

	resp.Insights = make([]insightResponse, 0, len(r.Insights))
	for _, in := range r.Insights {
		resp.Insights = append(resp.Insights, insightResponse{
			Metric:   in.Metric,
			Value:    aggregate.Percent(in.Value),
			OnTarget: in.OnTarget,
			Badge:    in.Badge,
			Text:     in.Text,
		})
	}

	return resp
}
