// Package reports serves the dashboard and analytics pages.
package reports

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/console"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/respond"
)

type Handler struct {
	console *console.Console
	money   *aggregate.Money
	now     func() time.Time
}

func NewHandler(c *console.Console, money *aggregate.Money) *Handler {
	if money == nil {
		money = aggregate.DefaultMoney()
	}

	return &Handler{console: c, money: money, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/reports", h.reports)
}

// dashboard waits for every dashboard table; any failure fails the page.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	if err := h.console.LoadDashboard(r.Context()); err != nil {
		respond.Fail(w, respond.CodeUpstream, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, h.toDashboardResponse(h.console.Dashboard(h.now())))
}

func (h *Handler) reports(w http.ResponseWriter, r *http.Request) {
	if err := h.console.LoadReports(r.Context()); err != nil {
		respond.Fail(w, respond.CodeUpstream, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, h.toReportResponse(h.console.Report(h.now())))
}
