// Package snapshot periodically recomputes the business report and archives
// it to one or more sinks.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
)

const runTimeout = 2 * time.Minute

// Snapshot is the archived headline figures of one report.
type Snapshot struct {
	TakenAt          time.Time
	Month            string
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetProfit        decimal.Decimal
	ProfitMargin     decimal.Decimal
	MonthlyIncome    decimal.Decimal
	MonthlyExpenses  decimal.Decimal
	Customers        int
	ActiveCustomers  int
	Events           int
	CompletedEvents  int
	TotalDistributed decimal.Decimal
}

func FromReport(r aggregate.Report) Snapshot {
	return Snapshot{
		TakenAt:          r.GeneratedAt,
		Month:            r.Financial.Month,
		TotalIncome:      r.Financial.TotalIncome,
		TotalExpenses:    r.Financial.TotalExpenses,
		NetProfit:        r.Financial.NetProfit,
		ProfitMargin:     r.Financial.ProfitMargin,
		MonthlyIncome:    r.Financial.MonthlyIncome,
		MonthlyExpenses:  r.Financial.MonthlyExpenses,
		Customers:        r.Customers.Total,
		ActiveCustomers:  r.Customers.Active,
		Events:           r.Events.Total,
		CompletedEvents:  r.Events.Completed,
		TotalDistributed: r.Distributions.TotalDistributed,
	}
}

// Sink archives snapshots.
//
//go:generate mockgen -source=snapshot.go -destination=sink_mock.go -package=snapshot
type Sink interface {
	Name() string
	Save(ctx context.Context, s Snapshot) error
}

// Source refreshes the report tables and builds the report.
type Source interface {
	LoadReports(ctx context.Context) error
	Report(now time.Time) aggregate.Report
}

// Scheduler manages the snapshot job.
type Scheduler struct {
	cron   *cron.Cron
	spec   string
	source Source
	sinks  []Sink
	now    func() time.Time
	logger *zap.Logger
}

func NewScheduler(spec string, loc *time.Location, source Source, sinks []Sink, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		spec:   spec,
		source: source,
		sinks:  sinks,
		now:    time.Now,
		logger: logger,
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("scheduling snapshot %q: %w", s.spec, err)
	}

	s.logger.Info("starting snapshot scheduler", zap.String("spec", s.spec), zap.Int("sinks", len(s.sinks)))
	s.cron.Start()

	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping snapshot scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("snapshot failed", zap.Error(err))
	}
}

// RunOnce takes one snapshot. Tables that fail to load abort the run; a
// failing sink does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if err := s.source.LoadReports(ctx); err != nil {
		return fmt.Errorf("loading report tables: %w", err)
	}

	snap := FromReport(s.source.Report(s.now()))

	var errs []error

	for _, sink := range s.sinks {
		if err := sink.Save(ctx, snap); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}

		s.logger.Info("snapshot saved", zap.String("sink", sink.Name()), zap.String("month", snap.Month))
	}

	return errors.Join(errs...)
}
