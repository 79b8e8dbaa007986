// Package console wires one record store per table and loads the tables each
// admin page needs.
package console

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/recordstore"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
	"github.com/MrJamesThe3rd/eventdesk/internal/tablestore"
)

var (
	DashboardTables = []string{
		records.TableCustomers,
		records.TableEmployees,
		records.TableEvents,
		records.TableIncomeRecords,
		records.TableExpenseRecords,
	}

	ReportTables = append(DashboardTables[:len(DashboardTables):len(DashboardTables)], records.TableProfitDistributions)

	AllTables = append(ReportTables[:len(ReportTables):len(ReportTables)], records.TableReceipts)
)

type Console struct {
	Customers     *recordstore.Store[records.Customer]
	Employees     *recordstore.Store[records.Employee]
	Events        *recordstore.Store[records.Event]
	Income        *recordstore.Store[records.IncomeRecord]
	Expenses      *recordstore.Store[records.ExpenseRecord]
	Distributions *recordstore.Store[records.ProfitDistribution]
	Receipts      *recordstore.Store[records.Receipt]

	logger *zap.Logger
	stores map[string]table
}

// table is the type-erased part of a store that page loading needs.
type table interface {
	Name() string
	Refetch(ctx context.Context)
	Err() string
}

func New(backend tablestore.Backend, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}

	storeLogger := logger.Named("recordstore")

	c := &Console{
		Customers:     recordstore.New(tablestore.Open[records.Customer](backend), storeLogger),
		Employees:     recordstore.New(tablestore.Open[records.Employee](backend), storeLogger),
		Events:        recordstore.New(tablestore.Open[records.Event](backend), storeLogger),
		Income:        recordstore.New(tablestore.Open[records.IncomeRecord](backend), storeLogger),
		Expenses:      recordstore.New(tablestore.Open[records.ExpenseRecord](backend), storeLogger),
		Distributions: recordstore.New(tablestore.Open[records.ProfitDistribution](backend), storeLogger),
		Receipts:      recordstore.New(tablestore.Open[records.Receipt](backend), storeLogger),
		logger:        logger,
	}

	c.stores = map[string]table{}
	for _, s := range []table{c.Customers, c.Employees, c.Events, c.Income, c.Expenses, c.Distributions, c.Receipts} {
		c.stores[s.Name()] = s
	}

	return c
}

// Load fetches the named tables concurrently and waits for all of them. A
// failing table does not stop the others; each keeps its own error, and the
// returned error lists every table that failed.
func (c *Console) Load(ctx context.Context, tables ...string) error {
	stores := make([]table, 0, len(tables))

	for _, name := range tables {
		s, ok := c.stores[name]
		if !ok {
			return fmt.Errorf("unknown table %q", name)
		}

		stores = append(stores, s)
	}

	// Refetch records a failure on the store instead of returning it, and
	// one table failing must not cancel the others, so every goroutine
	// returns nil and the per-table errors are read back into results.
	var g errgroup.Group

	results := make([]error, len(stores))

	for i, s := range stores {
		g.Go(func() error {
			s.Refetch(ctx)

			if msg := s.Err(); msg != "" {
				results[i] = fmt.Errorf("%s: %s", s.Name(), msg)
			}

			return nil
		})
	}

	_ = g.Wait()

	errs := slices.DeleteFunc(results, func(err error) bool { return err == nil })

	if len(errs) > 0 {
		c.logger.Warn("page load incomplete", zap.Int("failed", len(errs)), zap.Int("tables", len(tables)))
	}

	return errors.Join(errs...)
}

func (c *Console) LoadDashboard(ctx context.Context) error { return c.Load(ctx, DashboardTables...) }

func (c *Console) LoadReports(ctx context.Context) error { return c.Load(ctx, ReportTables...) }

func (c *Console) LoadAll(ctx context.Context) error { return c.Load(ctx, AllTables...) }

// Rows snapshots every cache. Tables not loaded yet are nil.
func (c *Console) Rows() aggregate.Rows {
	return aggregate.Rows{
		Customers:     c.Customers.Rows(),
		Employees:     c.Employees.Rows(),
		Events:        c.Events.Rows(),
		Income:        c.Income.Rows(),
		Expenses:      c.Expenses.Rows(),
		Distributions: c.Distributions.Rows(),
		Receipts:      c.Receipts.Rows(),
	}
}

func (c *Console) Dashboard(now time.Time) aggregate.Dashboard {
	return aggregate.BuildDashboard(c.Rows(), now)
}

func (c *Console) Report(now time.Time) aggregate.Report {
	return aggregate.BuildReport(c.Rows(), now)
}
