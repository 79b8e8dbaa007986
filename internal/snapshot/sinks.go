package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// MongoSink inserts one document per snapshot.
type MongoSink struct {
	client   *mongo.Client
	dbName   string
	collName string
}

func NewMongoSink(ctx context.Context, uri, dbName string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoSink{client: client, dbName: dbName, collName: "report_snapshots"}, nil
}

func (m *MongoSink) Name() string { return "mongodb" }

func (m *MongoSink) Save(ctx context.Context, s Snapshot) error {
	doc, err := snapshotDocument(s)
	if err != nil {
		return err
	}

	if _, err := m.client.Database(m.dbName).Collection(m.collName).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

func (m *MongoSink) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// snapshotDocument stores money as Decimal128 so sums stay exact in queries.
func snapshotDocument(s Snapshot) (bson.D, error) {
	money := map[string]decimal.Decimal{
		"total_income":      s.TotalIncome,
		"total_expenses":    s.TotalExpenses,
		"net_profit":        s.NetProfit,
		"profit_margin":     s.ProfitMargin,
		"monthly_income":    s.MonthlyIncome,
		"monthly_expenses":  s.MonthlyExpenses,
		"total_distributed": s.TotalDistributed,
	}

	converted := make(map[string]primitive.Decimal128, len(money))

	for k, v := range money {
		d, err := primitive.ParseDecimal128(v.String())
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", k, err)
		}

		converted[k] = d
	}

	return bson.D{
		{Key: "taken_at", Value: s.TakenAt},
		{Key: "month", Value: s.Month},
		{Key: "total_income", Value: converted["total_income"]},
		{Key: "total_expenses", Value: converted["total_expenses"]},
		{Key: "net_profit", Value: converted["net_profit"]},
		{Key: "profit_margin", Value: converted["profit_margin"]},
		{Key: "monthly_income", Value: converted["monthly_income"]},
		{Key: "monthly_expenses", Value: converted["monthly_expenses"]},
		{Key: "customers", Value: s.Customers},
		{Key: "active_customers", Value: s.ActiveCustomers},
		{Key: "events", Value: s.Events},
		{Key: "completed_events", Value: s.CompletedEvents},
		{Key: "total_distributed", Value: converted["total_distributed"]},
	}, nil
}

// SheetsSink appends one row per snapshot to a spreadsheet range.
type SheetsSink struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

const DefaultSheetRange = "Snapshots!A1"

func NewSheetsSink(ctx context.Context, credentialsPath, spreadsheetID string, logger *zap.Logger) (*SheetsSink, error) {
	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return NewSheetsSinkWithService(service, spreadsheetID, DefaultSheetRange, logger), nil
}

func NewSheetsSinkWithService(service *sheetsapi.Service, spreadsheetID, sheetRange string, logger *zap.Logger) *SheetsSink {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SheetsSink{service: service, spreadsheetID: spreadsheetID, sheetRange: sheetRange, logger: logger}
}

func (s *SheetsSink) Name() string { return "sheets" }

func (s *SheetsSink) Save(ctx context.Context, snap Snapshot) error {
	row := []interface{}{
		snap.TakenAt.Format(time.RFC3339),
		snap.Month,
		snap.TotalIncome.String(),
		snap.TotalExpenses.String(),
		snap.NetProfit.String(),
		snap.ProfitMargin.String(),
		snap.MonthlyIncome.String(),
		snap.MonthlyExpenses.String(),
		snap.Customers,
		snap.ActiveCustomers,
		snap.Events,
		snap.CompletedEvents,
		snap.TotalDistributed.String(),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := s.service.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", s.sheetRange, err)
	}

	s.logger.Debug("snapshot row appended", zap.String("range", s.sheetRange))

	return nil
}

// LogSink writes snapshots to the structured log.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LogSink{logger: logger}
}

func (l *LogSink) Name() string { return "log" }

func (l *LogSink) Save(_ context.Context, s Snapshot) error {
	l.logger.Info("report snapshot",
		zap.String("month", s.Month),
		zap.Stringer("total_income", s.TotalIncome),
		zap.Stringer("total_expenses", s.TotalExpenses),
		zap.Stringer("net_profit", s.NetProfit),
		zap.Stringer("profit_margin", s.ProfitMargin),
		zap.Int("customers", s.Customers),
		zap.Int("events", s.Events))

	return nil
}
