package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
)

var fixedNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func sampleReport() aggregate.Report {
	return aggregate.Report{
		GeneratedAt: fixedNow,
		Customers:   aggregate.CustomerReport{Total: 4, Active: 3},
		Events:      aggregate.EventReport{Total: 5, Completed: 2},
		Financial: aggregate.FinancialReport{
			TotalIncome:   decimal.NewFromInt(60000),
			TotalExpenses: decimal.NewFromInt(20000),
			NetProfit:     decimal.NewFromInt(40000),
			ProfitMargin:  decimal.RequireFromString("66.67"),
			Month:         "2024-06",
		},
		Distributions: aggregate.DistributionReport{TotalDistributed: decimal.NewFromInt(30000)},
	}
}

func newTestScheduler(source Source, sinks ...Sink) *Scheduler {
	s := NewScheduler("@daily", time.UTC, source, sinks, nil)
	s.now = func() time.Time { return fixedNow }

	return s
}

func TestRunOnce(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(src *MockSource, a, b *MockSink)
		wantErr   string
	}

	tests := []testCase{
		{
			name: "saves to every sink",
			setupMock: func(src *MockSource, a, b *MockSink) {
				src.EXPECT().LoadReports(gomock.Any()).Return(nil)
				src.EXPECT().Report(fixedNow).Return(sampleReport())
				a.EXPECT().Save(gomock.Any(), FromReport(sampleReport())).Return(nil)
				a.EXPECT().Name().Return("a").AnyTimes()
				b.EXPECT().Save(gomock.Any(), FromReport(sampleReport())).Return(nil)
				b.EXPECT().Name().Return("b").AnyTimes()
			},
		},
		{
			name: "load failure skips sinks",
			setupMock: func(src *MockSource, _, _ *MockSink) {
				src.EXPECT().LoadReports(gomock.Any()).Return(errors.New("events: network error"))
			},
			wantErr: "loading report tables",
		},
		{
			name: "failing sink does not stop the next",
			setupMock: func(src *MockSource, a, b *MockSink) {
				src.EXPECT().LoadReports(gomock.Any()).Return(nil)
				src.EXPECT().Report(fixedNow).Return(sampleReport())
				a.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
				a.EXPECT().Name().Return("a").AnyTimes()
				b.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				b.EXPECT().Name().Return("b").AnyTimes()
			},
			wantErr: "a: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			src := NewMockSource(ctrl)
			a := NewMockSink(ctrl)
			b := NewMockSink(ctrl)
			tt.setupMock(src, a, b)

			err := newTestScheduler(src, a, b).RunOnce(context.Background())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := NewScheduler("not a cron line", time.UTC, nil, nil, nil)

	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduling snapshot")
}

func TestStartStop(t *testing.T) {
	s := NewScheduler("0 6 * * *", time.UTC, nil, nil, nil)

	require.NoError(t, s.Start())
	s.Stop()
}

func TestFromReport(t *testing.T) {
	snap := FromReport(sampleReport())

	assert.Equal(t, "2024-06", snap.Month)
	assert.Equal(t, fixedNow, snap.TakenAt)
	assert.True(t, snap.NetProfit.Equal(decimal.NewFromInt(40000)))
	assert.Equal(t, 4, snap.Customers)
	assert.Equal(t, 3, snap.ActiveCustomers)
	assert.Equal(t, 2, snap.CompletedEvents)
}

func TestSnapshotDocumentUsesDecimal128(t *testing.T) {
	doc, err := snapshotDocument(FromReport(sampleReport()))
	require.NoError(t, err)

	values := map[string]any{}
	for _, e := range doc {
		values[e.Key] = e.Value
	}

	margin, ok := values["profit_margin"].(primitive.Decimal128)
	require.True(t, ok)
	assert.Equal(t, "66.67", margin.String())
	assert.Equal(t, "2024-06", values["month"])
	assert.Equal(t, 5, values["events"])
}

func TestSheetsSinkAppendsRow(t *testing.T) {
	var (
		gotPath  string
		gotQuery string
		gotBody  struct {
			Values [][]any `json:"values"`
		}
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	}))
	defer srv.Close()

	svc, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	sink := NewSheetsSinkWithService(svc, "sheet-1", DefaultSheetRange, nil)
	require.NoError(t, sink.Save(context.Background(), FromReport(sampleReport())))

	assert.True(t, strings.HasPrefix(gotPath, "/v4/spreadsheets/sheet-1/values/"))
	assert.True(t, strings.HasSuffix(gotPath, ":append"))
	assert.Contains(t, gotQuery, "valueInputOption=USER_ENTERED")
	assert.Contains(t, gotQuery, "insertDataOption=INSERT_ROWS")
	require.Len(t, gotBody.Values, 1)
	assert.Equal(t, "2024-06", gotBody.Values[0][1])
	assert.Equal(t, "60000", gotBody.Values[0][2])
}

func TestSheetsSinkReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	svc, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	err = NewSheetsSinkWithService(svc, "sheet-1", DefaultSheetRange, nil).Save(context.Background(), Snapshot{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append row into range")
}

func TestLogSink(t *testing.T) {
	assert.NoError(t, NewLogSink(nil).Save(context.Background(), FromReport(sampleReport())))
	assert.Equal(t, "log", NewLogSink(nil).Name())
}
