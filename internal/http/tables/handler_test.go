package tables_test

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/eventdesk/internal/console"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/tables"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
	"github.com/MrJamesThe3rd/eventdesk/internal/tablestore"
)

type memBackend struct {
	mu     sync.Mutex
	rows   map[string][]map[string]any
	failOn map[string]error
}

func newMemBackend() *memBackend {
	return &memBackend{rows: map[string][]map[string]any{}, failOn: map[string]error{}}
}

func (m *memBackend) Select(_ context.Context, table string, _ *tablestore.Order) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failOn[table]; err != nil {
		return nil, err
	}

	out := []json.RawMessage{}
	for _, row := range m.rows[table] {
		raw, _ := json.Marshal(row)
		out = append(out, raw)
	}

	return out, nil
}

func (m *memBackend) Insert(_ context.Context, table string, fields map[string]any) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := roundTrip(fields)
	row["id"] = uuid.NewString()
	row["created_at"] = "2024-06-15T10:00:00Z"
	m.rows[table] = append(m.rows[table], row)

	return json.Marshal(row)
}

func (m *memBackend) Update(_ context.Context, table string, id uuid.UUID, fields map[string]any) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.rows[table] {
		if row["id"] == id.String() {
			maps.Copy(row, roundTrip(fields))
			return json.Marshal(row)
		}
	}

	return nil, records.ErrNotFound
}

func (m *memBackend) Delete(_ context.Context, table string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.rows[table], func(r map[string]any) bool { return r["id"] == id.String() })
	if i < 0 {
		return records.ErrNotFound
	}

	m.rows[table] = slices.Delete(m.rows[table], i, i+1)

	return nil
}

func roundTrip(fields map[string]any) map[string]any {
	raw, _ := json.Marshal(fields)

	var out map[string]any
	_ = json.Unmarshal(raw, &out)

	return out
}

func newServer(backend tablestore.Backend) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", tables.NewHandler(console.New(backend, nil)).Routes)

	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

type customerList struct {
	Rows    []records.Customer `json:"rows"`
	Count   int                `json:"count"`
	Summary struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"summary"`
}

func TestCustomerLifecycle(t *testing.T) {
	h := newServer(newMemBackend())

	rec := do(t, h, http.MethodPost, "/api/v1/customers", `{"name":"Meera Rao","email":"meera@rao.in","phone":"9876543210"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[records.Customer](t, rec)
	assert.Equal(t, records.CustomerActive, created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)

	rec = do(t, h, http.MethodPatch, "/api/v1/customers/"+created.ID.String(), `{"company":"Rao Weddings"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decode[records.Customer](t, rec)
	assert.Equal(t, "Rao Weddings", updated.Company)
	assert.Equal(t, "meera@rao.in", updated.Email)

	rec = do(t, h, http.MethodGet, "/api/v1/customers?search=rao", "")
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[customerList](t, rec)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 1, list.Summary.Active)

	rec = do(t, h, http.MethodDelete, "/api/v1/customers/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/customers/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFiltersButSummarizesWholeTable(t *testing.T) {
	h := newServer(newMemBackend())

	for _, body := range []string{
		`{"name":"Asha","email":"asha@x.in","phone":"9000000001","status":"active"}`,
		`{"name":"Ravi","email":"ravi@x.in","phone":"9000000002","status":"inactive"}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/v1/customers", body).Code)
	}

	list := decode[customerList](t, do(t, h, http.MethodGet, "/api/v1/customers?status=inactive", ""))

	require.Len(t, list.Rows, 1)
	assert.Equal(t, "Ravi", list.Rows[0].Name)
	assert.Equal(t, 2, list.Summary.Total)
	assert.Equal(t, 1, list.Summary.Active)
}

func TestCreateRejectsInvalidForm(t *testing.T) {
	h := newServer(newMemBackend())

	rec := do(t, h, http.MethodPost, "/api/v1/customers", `{"name":"","email":"not-an-email","phone":"123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, rec.Body.String(), `"field":"email"`)
}

func TestReceiptNumberGeneratedWhenBlank(t *testing.T) {
	h := newServer(newMemBackend())

	rec := do(t, h, http.MethodPost, "/api/v1/receipts",
		`{"customer_name":"Meera","event_name":"Sangeet","amount":"25000","payment_method":"upi","date":"2024-06-15"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	receipt := decode[records.Receipt](t, rec)
	assert.True(t, strings.HasPrefix(receipt.ReceiptNumber, "RCP-"))
	assert.Equal(t, records.ReceiptPaid, receipt.Status)
}

func TestDistributionStoresShares(t *testing.T) {
	h := newServer(newMemBackend())

	rec := do(t, h, http.MethodPost, "/api/v1/distributions",
		`{"month":"June","year":2024,"total_profit":"100000","partner1_percentage":"60","partner2_percentage":"40","distribution_date":"2024-06-30"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	row := decode[records.ProfitDistribution](t, rec)
	assert.Equal(t, "60000", row.Partner1Share.String())
	assert.Equal(t, "40000", row.Partner2Share.String())
	assert.True(t, row.Distributed)
}

func TestListReportsFetchFailure(t *testing.T) {
	backend := newMemBackend()
	backend.failOn[records.TableEvents] = records.ErrUnconfigured

	rec := do(t, newServer(backend), http.MethodGet, "/api/v1/events", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "UPSTREAM_ERROR")
}

func TestDeleteUnknownRow(t *testing.T) {
	rec := do(t, newServer(newMemBackend()), http.MethodDelete, "/api/v1/income/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidID(t *testing.T) {
	rec := do(t, newServer(newMemBackend()), http.MethodPatch, "/api/v1/expenses/not-a-uuid", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedBody(t *testing.T) {
	rec := do(t, newServer(newMemBackend()), http.MethodPost, "/api/v1/employees", `{"salary":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BAD_REQUEST")
}
