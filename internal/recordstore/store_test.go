package recordstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/eventdesk/internal/recordstore"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
	"github.com/MrJamesThe3rd/eventdesk/internal/tablestore"
)

type payload struct {
	fields map[string]any
	err    error
}

func (p payload) Validate() error        { return p.err }
func (p payload) Fields() map[string]any { return p.fields }

func receiptJSON(t *testing.T, id uuid.UUID, fields map[string]any) json.RawMessage {
	t.Helper()

	row := maps.Clone(fields)
	row["id"] = id.String()
	row["created_at"] = "2024-06-01T09:00:00Z"

	raw, err := json.Marshal(row)
	require.NoError(t, err)

	return raw
}

func newStore(t *testing.T) (*recordstore.Store[records.Receipt], *tablestore.MockBackend) {
	t.Helper()

	ctrl := gomock.NewController(t)
	backend := tablestore.NewMockBackend(ctrl)

	return recordstore.New(tablestore.Open[records.Receipt](backend), nil), backend
}

func seed(t *testing.T, store *recordstore.Store[records.Receipt], backend *tablestore.MockBackend, ids ...uuid.UUID) {
	t.Helper()

	raws := make([]json.RawMessage, 0, len(ids))
	for i, id := range ids {
		raws = append(raws, receiptJSON(t, id, map[string]any{"customer_name": string(rune('A' + i)), "amount": 100 * (i + 1)}))
	}

	backend.EXPECT().Select(gomock.Any(), records.TableReceipts, gomock.Any()).Return(raws, nil)
	store.FetchAll(context.Background(), recordstore.FetchOptions{})
	require.True(t, store.Loaded())
}

func TestStore_FetchAll(t *testing.T) {
	type testCase struct {
		name       string
		opts       recordstore.FetchOptions
		wantOrder  *tablestore.Order
		result     []json.RawMessage
		resultErr  error
		wantLoaded bool
		wantLen    int
		wantErr    bool
	}

	tests := []testCase{
		{
			name:       "SortedAscending",
			opts:       recordstore.Ordered("date"),
			wantOrder:  &tablestore.Order{Column: "date", Ascending: true},
			result:     []json.RawMessage{json.RawMessage(`{"id":"8b0f7c7e-1b57-4c38-9d43-52b9c0e0a001"}`)},
			wantLoaded: true,
			wantLen:    1,
		},
		{
			name:       "EmptyTable",
			opts:       recordstore.Newest("created_at"),
			wantOrder:  &tablestore.Order{Column: "created_at"},
			wantLoaded: true,
		},
		{
			name:      "NetworkFailure",
			resultErr: records.ErrNetwork,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, backend := newStore(t)

			backend.EXPECT().
				Select(gomock.Any(), records.TableReceipts, tt.wantOrder).
				Return(tt.result, tt.resultErr)

			store.FetchAll(context.Background(), tt.opts)

			assert.False(t, store.Loading())
			assert.Equal(t, tt.wantLoaded, store.Loaded())

			if tt.wantErr {
				assert.Nil(t, store.Rows())
				assert.NotEmpty(t, store.Err())

				return
			}

			assert.Empty(t, store.Err())
			assert.NotNil(t, store.Rows())
			assert.Len(t, store.Rows(), tt.wantLen)
		})
	}
}

func TestStore_FailedRefetchClearsCache(t *testing.T) {
	store, backend := newStore(t)
	seed(t, store, backend, uuid.New())

	backend.EXPECT().Select(gomock.Any(), records.TableReceipts, nil).Return(nil, records.ErrNetwork)
	store.Refetch(context.Background())

	assert.False(t, store.Loaded())
	assert.Nil(t, store.Rows())
	assert.Contains(t, store.Err(), records.ErrNetwork.Error())
}

func TestStore_RefetchReusesOptions(t *testing.T) {
	store, backend := newStore(t)

	gomock.InOrder(
		backend.EXPECT().Select(gomock.Any(), records.TableReceipts, &tablestore.Order{Column: "date"}).Return(nil, nil),
		backend.EXPECT().Select(gomock.Any(), records.TableReceipts, &tablestore.Order{Column: "date"}).Return(nil, nil),
	)

	store.FetchAll(context.Background(), recordstore.Newest("date"))
	store.Refetch(context.Background())
}

func TestStore_LoadingWhileInFlight(t *testing.T) {
	store, backend := newStore(t)

	release := make(chan struct{})
	started := make(chan struct{})

	backend.EXPECT().
		Select(gomock.Any(), records.TableReceipts, nil).
		DoAndReturn(func(context.Context, string, *tablestore.Order) ([]json.RawMessage, error) {
			close(started)
			<-release

			return nil, nil
		})

	done := make(chan struct{})

	go func() {
		store.FetchAll(context.Background(), recordstore.FetchOptions{})
		close(done)
	}()

	<-started
	assert.True(t, store.Loading())

	close(release)
	<-done

	assert.False(t, store.Loading())
}

func TestStore_OverlappingFetchLastResponseWins(t *testing.T) {
	store, backend := newStore(t)

	first, second := uuid.New(), uuid.New()
	releaseFirst := make(chan struct{})
	firstStarted := make(chan struct{})

	gomock.InOrder(
		backend.EXPECT().
			Select(gomock.Any(), records.TableReceipts, nil).
			DoAndReturn(func(context.Context, string, *tablestore.Order) ([]json.RawMessage, error) {
				close(firstStarted)
				<-releaseFirst

				return []json.RawMessage{receiptJSON(t, first, map[string]any{})}, nil
			}),
		backend.EXPECT().
			Select(gomock.Any(), records.TableReceipts, nil).
			Return([]json.RawMessage{receiptJSON(t, second, map[string]any{})}, nil),
	)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		store.FetchAll(context.Background(), recordstore.FetchOptions{})
	}()

	<-firstStarted
	store.FetchAll(context.Background(), recordstore.FetchOptions{})
	require.Equal(t, second, store.Rows()[0].ID)

	close(releaseFirst)
	wg.Wait()

	rows := store.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, first, rows[0].ID)
	assert.False(t, store.Loading())
}

func TestStore_Create(t *testing.T) {
	type testCase struct {
		name      string
		payload   payload
		setupMock func(m *tablestore.MockBackend, newID uuid.UUID)
		wantErr   error
	}

	fields := map[string]any{
		"receipt_number": "RCP-20240601-042",
		"customer_name":  "Meera Rao",
		"event_name":     "Rao Wedding",
		"amount":         "45000",
		"payment_method": "upi",
		"date":           "2024-06-01",
		"status":         "paid",
	}

	tests := []testCase{
		{
			name:    "AppendsServerRow",
			payload: payload{fields: fields},
			setupMock: func(m *tablestore.MockBackend, newID uuid.UUID) {
				m.EXPECT().
					Insert(gomock.Any(), records.TableReceipts, fields).
					DoAndReturn(func(_ context.Context, _ string, f map[string]any) (json.RawMessage, error) {
						return receiptJSON(t, newID, f), nil
					})
			},
		},
		{
			name:    "InvalidPayloadNeverSent",
			payload: payload{fields: fields, err: &records.ValidationError{Fields: []records.FieldError{{Field: "amount", Message: "must be at least 0"}}}},
			wantErr: records.ErrValidation,
		},
		{
			name:    "RemoteRejects",
			payload: payload{fields: fields},
			setupMock: func(m *tablestore.MockBackend, _ uuid.UUID) {
				m.EXPECT().Insert(gomock.Any(), records.TableReceipts, fields).Return(nil, records.ErrNetwork)
			},
			wantErr: records.ErrNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, backend := newStore(t)
			existing := uuid.New()
			seed(t, store, backend, existing)

			newID := uuid.New()
			if tt.setupMock != nil {
				tt.setupMock(backend, newID)
			}

			got, err := store.Create(context.Background(), tt.payload)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.NotEmpty(t, store.Err())
				assert.Len(t, store.Rows(), 1)

				return
			}

			require.NoError(t, err)

			rows := store.Rows()
			require.Len(t, rows, 2)
			assert.Equal(t, existing, rows[0].ID)
			assert.Equal(t, got, rows[1])

			assert.Equal(t, newID, got.ID)
			assert.Equal(t, "RCP-20240601-042", got.ReceiptNumber)
			assert.Equal(t, "Meera Rao", got.CustomerName)
			assert.Equal(t, "Rao Wedding", got.EventName)
			assert.Equal(t, "45000", got.Amount.String())
			assert.Equal(t, "upi", got.PaymentMethod)
			assert.Equal(t, "2024-06-01", got.Date.String())
			assert.Equal(t, records.ReceiptPaid, got.Status)
		})
	}
}

func TestStore_UpdateKeepsPosition(t *testing.T) {
	store, backend := newStore(t)

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	seed(t, store, backend, a, b, c)

	patch := map[string]any{"customer_name": "B2", "amount": 999}

	backend.EXPECT().
		Update(gomock.Any(), records.TableReceipts, b, patch).
		Return(receiptJSON(t, b, patch), nil)

	got, err := store.Update(context.Background(), b, payload{fields: patch})
	require.NoError(t, err)
	assert.Equal(t, "B2", got.CustomerName)

	rows := store.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []uuid.UUID{a, b, c}, []uuid.UUID{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, "B2", rows[1].CustomerName)
}

func TestStore_UpdateUnknownID(t *testing.T) {
	store, backend := newStore(t)

	a := uuid.New()
	seed(t, store, backend, a)

	missing := uuid.New()
	backend.EXPECT().Update(gomock.Any(), records.TableReceipts, missing, gomock.Any()).Return(nil, records.ErrNotFound)

	_, err := store.Update(context.Background(), missing, payload{fields: map[string]any{"amount": 1}})
	require.ErrorIs(t, err, records.ErrNotFound)

	rows := store.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, a, rows[0].ID)
}

func TestStore_Remove(t *testing.T) {
	store, backend := newStore(t)

	a, b := uuid.New(), uuid.New()
	seed(t, store, backend, a, b)

	backend.EXPECT().Delete(gomock.Any(), records.TableReceipts, a).Return(nil)
	require.NoError(t, store.Remove(context.Background(), a))

	rows := store.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, b, rows[0].ID)

	_, found := store.Find(a)
	assert.False(t, found)
}

func TestStore_RemoveAbsentID(t *testing.T) {
	store, backend := newStore(t)

	a := uuid.New()
	seed(t, store, backend, a)

	absent := uuid.New()

	backend.EXPECT().Delete(gomock.Any(), records.TableReceipts, absent).Return(nil)
	assert.NotPanics(t, func() {
		assert.NoError(t, store.Remove(context.Background(), absent))
	})
	assert.Len(t, store.Rows(), 1)

	backend.EXPECT().Delete(gomock.Any(), records.TableReceipts, absent).Return(records.ErrNotFound)
	err := store.Remove(context.Background(), absent)
	assert.True(t, errors.Is(err, records.ErrNotFound))
	assert.Len(t, store.Rows(), 1)
}

func TestStore_RemoveBeforeLoad(t *testing.T) {
	store, backend := newStore(t)

	id := uuid.New()
	backend.EXPECT().Delete(gomock.Any(), records.TableReceipts, id).Return(nil)

	require.NoError(t, store.Remove(context.Background(), id))
	assert.Nil(t, store.Rows())
}
