package tablestore_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
	"github.com/MrJamesThe3rd/eventdesk/internal/tablestore"
)

func TestTable_Select(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := tablestore.NewMockBackend(ctrl)

	backend.EXPECT().
		Select(gomock.Any(), records.TableIncomeRecords, &tablestore.Order{Column: "date"}).
		Return([]json.RawMessage{
			json.RawMessage(`{"id":"7f1c9a52-3c44-4f6b-9f0e-1b2c3d4e5f60","event_name":"Gala","customer_name":"Rao","amount":50000,"date":"2024-05-02","status":"received","created_at":"2024-05-02T10:00:00Z"}`),
		}, nil)

	table := tablestore.Open[records.IncomeRecord](backend)
	assert.Equal(t, records.TableIncomeRecords, table.Name())

	rows, err := table.Select(context.Background(), &tablestore.Order{Column: "date"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gala", rows[0].EventName)
	assert.True(t, decimal.NewFromInt(50000).Equal(rows[0].Amount))
	assert.Equal(t, "2024-05-02", rows[0].Date.String())
}

func TestTable_SelectBadRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := tablestore.NewMockBackend(ctrl)

	backend.EXPECT().
		Select(gomock.Any(), records.TableCustomers, nil).
		Return([]json.RawMessage{json.RawMessage(`{"id":42}`)}, nil)

	_, err := tablestore.Open[records.Customer](backend).Select(context.Background(), nil)
	assert.Error(t, err)
}

func TestTable_UpdatePassesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := tablestore.NewMockBackend(ctrl)
	id := uuid.New()

	backend.EXPECT().
		Update(gomock.Any(), records.TableEvents, id, gomock.Any()).
		Return(nil, records.ErrNotFound)

	_, err := tablestore.Open[records.Event](backend).Update(context.Background(), id, map[string]any{"status": "completed"})
	assert.ErrorIs(t, err, records.ErrNotFound)
}
