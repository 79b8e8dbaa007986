package tablestore

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

func TestSelectQuery(t *testing.T) {
	query, err := selectQuery("events", &Order{Column: "event_date", Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, `SELECT to_jsonb(t) FROM "events" t ORDER BY t."event_date" ASC`, query)

	query, err = selectQuery("events", nil)
	require.NoError(t, err)
	assert.Equal(t, `SELECT to_jsonb(t) FROM "events" t`, query)

	_, err = selectQuery("events", &Order{Column: `x" DESC; --`})
	assert.ErrorIs(t, err, records.ErrValidation)
}

func TestInsertQuery(t *testing.T) {
	query, args, err := insertQuery("customers", map[string]any{"name": "Acme", "email": "a@x.io"})
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "customers" AS t ("email", "name") VALUES ($1, $2) RETURNING to_jsonb(t)`, query)
	assert.Equal(t, []any{"a@x.io", "Acme"}, args)

	_, _, err = insertQuery("customers", map[string]any{"Name": "x"})
	assert.ErrorIs(t, err, records.ErrValidation)
}

func TestUpdateQuery(t *testing.T) {
	id := uuid.New()

	query, args, err := updateQuery("events", id, map[string]any{"status": "completed", "budget": 10})
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "events" AS t SET "budget" = $1, "status" = $2 WHERE t.id = $3 RETURNING to_jsonb(t)`, query)
	assert.Equal(t, []any{10, "completed", id}, args)
}
