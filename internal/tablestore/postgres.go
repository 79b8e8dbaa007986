package tablestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// PostgresBackend reads and writes the same tables directly over a pgx
// connection. Rows are returned as to_jsonb so they decode exactly like the
// REST payloads.
type PostgresBackend struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgres(db *sql.DB, logger *zap.Logger) *PostgresBackend {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PostgresBackend{db: db, logger: logger}
}

func (p *PostgresBackend) Select(ctx context.Context, table string, order *Order) ([]json.RawMessage, error) {
	query, err := selectQuery(table, order)
	if err != nil {
		return nil, err
	}

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, p.wrap("select", table, err)
	}
	defer rows.Close()

	var out []json.RawMessage

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, p.wrap("select", table, err)
		}

		out = append(out, json.RawMessage(raw))
	}

	if err := rows.Err(); err != nil {
		return nil, p.wrap("select", table, err)
	}

	return out, nil
}

func (p *PostgresBackend) Insert(ctx context.Context, table string, fields map[string]any) (json.RawMessage, error) {
	query, args, err := insertQuery(table, fields)
	if err != nil {
		return nil, err
	}

	var raw []byte
	if err := p.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return nil, p.wrap("insert", table, err)
	}

	return raw, nil
}

func (p *PostgresBackend) Update(ctx context.Context, table string, id uuid.UUID, fields map[string]any) (json.RawMessage, error) {
	query, args, err := updateQuery(table, id, fields)
	if err != nil {
		return nil, err
	}

	var raw []byte
	if err := p.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return nil, p.wrap("update", table, err)
	}

	return raw, nil
}

func (p *PostgresBackend) Delete(ctx context.Context, table string, id uuid.UUID) error {
	if err := checkIdentifier("table", table); err != nil {
		return err
	}

	query := `DELETE FROM ` + pgx.Identifier{table}.Sanitize() + ` WHERE id = $1`

	res, err := p.db.ExecContext(ctx, query, id)
	if err != nil {
		return p.wrap("delete", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return p.wrap("delete", table, err)
	}

	if n == 0 {
		return fmt.Errorf("delete %s %s: %w", table, id, records.ErrNotFound)
	}

	return nil
}

func (p *PostgresBackend) wrap(op, table string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", op, table, records.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := records.ErrNetwork
		if strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23") || pgErr.Code == "42703" {
			kind = records.ErrValidation
		}

		p.logger.Warn("postgres rejected statement",
			zap.String("op", op),
			zap.String("table", table),
			zap.String("code", pgErr.Code),
			zap.String("message", pgErr.Message))

		return &RemoteError{Op: op, Table: table, Code: pgErr.Code, Message: pgErr.Message, kind: kind}
	}

	return fmt.Errorf("%s %s: %w: %v", op, table, records.ErrNetwork, err)
}

func selectQuery(table string, order *Order) (string, error) {
	if err := checkIdentifier("table", table); err != nil {
		return "", err
	}

	query := `SELECT to_jsonb(t) FROM ` + pgx.Identifier{table}.Sanitize() + ` t`

	if order != nil && order.Column != "" {
		if err := checkIdentifier("order", order.Column); err != nil {
			return "", err
		}

		direction := "ASC"
		if !order.Ascending {
			direction = "DESC"
		}

		query += ` ORDER BY t.` + pgx.Identifier{order.Column}.Sanitize() + ` ` + direction
	}

	return query, nil
}

// sortedColumns gives a stable column order so generated statements are
// deterministic.
func sortedColumns(fields map[string]any) ([]string, error) {
	cols := make([]string, 0, len(fields))

	for col := range fields {
		if err := checkIdentifier("column", col); err != nil {
			return nil, err
		}

		cols = append(cols, col)
	}

	slices.Sort(cols)

	return cols, nil
}

func insertQuery(table string, fields map[string]any) (string, []any, error) {
	if err := checkIdentifier("table", table); err != nil {
		return "", nil, err
	}

	cols, err := sortedColumns(fields)
	if err != nil {
		return "", nil, err
	}

	if len(cols) == 0 {
		return `INSERT INTO ` + pgx.Identifier{table}.Sanitize() + ` AS t DEFAULT VALUES RETURNING to_jsonb(t)`, nil, nil
	}

	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))

	for i, col := range cols {
		names[i] = pgx.Identifier{col}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[col]
	}

	query := fmt.Sprintf(`INSERT INTO %s AS t (%s) VALUES (%s) RETURNING to_jsonb(t)`,
		pgx.Identifier{table}.Sanitize(), strings.Join(names, ", "), strings.Join(placeholders, ", "))

	return query, args, nil
}

func updateQuery(table string, id uuid.UUID, fields map[string]any) (string, []any, error) {
	if err := checkIdentifier("table", table); err != nil {
		return "", nil, err
	}

	cols, err := sortedColumns(fields)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)

	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", pgx.Identifier{col}.Sanitize(), i+1))
		args = append(args, fields[col])
	}

	if len(sets) == 0 {
		sets = append(sets, "id = id")
	}

	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s AS t SET %s WHERE t.id = $%d RETURNING to_jsonb(t)`,
		pgx.Identifier{table}.Sanitize(), strings.Join(sets, ", "), len(args))

	return query, args, nil
}
