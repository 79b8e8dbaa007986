package tablestore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// RESTConfig addresses a PostgREST-compatible endpoint such as Supabase.
type RESTConfig struct {
	URL     string
	Key     string
	Timeout time.Duration
}

// RESTBackend talks to the hosted table API over HTTPS.
type RESTBackend struct {
	http       *resty.Client
	configured bool
	logger     *zap.Logger
}

// NewREST builds a REST backend. An unconfigured backend is still returned so
// callers get ErrUnconfigured on first use instead of a startup failure.
func NewREST(cfg RESTConfig, logger *zap.Logger) *RESTBackend {
	if logger == nil {
		logger = zap.NewNop()
	}

	base := strings.TrimSuffix(cfg.URL, "/")

	client := resty.New()
	client.
		SetBaseURL(base+"/rest/v1").
		SetHeader("apikey", cfg.Key).
		SetHeader("Authorization", "Bearer "+cfg.Key).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	// Requests wait for the store unless the operator asks for a cap.
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	configured := !IsPlaceholder(cfg.URL, cfg.Key)
	if !configured {
		logger.Warn("table store is using placeholder credentials, every request will fail")
	}

	return &RESTBackend{http: client, configured: configured, logger: logger}
}

// apiError mirrors the PostgREST error payload.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// RemoteError is a failed table store call. It unwraps to one of the
// records sentinels.
type RemoteError struct {
	Op      string
	Table   string
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}

	return fmt.Sprintf("%s %s: %v (status=%d code=%s): %s", e.Op, e.Table, e.kind, e.Status, e.Code, msg)
}

func (e *RemoteError) Unwrap() error { return e.kind }

func (b *RESTBackend) Select(ctx context.Context, table string, order *Order) ([]json.RawMessage, error) {
	if err := b.ready(table); err != nil {
		return nil, err
	}

	req := b.http.R().SetContext(ctx).SetQueryParam("select", "*")

	if order != nil && order.Column != "" {
		if err := checkIdentifier("order", order.Column); err != nil {
			return nil, err
		}

		direction := "asc"
		if !order.Ascending {
			direction = "desc"
		}

		req.SetQueryParam("order", order.Column+"."+direction)
	}

	var rows []json.RawMessage

	resp, err := req.SetResult(&rows).Get("/" + table)
	if err := b.check("select", table, resp, err); err != nil {
		return nil, err
	}

	b.logger.Debug("rows selected", zap.String("table", table), zap.Int("count", len(rows)))

	return rows, nil
}

func (b *RESTBackend) Insert(ctx context.Context, table string, fields map[string]any) (json.RawMessage, error) {
	if err := b.ready(table); err != nil {
		return nil, err
	}

	var rows []json.RawMessage

	resp, err := b.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(fields).
		SetResult(&rows).
		Post("/" + table)
	if err := b.check("insert", table, resp, err); err != nil {
		return nil, err
	}

	return single("insert", table, rows)
}

func (b *RESTBackend) Update(ctx context.Context, table string, id uuid.UUID, fields map[string]any) (json.RawMessage, error) {
	if err := b.ready(table); err != nil {
		return nil, err
	}

	var rows []json.RawMessage

	resp, err := b.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id.String()).
		SetBody(fields).
		SetResult(&rows).
		Patch("/" + table)
	if err := b.check("update", table, resp, err); err != nil {
		return nil, err
	}

	return single("update", table, rows)
}

func (b *RESTBackend) Delete(ctx context.Context, table string, id uuid.UUID) error {
	if err := b.ready(table); err != nil {
		return err
	}

	var rows []json.RawMessage

	resp, err := b.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id.String()).
		SetResult(&rows).
		Delete("/" + table)
	if err := b.check("delete", table, resp, err); err != nil {
		return err
	}

	_, err = single("delete", table, rows)

	return err
}

func (b *RESTBackend) ready(table string) error {
	if !b.configured {
		return records.ErrUnconfigured
	}

	return checkIdentifier("table", table)
}

func (b *RESTBackend) check(op, table string, resp *resty.Response, err error) error {
	if err != nil {
		b.logger.Warn("table store request failed", zap.String("op", op), zap.String("table", table), zap.Error(err))
		return fmt.Errorf("%s %s: %w: %v", op, table, records.ErrNetwork, err)
	}

	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	var body apiError
	_ = json.Unmarshal(resp.Body(), &body)

	remoteErr := &RemoteError{
		Op:      op,
		Table:   table,
		Status:  resp.StatusCode(),
		Code:    body.Code,
		Message: body.Message,
		kind:    classify(resp.StatusCode(), body.Code),
	}

	b.logger.Warn("table store rejected request",
		zap.String("op", op),
		zap.String("table", table),
		zap.Int("status", remoteErr.Status),
		zap.String("code", remoteErr.Code),
		zap.String("message", remoteErr.Message))

	return remoteErr
}

// classify maps an HTTP status and PostgREST/Postgres error code onto the
// error taxonomy.
func classify(status int, code string) error {
	switch {
	case code == "PGRST116":
		return records.ErrNotFound
	case strings.HasPrefix(code, "23"), strings.HasPrefix(code, "22"), code == "PGRST204":
		return records.ErrValidation
	}

	switch status {
	case http.StatusNotFound, http.StatusNotAcceptable:
		return records.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return records.ErrValidation
	default:
		return records.ErrNetwork
	}
}

func single(op, table string, rows []json.RawMessage) (json.RawMessage, error) {
	if len(rows) == 0 {
		return nil, &RemoteError{Op: op, Table: table, Status: http.StatusOK, Message: "no matching row", kind: records.ErrNotFound}
	}

	return rows[0], nil
}
