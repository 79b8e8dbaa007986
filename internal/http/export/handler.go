package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/export"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

type Handler struct {
	svc    *export.Service
	logger *zap.Logger
}

func NewHandler(svc *export.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	StartDate *records.Date `json:"start_date,omitempty"`
	EndDate   *records.Date `json:"end_date,omitempty"`
}

type exportMetadataResponse struct {
	Files   []string       `json:"files"`
	Rows    map[string]int `json:"rows"`
	Summary string         `json:"summary"`
}

// decodeFilter accepts an empty body as "everything".
func decodeFilter(r *http.Request) (export.Filter, error) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return export.Filter{}, err
	}

	var filter export.Filter

	if req.StartDate != nil {
		filter.StartDate = &req.StartDate.Time
	}

	if req.EndDate != nil {
		filter.EndDate = &req.EndDate.Time
	}

	return filter, nil
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*export.Result, string, bool) {
	filter, err := decodeFilter(r)
	if err != nil {
		respond.Fail(w, respond.CodeBadRequest, err.Error())
		return nil, "", false
	}

	tmpDir, err := os.MkdirTemp("", "eventdesk-export-*")
	if err != nil {
		respond.Fail(w, respond.CodeInternal, "internal error")
		return nil, "", false
	}

	result, err := h.svc.Export(r.Context(), filter, tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		respond.Error(w, err)

		return nil, "", false
	}

	return result, tmpDir, true
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	result, tmpDir, ok := h.run(w, r)
	if !ok {
		return
	}
	defer os.RemoveAll(tmpDir)

	files := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, filepath.Base(f))
	}

	respond.JSON(w, http.StatusOK, exportMetadataResponse{
		Files: files,
		Rows: map[string]int{
			records.TableCustomers:           len(result.Rows.Customers),
			records.TableEmployees:           len(result.Rows.Employees),
			records.TableEvents:              len(result.Rows.Events),
			records.TableIncomeRecords:       len(result.Rows.Income),
			records.TableExpenseRecords:      len(result.Rows.Expenses),
			records.TableProfitDistributions: len(result.Rows.Distributions),
			records.TableReceipts:            len(result.Rows.Receipts),
		},
		Summary: h.svc.GenerateSummary(result.Report),
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	_, tmpDir, ok := h.run(w, r)
	if !ok {
		return
	}
	defer os.RemoveAll(tmpDir)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"business-report-%s.zip\"", time.Now().Format("2006-01-02")))

	if err := export.WriteZip(w, tmpDir); err != nil {
		h.logger.Error("failed to create zip", zap.Error(err))
	}
}
