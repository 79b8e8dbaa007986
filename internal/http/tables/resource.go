package tables

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/eventdesk/internal/recordstore"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

// resource serves one table: its store, the form that edits it and the
// page helpers that filter and summarize it.
type resource[T records.Row, F any] struct {
	store   *recordstore.Store[T]
	filter  func([]T, aggregate.Filter) []T
	summary func([]T) any
	from    func(T) F
	insert  func(F) recordstore.Payload
	patch   func(F) recordstore.Payload
}

func mount[T records.Row, F any](r chi.Router, path string, res resource[T, F]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", res.list)
		r.Post("/", res.create)
		r.Get("/{id}", res.get)
		r.Patch("/{id}", res.update)
		r.Delete("/{id}", res.delete)
	})
}

type listResponse[T any] struct {
	Rows    []T `json:"rows"`
	Count   int `json:"count"`
	Summary any `json:"summary"`
}

// list refetches the table, then filters the fresh cache. The summary cards
// cover the whole table, not the filtered rows.
func (res resource[T, F]) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if col := q.Get("order"); col != "" {
		ascending := true
		if s := q.Get("ascending"); s != "" {
			if v, err := strconv.ParseBool(s); err == nil {
				ascending = v
			}
		}

		res.store.FetchAll(r.Context(), recordstore.FetchOptions{OrderBy: col, Ascending: ascending})
	} else {
		res.store.Refetch(r.Context())
	}

	if msg := res.store.Err(); msg != "" {
		respond.Fail(w, respond.CodeUpstream, msg)
		return
	}

	all := res.store.Rows()

	rows := res.filter(all, aggregate.Filter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
	})
	if rows == nil {
		rows = []T{}
	}

	respond.JSON(w, http.StatusOK, listResponse[T]{
		Rows:    rows,
		Count:   len(rows),
		Summary: res.summary(all),
	})
}

func (res resource[T, F]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	row, found := res.lookup(r, id)
	if !found {
		res.notFound(w)
		return
	}

	respond.JSON(w, http.StatusOK, row)
}

func (res resource[T, F]) create(w http.ResponseWriter, r *http.Request) {
	var form F
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respond.Fail(w, respond.CodeBadRequest, err.Error())
		return
	}

	row, err := res.store.Create(r.Context(), res.insert(form))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, row)
}

// update decodes the body over the current row's form, so omitted fields
// keep their stored values.
func (res resource[T, F]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	current, found := res.lookup(r, id)
	if !found {
		res.notFound(w)
		return
	}

	form := res.from(current)
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respond.Fail(w, respond.CodeBadRequest, err.Error())
		return
	}

	row, err := res.store.Update(r.Context(), id, res.patch(form))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, row)
}

func (res resource[T, F]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := res.store.Remove(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lookup reads the cache, loading the table first if it has not been.
func (res resource[T, F]) lookup(r *http.Request, id uuid.UUID) (T, bool) {
	if !res.store.Loaded() {
		res.store.Refetch(r.Context())
	}

	return res.store.Find(id)
}

func (res resource[T, F]) notFound(w http.ResponseWriter) {
	if msg := res.store.Err(); msg != "" && !res.store.Loaded() {
		respond.Fail(w, respond.CodeUpstream, msg)
		return
	}

	respond.Fail(w, respond.CodeNotFound, res.store.Name()+" row not found")
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Fail(w, respond.CodeBadRequest, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}
