package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kpetrakis/catsnatch/internal/errs"
	"github.com/kpetrakis/catsnatch/internal/model"
	"github.com/kpetrakis/catsnatch/internal/service"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

type handler struct {
	queries    service.CatQueries
	ingest     service.IngestService
	log        *zap.Logger
	fetchCount int
}

// catView is the JSON projection of a cat. Image bytes are served by the
// dedicated image endpoint, not inlined here.
type catView struct {
	ID      int64     `json:"id"`
	CatID   string    `json:"catId"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Created time.Time `json:"created"`
	Tags    []string  `json:"tags"`
}

type pagedView struct {
	Items      []catView `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalCount int       `json:"totalCount"`
	TotalPages int       `json:"totalPages"`
}

type errorView struct {
	Error string `json:"error"`
}

// fetchCats triggers an ingestion run (POST /api/cats/fetch).
func (h *handler) fetchCats(w http.ResponseWriter, r *http.Request) {
	count := h.fetchCount
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}

	if err := h.ingest.Run(r.Context(), count); err != nil {
		h.log.Error("fetch endpoint failed", zap.Error(err))
		if errors.Is(err, errs.ErrFetch) {
			writeError(w, http.StatusBadGateway, "external catalog unavailable")
			return
		}
		writeError(w, http.StatusInternalServerError, "ingestion failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("fetched up to %d cats", count),
	})
}

// listCats serves the paged, tag-filterable listing (GET /api/cats).
func (h *handler) listCats(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(r, "page", defaultPage)
	if !ok || page < 1 {
		writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	pageSize, ok := queryInt(r, "pageSize", defaultPageSize)
	if !ok || pageSize < 1 {
		writeError(w, http.StatusBadRequest, "pageSize must be a positive integer")
		return
	}
	tag := r.URL.Query().Get("tag")

	res, err := h.queries.GetCats(r.Context(), page, pageSize, tag)
	if err != nil {
		if errors.Is(err, errs.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid paging parameters")
			return
		}
		h.log.Error("list cats failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	view := pagedView{
		Items:      make([]catView, 0, len(res.Items)),
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalCount: res.TotalCount,
		TotalPages: res.TotalPages,
	}
	for i := range res.Items {
		view.Items = append(view.Items, toCatView(&res.Items[i]))
	}
	writeJSON(w, http.StatusOK, view)
}

// getCat serves a point lookup (GET /api/cats/{id}).
func (h *handler) getCat(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	cat, err := h.queries.GetCatByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "cat not found")
			return
		}
		h.log.Error("get cat failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, toCatView(cat))
}

// getCatImage serves the stored image payload (GET /api/cats/{id}/image).
func (h *handler) getCatImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	cat, err := h.queries.GetCatByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "cat not found")
			return
		}
		h.log.Error("get cat image failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(cat.Image))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(cat.Image)
}

func toCatView(c *model.Cat) catView {
	names := make([]string, 0, len(c.Tags))
	for i := range c.Tags {
		names = append(names, c.Tags[i].Name)
	}
	return catView{
		ID:      c.ID,
		CatID:   c.SourceID,
		Width:   c.Width,
		Height:  c.Height,
		Created: c.Created,
		Tags:    names,
	}
}

// queryInt parses an optional integer query parameter. The bool result is
// false only when the parameter is present but malformed.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorView{Error: msg})
}
