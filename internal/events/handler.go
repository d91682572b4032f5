package events

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fiesta-events/fiesta-events/internal/platform/httpx"
	"github.com/fiesta-events/fiesta-events/internal/pricing"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// Quote previews pricing for a raw draft. The wizard calls this while the
// user is still typing, so anything short of unreadable JSON gets a 200
// with whatever the calculation makes of the input.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var draft pricing.EventDraft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.Quote(draft))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	ev, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create event failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ev)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	ev, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update event failed", slog.Int64("event_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ev)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}
	ev, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ev)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := parseListRequest(r)
	events, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list events failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"events": events, "total": total})
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}
	ev, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		h.logger.Error("confirm event failed", slog.Int64("event_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ev)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}
	var req CancelEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	ev, err := h.service.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		h.logger.Error("cancel event failed", slog.Int64("event_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ev)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}
	ev, err := h.service.Complete(r.Context(), id)
	if err != nil {
		h.logger.Error("complete event failed", slog.Int64("event_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ev)
}

func (h *Handler) eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid event ID")
		return 0, false
	}
	return id, true
}

func parseListRequest(r *http.Request) ListEventsRequest {
	q := r.URL.Query()
	req := ListEventsRequest{
		Search: q.Get("search"),
		Limit:  50,
	}

	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		req.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 1 {
		req.Offset = (v - 1) * req.Limit
	}
	if v, err := strconv.ParseInt(q.Get("client"), 10, 64); err == nil {
		req.ClientID = &v
	}
	if v, err := strconv.ParseInt(q.Get("space"), 10, 64); err == nil {
		req.SpaceID = &v
	}
	if v := q.Get("status"); v != "" {
		status := EventStatus(v)
		req.Status = &status
	}
	if v, err := time.Parse(dateLayout, q.Get("date_from")); err == nil {
		req.DateFrom = &v
	}
	if v, err := time.Parse(dateLayout, q.Get("date_to")); err == nil {
		req.DateTo = &v
	}
	return req
}
