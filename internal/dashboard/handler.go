package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/fiesta-events/fiesta-events/internal/platform/httpx"
)

// summaryGroup collapses concurrent summary requests into one load; the
// dashboard is polled and the aggregates are not cheap.
var summaryGroup singleflight.Group

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	result, err, _ := summaryGroup.Do("dashboard:summary", func() (interface{}, error) {
		return h.service.Summary(context.WithoutCancel(r.Context()))
	})
	if err != nil {
		h.logger.Error("dashboard summary failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
