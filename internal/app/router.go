package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/fiesta-events/fiesta-events/internal/clients"
	"github.com/fiesta-events/fiesta-events/internal/dashboard"
	"github.com/fiesta-events/fiesta-events/internal/events"
	"github.com/fiesta-events/fiesta-events/internal/partners"
	"github.com/fiesta-events/fiesta-events/internal/supplies"
	"github.com/fiesta-events/fiesta-events/internal/venues"
	"github.com/fiesta-events/fiesta-events/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	ClientsHandler   *clients.Handler
	PartnersHandler  *partners.Handler
	SuppliesHandler  *supplies.Handler
	VenuesHandler    *venues.Handler
	EventsHandler    *events.Handler
	DashboardHandler *dashboard.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with Fiesta defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/clients", params.ClientsHandler.MountRoutes)
	r.Route("/partners", params.PartnersHandler.MountRoutes)
	r.Route("/supplies", params.SuppliesHandler.MountRoutes)
	r.Route("/venues/spaces", params.VenuesHandler.MountRoutes)
	r.Route("/events", params.EventsHandler.MountRoutes)
	if params.DashboardHandler != nil {
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
