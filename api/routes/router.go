package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/freezerplan-backend/api/controllers"
	"github.com/angelmondragon/freezerplan-backend/api/middleware"
	"github.com/angelmondragon/freezerplan-backend/internal/planner"
	"github.com/angelmondragon/freezerplan-backend/pkg/config"
	"github.com/angelmondragon/freezerplan-backend/pkg/db"
	"github.com/angelmondragon/freezerplan-backend/pkg/logger"
	"github.com/angelmondragon/freezerplan-backend/pkg/metrics"
	"github.com/angelmondragon/freezerplan-backend/pkg/redis"
)

// Params wires the router. Cache, Gatherer and HTTPMetrics are optional.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Cache       redis.Pinger
	Planner     planner.Service
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(p Params) http.Handler {
	cfg, logg, svc := p.Config, p.Logger, p.Planner

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Cache))
	})

	if p.Gatherer != nil && cfg.FeatureFlags.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", controllers.CatalogList(svc, logg))
		r.Get("/personas", controllers.PersonaList())

		r.Route("/households/{"+middleware.HouseholdParam+"}", func(r chi.Router) {
			r.Use(middleware.Household(logg))
			r.Get("/", controllers.HouseholdSession(svc, logg))
			r.Put("/profile", controllers.HouseholdSaveProfile(svc, logg))
			r.Put("/freezer", controllers.HouseholdSaveFreezer(svc, logg))
			r.Get("/demand", controllers.HouseholdDemand(svc, logg))
			r.Get("/customizations", controllers.HouseholdCustomizations(svc, logg))
			r.Post("/persona", controllers.HouseholdApplyPersona(svc, logg))
			r.Post("/budget", controllers.HouseholdAutoScale(svc, logg))
			r.Post("/plan", controllers.HouseholdBuildPlan(svc, logg))
			r.Put("/plan/lines", controllers.HouseholdSetManualLine(svc, logg))
			r.Get("/freezer/simulation", controllers.HouseholdFreezerSimulation(svc, logg))
			r.Get("/calendar", controllers.HouseholdCalendar(svc, logg))
			r.Post("/calendar/swap", controllers.HouseholdSwapDays(svc, logg))
			r.Delete("/calendar", controllers.HouseholdResetCalendar(svc, logg))
		})
	})

	return r
}
