package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dncoder14/crimewatch-ai/internal/console/handler"
	"github.com/dncoder14/crimewatch-ai/internal/engine"
)

type ConsoleServer struct {
	router  *chi.Mux
	logger  *zap.Logger
	metrics *engine.Metrics

	// Обработчики бизнес-доменов
	incidentHandler   *handler.IncidentHandler   // /api/v1/incidents
	dashHandler       *handler.DashboardHandler  // /api/v1/dashboard
	predictionHandler *handler.PredictionHandler // /api/v1/predictions
}

// NewConsoleServer инициализирует HTTP API дашборда со всеми зависимостями
func NewConsoleServer(
	logger *zap.Logger,
	metrics *engine.Metrics,
	incidentH *handler.IncidentHandler,
	dashH *handler.DashboardHandler,
	predictionH *handler.PredictionHandler,
) *ConsoleServer {
	s := &ConsoleServer{
		router:            chi.NewRouter(),
		logger:            logger.Named("console-api"),
		metrics:           metrics,
		incidentHandler:   incidentH,
		dashHandler:       dashH,
		predictionHandler: predictionH,
	}

	s.routes()
	return s
}

func (s *ConsoleServer) routes() {
	r := s.router

	// --- 1. Глобальные инфраструктурные Middleware ---
	// Порядок важен: Trace -> Metrics -> Logger (логгер видит trace_id)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(engine.TracingMiddleware)
	r.Use(engine.MetricsMiddleware(s.metrics))
	r.Use(engine.RequestLogger(s.logger))

	// --- 2. Healthcheck для мониторинга ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// --- 3. API дашборда ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/incidents", s.incidentHandler.List)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", s.dashHandler.GetStats)
			r.Get("/overview", s.dashHandler.GetOverview)
		})

		r.Get("/predictions", s.predictionHandler.Get)
	})
}

// ServeHTTP позволяет использовать ConsoleServer как стандартный http.Handler
func (s *ConsoleServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
