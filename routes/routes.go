package routes

import (
	"net/http"

	_ "github.com/Dosada05/sporter/docs" // регистрирует swagger-спецификацию
	"github.com/Dosada05/sporter/handlers"
	"github.com/Dosada05/sporter/middleware"
	"github.com/Dosada05/sporter/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	Metrics        prometheus.Gatherer
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	matchHandler *handlers.MatchHandler,
	standingHandler *handlers.StandingHandler,
	orderHandler *handlers.OrderHandler,
	dashboardHandler *handlers.DashboardHandler,
	sportHandler *handlers.SportHandler,
	teamHandler *handlers.TeamHandler,
	webSocketHandler *handlers.WebSocketHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.JWTSecret)

	// Служебные маршруты
	router.Get("/healthz", healthHandler.Healthz)
	if opts.Metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{}))
	}
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Публичные маршруты
	router.Get("/standings", standingHandler.ListStandings)
	router.Get("/sports", sportHandler.GetAllSports)
	router.Route("/sports/{sportID}", func(r chi.Router) {
		r.Get("/", sportHandler.GetSportByID)
		r.Get("/teams", teamHandler.ListTeams)
	})
	router.Get("/teams/{teamID}", teamHandler.GetTeamByID)
	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeMatch)

	// Покупка билетов: любой вошедший пользователь
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/tickets/purchase", orderHandler.BuyTicket)
		r.Route("/orders/{orderID}", func(r chi.Router) {
			r.Get("/", orderHandler.GetOrder)
			r.Post("/holders", orderHandler.SaveTicketHolders)
		})
	})

	// Панель субадмина: доступ к виду спорта проверяется в сервисах
	router.Route("/subadmin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.Authorize(models.RoleAdmin, models.RoleSubadmin))

		r.Get("/dashboard", dashboardHandler.Stats)
		r.Post("/standings/sync", standingHandler.SyncStandings)
		r.Post("/teams/{teamID}/logo", teamHandler.UploadTeamLogo)

		r.Post("/matches", matchHandler.ScheduleMatch)
		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", matchHandler.GetMatch)
			r.Post("/score", matchHandler.SubmitTeamScore)
			r.Post("/individual-score", matchHandler.SubmitIndividualScore)
			r.Post("/submit-score", matchHandler.SubmitLegacyScore)
			r.Post("/result", matchHandler.RecordResult)
		})
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.Authorize(models.RoleAdmin))

		r.Post("/standings/publish", standingHandler.PublishSnapshot)
		r.Post("/sports/{sportID}/logo", sportHandler.UploadSportLogo)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Halaman tidak ditemukan"}` + "\n"))
	})
}
