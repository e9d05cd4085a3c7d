package http

import (
	"log/slog"
	"os"

	"github.com/astek-sistemas/participacao-backend-go/internal/handler/http/middleware"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	sectorHandler SectorHandler,
	employeeHandler EmployeeHandler,
	eventHandler EventHandler,
	ruleHandler RuleHandler,
	participationHandler ParticipationHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "participacao-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/sectors", func(r chi.Router) {
				r.Get("/", sectorHandler.List)
				r.Post("/", sectorHandler.Create)
				r.Get("/{id}", sectorHandler.Get)
				r.Put("/{id}", sectorHandler.Update)
				r.Delete("/{id}", sectorHandler.Delete)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Delete)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventHandler.List)
				r.Post("/", eventHandler.Create)
				r.Post("/import", eventHandler.Import)
				r.Delete("/{id}", eventHandler.Delete)
			})

			r.Route("/rules", func(r chi.Router) {
				r.Get("/", ruleHandler.List)
				r.Post("/", ruleHandler.Create)
				r.Get("/{id}", ruleHandler.Get)
				r.Put("/{id}", ruleHandler.Update)
				r.Delete("/{id}", ruleHandler.Delete)
			})

			r.Route("/participation", func(r chi.Router) {
				r.Route("/revenue-configs", func(r chi.Router) {
					r.Get("/", participationHandler.ListRevenueConfigs)
					r.Put("/", participationHandler.UpsertRevenueConfig)
					r.Get("/{quarter}", participationHandler.GetRevenueConfig)
				})

				r.Route("/{quarter}", func(r chi.Router) {
					r.Post("/recompute", participationHandler.RecomputeQuarter)
					r.Get("/records", participationHandler.ListRecords)
					r.Get("/records/{employeeId}", participationHandler.GetRecord)
					r.Patch("/records/{employeeId}", participationHandler.UpdateRecord)

					r.Route("/approvals", func(r chi.Router) {
						r.Get("/", participationHandler.ListApprovals)
						r.Post("/{sectorId}", participationHandler.Approve)

						// Super admin only
						r.Group(func(r chi.Router) {
							r.Use(middleware.SuperAdminOnly)
							r.Delete("/{sectorId}", participationHandler.Revoke)
						})
					})
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/participation/{quarter}/spreadsheet", reportHandler.QuarterSpreadsheet)
				r.Get("/participation/{quarter}/statement/{employeeId}", reportHandler.EmployeeStatement)
			})
		})
	})
	return r
}
