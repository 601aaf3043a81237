package routers

import (
	"fmt"
	"koos-service/internal/app/config"
	"koos-service/internal/app/delivery/http/controllers"
	"koos-service/internal/app/delivery/http/middlewares"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	questionnaireController *controllers.QuestionnaireController,
	scoreController *controllers.ScoreController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", constvars.HeaderXRequestID, constvars.HeaderClientID, constvars.HeaderAPIKey},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.LimitRequestBody)

	router.Get("/health", healthCheck)
	// metrics get their own listener when a metrics port is configured
	if internalConfig.App.MetricsPort == "" {
		router.Handle("/metrics", promhttp.Handler())
	}

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/questionnaires", func(r chi.Router) {
				attachQuestionnaireRoutes(r, middlewares, questionnaireController, scoreController)
			})
		})
	})
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", healthCheck)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{"status": "ok"})
}
