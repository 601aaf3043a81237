package routers

import (
	"koos-service/internal/app/delivery/http/controllers"
	"koos-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachQuestionnaireRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	questionnaireController *controllers.QuestionnaireController,
	scoreController *controllers.ScoreController,
) {
	router.Get("/", questionnaireController.FindAll)
	router.With(middlewares.RequireSuperadminAPIKey).Post("/reload", questionnaireController.Reload)
	router.Get("/{questionnaire_id}", questionnaireController.FindByID)
	router.With(middlewares.ScoreQuota).Post("/{questionnaire_id}/scores", scoreController.ScoreResponses)
	router.With(middlewares.ScoreQuota).Post("/{questionnaire_id}/scores/fhir", scoreController.ScoreFHIRResponse)
}
