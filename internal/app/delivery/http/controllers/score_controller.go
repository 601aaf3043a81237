package controllers

import (
	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/constvars"
	fhir_dto "koos-service/internal/pkg/dto/fhir"
	"koos-service/internal/pkg/dto/requests"
	"koos-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScoreController struct {
	Log          *zap.Logger
	ScoreUsecase contracts.ScoreUsecase
	Timeout      time.Duration
}

func NewScoreController(logger *zap.Logger, scoreUsecase contracts.ScoreUsecase, timeout time.Duration) *ScoreController {
	return &ScoreController{
		Log:          logger,
		ScoreUsecase: scoreUsecase,
		Timeout:      timeout,
	}
}

func (ctrl *ScoreController) ScoreResponses(w http.ResponseWriter, r *http.Request) {
	questionnaireID := chi.URLParam(r, constvars.URLParamQuestionnaireID)

	request := new(requests.ScoreQuestionnaireResponse)
	err := utils.DecodeJSONBody(r, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.score(w, r, questionnaireID, request)
}

// ScoreFHIRResponse scores a FHIR QuestionnaireResponse resource, reading
// answers by item linkId.
func (ctrl *ScoreController) ScoreFHIRResponse(w http.ResponseWriter, r *http.Request) {
	questionnaireID := chi.URLParam(r, constvars.URLParamQuestionnaireID)

	resource := new(fhir_dto.QuestionnaireResponse)
	err := utils.DecodeJSONBody(r, resource)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.score(w, r, questionnaireID, &requests.ScoreQuestionnaireResponse{
		Responses: resource.Answers(),
	})
}

func (ctrl *ScoreController) score(w http.ResponseWriter, r *http.Request, questionnaireID string, request *requests.ScoreQuestionnaireResponse) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	result, err := ctrl.ScoreUsecase.ScoreResponses(ctx, questionnaireID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScoreQuestionnaireSuccessMessage, result)
}
