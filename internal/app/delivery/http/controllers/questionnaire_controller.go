package controllers

import (
	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type QuestionnaireController struct {
	Log                  *zap.Logger
	QuestionnaireUsecase contracts.QuestionnaireUsecase
	Timeout              time.Duration
}

func NewQuestionnaireController(logger *zap.Logger, questionnaireUsecase contracts.QuestionnaireUsecase, timeout time.Duration) *QuestionnaireController {
	return &QuestionnaireController{
		Log:                  logger,
		QuestionnaireUsecase: questionnaireUsecase,
		Timeout:              timeout,
	}
}

func (ctrl *QuestionnaireController) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	result, err := ctrl.QuestionnaireUsecase.FindAll(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindAllQuestionnairesSuccessMessage, result)
}

func (ctrl *QuestionnaireController) FindByID(w http.ResponseWriter, r *http.Request) {
	questionnaireID := chi.URLParam(r, constvars.URLParamQuestionnaireID)

	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	result, err := ctrl.QuestionnaireUsecase.FindByID(ctx, questionnaireID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindQuestionnaireSuccessMessage, result)
}

func (ctrl *QuestionnaireController) Reload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	result, err := ctrl.QuestionnaireUsecase.Reload(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReloadQuestionnairesSuccessMessage, result)
}
