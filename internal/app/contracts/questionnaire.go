package contracts

import (
	"context"
	"koos-service/internal/pkg/dto/responses"
)

type QuestionnaireUsecase interface {
	FindAll(ctx context.Context) ([]responses.QuestionnaireSummary, error)
	FindByID(ctx context.Context, questionnaireID string) (*responses.Questionnaire, error)
	Reload(ctx context.Context) (*responses.CatalogReload, error)
}
