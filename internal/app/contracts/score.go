package contracts

import (
	"context"
	"koos-service/internal/pkg/dto/requests"
	"koos-service/internal/pkg/dto/responses"
)

type ScoreUsecase interface {
	ScoreResponses(ctx context.Context, questionnaireID string, request *requests.ScoreQuestionnaireResponse) (*responses.ScoreReport, error)
}
