package questionnaires

import (
	"context"
	"errors"
	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/dto/responses"
	"koos-service/internal/pkg/exceptions"
	catalog "koos-service/internal/pkg/questionnaires"
	"koos-service/internal/pkg/scoring"
	"koos-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type questionnaireUsecase struct {
	CatalogProvider contracts.CatalogProvider
	Log             *zap.Logger
}

func NewQuestionnaireUsecase(catalogProvider contracts.CatalogProvider, logger *zap.Logger) contracts.QuestionnaireUsecase {
	return &questionnaireUsecase{
		CatalogProvider: catalogProvider,
		Log:             logger,
	}
}

func (uc *questionnaireUsecase) FindAll(ctx context.Context) ([]responses.QuestionnaireSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	// one snapshot so ids and configs come from the same catalog
	current := uc.CatalogProvider.Current()
	summaries := make([]responses.QuestionnaireSummary, 0, current.Len())
	for _, id := range current.IDs() {
		config, _ := current.Get(id)
		sections := make([]string, 0, len(config.Sections))
		for _, section := range config.Sections {
			sections = append(sections, section.Name)
		}
		summaries = append(summaries, responses.QuestionnaireSummary{
			ID:       id,
			Name:     config.Name,
			Sections: sections,
		})
	}

	uc.Log.Info("questionnaireUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCatalogSizeKey, len(summaries)),
	)
	return summaries, nil
}

func (uc *questionnaireUsecase) FindByID(ctx context.Context, questionnaireID string) (*responses.Questionnaire, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	questionnaireID = catalog.NormalizeID(questionnaireID)
	uc.Log.Info("questionnaireUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	config, ok := uc.CatalogProvider.Get(questionnaireID)
	if !ok {
		return nil, exceptions.ErrQuestionnaireNotFound(nil, questionnaireID)
	}
	return toQuestionnaire(questionnaireID, config), nil
}

func (uc *questionnaireUsecase) Reload(ctx context.Context) (*responses.CatalogReload, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.Reload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCatalogSourceKey, uc.CatalogProvider.SourceName()),
	)

	var reloaded *catalog.Catalog
	err := utils.LogOperation(uc.Log, "catalog.reload", requestID, func() error {
		var err error
		reloaded, err = uc.CatalogProvider.Reload(ctx)
		return err
	})
	if err != nil {
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return nil, err
		}
		return nil, exceptions.ErrCatalogLoad(err, uc.CatalogProvider.SourceName())
	}

	return &responses.CatalogReload{
		Source:         uc.CatalogProvider.SourceName(),
		Questionnaires: reloaded.IDs(),
	}, nil
}

func toQuestionnaire(id string, config *scoring.Config) *responses.Questionnaire {
	questionnaire := &responses.Questionnaire{
		ID:             id,
		Name:           config.Name,
		Sections:       make([]responses.QuestionnaireSection, 0, len(config.Sections)),
		Interpretation: make([]responses.InterpretationBand, 0, len(config.Interpretation)),
	}
	for _, section := range config.Sections {
		questionnaire.Sections = append(questionnaire.Sections, responses.QuestionnaireSection{
			Name:      section.Name,
			Questions: section.Questions,
		})
	}
	for _, band := range config.Interpretation {
		questionnaire.Interpretation = append(questionnaire.Interpretation, responses.InterpretationBand{
			Range:       catalog.FormatRange(band.Low, band.High),
			Low:         band.Low,
			High:        band.High,
			Description: band.Description,
		})
	}
	return questionnaire
}
