package scores

import (
	"context"
	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/dto/requests"
	"koos-service/internal/pkg/dto/responses"
	"koos-service/internal/pkg/exceptions"
	"koos-service/internal/pkg/metrics"
	"koos-service/internal/pkg/questionnaires"
	"koos-service/internal/pkg/scoring"
	"koos-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type scoreUsecase struct {
	CatalogProvider contracts.CatalogProvider
	EventPublisher  contracts.ScoreEventPublisher
	Scorer          *scoring.Scorer
	Metrics         *metrics.Metrics
	Log             *zap.Logger
	now             func() time.Time
}

func NewScoreUsecase(
	catalogProvider contracts.CatalogProvider,
	eventPublisher contracts.ScoreEventPublisher,
	scorer *scoring.Scorer,
	metrics *metrics.Metrics,
	logger *zap.Logger,
) contracts.ScoreUsecase {
	return &scoreUsecase{
		CatalogProvider: catalogProvider,
		EventPublisher:  eventPublisher,
		Scorer:          scorer,
		Metrics:         metrics,
		Log:             logger,
		now:             time.Now,
	}
}

func (uc *scoreUsecase) ScoreResponses(ctx context.Context, questionnaireID string, request *requests.ScoreQuestionnaireResponse) (*responses.ScoreReport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	questionnaireID = questionnaires.NormalizeID(questionnaireID)
	uc.Log.Info("scoreUsecase.ScoreResponses called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
		zap.Int(constvars.LoggingResponseCountKey, len(request.Responses)),
	)

	config, ok := uc.CatalogProvider.Get(questionnaireID)
	if !ok {
		uc.Metrics.ObserveScore(questionnaireID, metrics.OutcomeNotFound, 0)
		uc.Log.Warn("scoreUsecase.ScoreResponses questionnaire not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
		)
		return nil, exceptions.ErrQuestionnaireNotFound(nil, questionnaireID)
	}

	answers, err := scoring.DecodeResponses(config, request.Responses)
	if err != nil {
		return nil, uc.scoringFailure(requestID, questionnaireID, err)
	}

	report, err := uc.Scorer.Compute(config, answers)
	if err != nil {
		return nil, uc.scoringFailure(requestID, questionnaireID, err)
	}

	outcome := metrics.OutcomeScored
	if len(report.Sections) == 0 {
		outcome = metrics.OutcomeNoResponses
	}
	uc.Metrics.ObserveScore(questionnaireID, outcome, report.TotalScore)

	response := toScoreReport(questionnaireID, report, uc.now().UTC())
	uc.publish(ctx, requestID, response)

	utils.LogBusinessEvent(uc.Log, constvars.EventScoreComputed, requestID,
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
		zap.Int(constvars.LoggingSectionCountKey, len(response.Sections)),
		zap.Float64(constvars.LoggingTotalScoreKey, response.TotalScore),
		zap.String(constvars.LoggingInterpretationKey, response.Interpretation),
	)
	return response, nil
}

// scoringFailure maps a scoring error onto the HTTP error taxonomy. Bad
// response data is the caller's fault; a bad configuration is ours.
func (uc *scoreUsecase) scoringFailure(requestID, questionnaireID string, err error) error {
	if scoring.IsConfiguration(err) {
		uc.Metrics.ObserveScore(questionnaireID, metrics.OutcomeFailed, 0)
		uc.Log.Error("scoreUsecase.ScoreResponses configuration rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
			zap.Error(err),
		)
		return exceptions.ErrScoringFailed(err, questionnaireID)
	}

	uc.Metrics.ObserveScore(questionnaireID, metrics.OutcomeInvalid, 0)
	uc.Log.Warn("scoreUsecase.ScoreResponses responses rejected",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
		zap.Error(err),
	)
	return exceptions.ErrInvalidResponses(err, questionnaireID)
}

// publish announces the report. Delivery is best effort and never fails the
// scoring request.
func (uc *scoreUsecase) publish(ctx context.Context, requestID string, report *responses.ScoreReport) {
	event := &contracts.ScoreComputedEvent{
		EventID:         uuid.NewString(),
		EventType:       constvars.EventScoreComputed,
		RequestID:       requestID,
		QuestionnaireID: report.QuestionnaireID,
		SectionCount:    len(report.Sections),
		TotalScore:      report.TotalScore,
		Interpretation:  report.Interpretation,
		OccurredAt:      report.ScoredAt,
	}

	err := uc.EventPublisher.PublishScoreComputed(ctx, event)
	if err != nil {
		uc.Metrics.IncPublishFailures()
		uc.Log.Warn("scoreUsecase.ScoreResponses failed to publish score event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.Error(err),
		)
	}
}

func toScoreReport(questionnaireID string, report *scoring.Report, scoredAt time.Time) *responses.ScoreReport {
	sections := make([]responses.SectionScore, 0, len(report.Sections))
	for _, section := range report.Sections {
		sections = append(sections, responses.SectionScore{
			Name:           section.Name,
			Score:          section.Score,
			Interpretation: section.Interpretation,
		})
	}
	return &responses.ScoreReport{
		QuestionnaireID:   questionnaireID,
		QuestionnaireName: report.QuestionnaireName,
		Sections:          sections,
		TotalScore:        report.TotalScore,
		Interpretation:    report.Interpretation,
		ScoredAt:          scoredAt,
	}
}
