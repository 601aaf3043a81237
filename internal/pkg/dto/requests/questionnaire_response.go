package requests

// ScoreQuestionnaireResponse carries answers keyed by question id. Values are
// kept loosely typed so non-numeric answers can be reported per question.
type ScoreQuestionnaireResponse struct {
	Responses map[string]interface{} `json:"responses" validate:"required"`
}
