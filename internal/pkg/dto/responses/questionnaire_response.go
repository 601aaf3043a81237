package responses

import "time"

type SectionScore struct {
	Name           string  `json:"name"`
	Score          float64 `json:"score"`
	Interpretation string  `json:"interpretation"`
}

type ScoreReport struct {
	QuestionnaireID   string         `json:"questionnaire_id"`
	QuestionnaireName string         `json:"questionnaire_name"`
	Sections          []SectionScore `json:"sections"`
	TotalScore        float64        `json:"total_score"`
	Interpretation    string         `json:"interpretation"`
	ScoredAt          time.Time      `json:"scored_at"`
}
