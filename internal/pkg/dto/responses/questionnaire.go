package responses

type QuestionnaireSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Sections []string `json:"sections"`
}

type QuestionnaireSection struct {
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

type InterpretationBand struct {
	Range       string  `json:"range"`
	Low         float64 `json:"low"`
	High        float64 `json:"high"`
	Description string  `json:"description"`
}

type Questionnaire struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Sections       []QuestionnaireSection `json:"sections"`
	Interpretation []InterpretationBand   `json:"interpretation"`
}

type CatalogReload struct {
	Source         string   `json:"source"`
	Questionnaires []string `json:"questionnaires"`
}
