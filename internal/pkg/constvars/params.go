package constvars

const (
	URLParamQuestionnaireID = "questionnaire_id"
)
