package constvars

const (
	ResponseUnknown = "unknown"

	FindAllQuestionnairesSuccessMessage = "questionnaires fetched successfully"
	FindQuestionnaireSuccessMessage     = "questionnaire fetched successfully"
	ReloadQuestionnairesSuccessMessage  = "questionnaire catalog reloaded successfully"
	ScoreQuestionnaireSuccessMessage    = "questionnaire scored successfully"
	HealthCheckSuccessMessage           = "service is healthy"
)
