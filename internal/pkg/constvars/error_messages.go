package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must contain at least %s entries",
	"max":      "must contain at most %s entries",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min": true,
	"max": true,
	"gte": true,
	"lte": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientQuestionnaireNotFound         = "questionnaire not found"
	ErrClientInvalidResponses              = "responses must be numeric answers keyed by question id"
	ErrClientScoringFailed                 = "the questionnaire could not be scored"
	ErrClientTooManyRequests               = "too many scoring requests, please retry later"
	ErrClientRequestBodyTooLarge           = "request body is too large"
	ErrClientRateLimited                   = "too many requests, please slow down"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevCannotParseJSON        = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON      = "cannot convert struct or other data types to JSON"
	ErrDevValidationFailed       = "validation failed"
	ErrDevQuestionnaireNotFound  = "questionnaire %s is not in the catalog"
	ErrDevInvalidResponses       = "responses of questionnaire %s could not be decoded"
	ErrDevScoringFailed          = "scoring of questionnaire %s failed"
	ErrDevScoreQuotaExceeded     = "score quota exceeded for client %s"
	ErrDevRateLimited            = "request rate exceeded for %s"
	ErrDevInvalidAPIKey          = "invalid API key"
	ErrDevRequestBodyTooLarge    = "request body exceeds %d bytes"
	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"

	// Catalog messages
	ErrDevCatalogLoad   = "failed to load questionnaire catalog from %s"
	ErrDevCatalogSource = "unknown questionnaire catalog source %s"

	// Minio messages
	ErrDevMinioFailedToGetObject = "failed to get object %s from minio storage with bucket name '%s'"

	// Mongo messages
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"

	// Redis messages
	ErrDevRedisIncrementValue = "failed to INCR data in redis"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue %s"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
