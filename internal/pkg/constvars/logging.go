package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingMethodKey          = "method"
	LoggingEndpointKey        = "endpoint"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingOperationKey       = "operation"
	LoggingQuestionnaireIDKey = "questionnaire_id"
	LoggingResponseCountKey   = "response_count"
	LoggingSectionCountKey    = "section_count"
	LoggingTotalScoreKey      = "total_score"
	LoggingInterpretationKey  = "interpretation"
	LoggingCatalogSourceKey   = "catalog_source"
	LoggingCatalogSizeKey     = "catalog_size"
	LoggingClientIDKey        = "client_id"
	LoggingRetryAfterKey      = "retry_after_seconds"
	LoggingEventIDKey         = "event_id"
	LoggingQueueKey           = "queue"
)
