package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_API_KEY_AUTH_KEY         ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "KOOS_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	CatalogSourceEmbedded = "embedded"
	CatalogSourceFile     = "file"
	CatalogSourceMinio    = "minio"
	CatalogSourceMongo    = "mongo"
)

const (
	LoggerDriverZap    = "zap"
	LoggerDriverLogrus = "logrus"
)

const (
	ScoreLimiterGroupName = "score"
	EventScoreComputed    = "score.computed"
)
