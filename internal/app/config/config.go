package config

import (
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Logger: Logger{
			Driver:              utils.GetEnvString("LOGGER_DRIVER", constvars.LoggerDriverZap),
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		Redis: Redis{
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", false),
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		MongoDB: MongoDB{
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "koos"),
		},
		Minio: Minio{
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Username: utils.GetEnvString("MINIO_USERNAME", ""),
			Password: utils.GetEnvString("MINIO_PASSWORD", ""),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		RabbitMQ: RabbitMQ{
			Enabled:  utils.GetEnvBool("RABBITMQ_ENABLED", false),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			MetricsPort:                utils.GetEnvString("APP_METRICS_PORT", ""),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvCSV("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUESTS", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInKilobyte: utils.GetEnvInt64("APP_REQUEST_BODY_LIMIT_IN_KILOBYTE", 64),
			SuperadminAPIKey:           utils.GetEnvString("APP_SUPERADMIN_API_KEY", ""),
		},
		Catalog: AppCatalog{
			Source:                 utils.GetEnvString("CATALOG_SOURCE", constvars.CatalogSourceEmbedded),
			FilePath:               utils.GetEnvString("CATALOG_FILE_PATH", "questionnaires.yaml"),
			MinioBucketName:        utils.GetEnvString("CATALOG_MINIO_BUCKET_NAME", "questionnaires"),
			MinioObjectName:        utils.GetEnvString("CATALOG_MINIO_OBJECT_NAME", "catalog.yaml"),
			MongoCollection:        utils.GetEnvString("CATALOG_MONGO_COLLECTION", "questionnaires"),
			LoadTimeoutInSeconds:   utils.GetEnvInt("CATALOG_LOAD_TIMEOUT_IN_SECONDS", 10),
			RefreshIntervalMinutes: utils.GetEnvInt("CATALOG_REFRESH_INTERVAL_IN_MINUTES", 0),
		},
		ScoreQuota: AppScoreQuota{
			MaxQuota:          utils.GetEnvInt("SCORE_QUOTA_MAX", 60),
			WindowDurationSec: utils.GetEnvInt("SCORE_QUOTA_WINDOW_IN_SECONDS", 60),
		},
		RabbitMQ: AppRabbitMQ{
			ScoreEventsQueue: utils.GetEnvString("APP_RABBITMQ_SCORE_EVENTS_QUEUE", "koos.score.events"),
		},
	}
}
