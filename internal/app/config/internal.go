package config

type InternalConfig struct {
	App        App
	Catalog    AppCatalog
	ScoreQuota AppScoreQuota
	RabbitMQ   AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	MetricsPort                string
	Version                    string
	Timezone                   string
	EndpointPrefix             string
	AllowedOrigins             []string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	RequestBodyLimitInKilobyte int64
	// SuperadminAPIKey guards catalog administration; empty disables those routes
	SuperadminAPIKey string
}

// AppCatalog selects where questionnaire configurations are loaded from.
type AppCatalog struct {
	// Source is one of embedded, file, minio or mongo
	Source          string
	FilePath        string
	MinioBucketName string
	MinioObjectName string
	MongoCollection string
	// LoadTimeoutInSeconds bounds a single load from a remote source
	LoadTimeoutInSeconds int
	// RefreshIntervalMinutes reloads the catalog periodically; 0 disables it
	RefreshIntervalMinutes int
}

// AppScoreQuota limits scoring requests per client within a fixed window.
type AppScoreQuota struct {
	MaxQuota          int
	WindowDurationSec int
}

type AppRabbitMQ struct {
	ScoreEventsQueue string
}

func (a App) IsProduction() bool {
	return a.Env == "production"
}
