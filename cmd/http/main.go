package main

import (
	"context"
	"koos-service/internal/app/config"
	"koos-service/internal/app/contracts"
	"koos-service/internal/app/delivery/http/controllers"
	"koos-service/internal/app/delivery/http/middlewares"
	"koos-service/internal/app/delivery/http/routers"
	"koos-service/internal/app/drivers/database"
	"koos-service/internal/app/drivers/logger"
	"koos-service/internal/app/drivers/messaging"
	"koos-service/internal/app/drivers/storage"
	"koos-service/internal/app/services/core/questionnaires"
	"koos-service/internal/app/services/core/scores"
	"koos-service/internal/app/services/shared/catalog"
	"koos-service/internal/app/services/shared/events"
	"koos-service/internal/app/services/shared/ratelimiter"
	"koos-service/internal/app/services/shared/redis"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/metrics"
	"koos-service/internal/pkg/scoring"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         logger.NewZapLogger(driverConfig, internalConfig),
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if driverConfig.Redis.Enabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if driverConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	var minioClient *minio.Client
	var mongoDatabase *mongo.Database
	switch internalConfig.Catalog.Source {
	case constvars.CatalogSourceMinio:
		minioClient = storage.NewMinio(driverConfig, internalConfig.Catalog.MinioBucketName)
	case constvars.CatalogSourceMongo:
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
		mongoDatabase = bootstrap.MongoDB.Database(driverConfig.MongoDB.DbName)
	}

	err = bootstrapingTheApp(bootstrap, minioClient, mongoDatabase)
	if err != nil {
		bootstrap.Logger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		bootstrap.Logger.Info("Server started", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	var metricsServer *http.Server
	if internalConfig.App.MetricsPort != "" {
		metricsServer = &http.Server{
			Addr:              internalConfig.App.MetricsPort,
			Handler:           routers.NewMetricsRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			err := metricsServer.ListenAndServe()
			if err != nil && err != http.ErrServerClosed {
				log.Fatalf("Metrics server failed to start: %v", err)
			}
		}()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if metricsServer != nil {
		metricsServer.Shutdown(shutdownCtx)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client, mongoDatabase *mongo.Database) error {
	internalConfig := bootstrap.InternalConfig
	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Catalog
	source, err := catalog.NewSource(internalConfig.Catalog, minioClient, mongoDatabase)
	if err != nil {
		return err
	}
	loadCtx, cancel := context.WithTimeout(context.Background(), time.Duration(internalConfig.Catalog.LoadTimeoutInSeconds)*time.Second)
	defer cancel()
	catalogProvider, err := catalog.NewProvider(loadCtx, source, bootstrap.Logger, appMetrics)
	if err != nil {
		return err
	}
	if internalConfig.Catalog.RefreshIntervalMinutes > 0 {
		bootstrap.WorkerStop = catalogProvider.StartRefresher(
			time.Duration(internalConfig.Catalog.RefreshIntervalMinutes)*time.Minute,
			time.Duration(internalConfig.Catalog.LoadTimeoutInSeconds)*time.Second,
		)
	}

	// Rate limiter
	var resourceLimiter contracts.ResourceLimiter
	if bootstrap.Redis != nil {
		resourceLimiter = ratelimiter.NewResourceLimiter(redis.NewRedisRepository(bootstrap.Redis), bootstrap.Logger)
	} else {
		resourceLimiter = ratelimiter.NewLocalLimiter(bootstrap.Logger)
	}

	// Events
	eventPublisher := events.NewNoopPublisher()
	if bootstrap.RabbitMQ != nil {
		eventPublisher, err = events.NewRabbitMQPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.ScoreEventsQueue, bootstrap.Logger)
		if err != nil {
			return err
		}
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig, resourceLimiter, appMetrics)

	requestTimeout := time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second

	// Questionnaire
	questionnaireUsecase := questionnaires.NewQuestionnaireUsecase(catalogProvider, bootstrap.Logger)
	questionnaireController := controllers.NewQuestionnaireController(bootstrap.Logger, questionnaireUsecase, requestTimeout)

	// Score
	scorer := scoring.NewScorer(newScoringLogger(bootstrap))
	scoreUsecase := scores.NewScoreUsecase(catalogProvider, eventPublisher, scorer, appMetrics, bootstrap.Logger)
	scoreController := controllers.NewScoreController(bootstrap.Logger, scoreUsecase, requestTimeout)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, questionnaireController, scoreController)
	return nil
}

// newScoringLogger routes the scorer's step-by-step diagnostics to the
// configured logger driver.
func newScoringLogger(bootstrap *config.Bootstrap) scoring.Logger {
	if bootstrap.DriverConfig.Logger.Driver == constvars.LoggerDriverLogrus {
		return logger.NewLogrusScoringLogger(logger.NewLogrusLogger(bootstrap.DriverConfig, bootstrap.InternalConfig))
	}
	return logger.NewZapScoringLogger(bootstrap.Logger.Named("scoring"))
}
