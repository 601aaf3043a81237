package middlewares

import (
	"koos-service/internal/app/config"
	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/metrics"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	InternalConfig  *config.InternalConfig
	ResourceLimiter contracts.ResourceLimiter
	Metrics         *metrics.Metrics
}

func NewMiddlewares(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	resourceLimiter contracts.ResourceLimiter,
	metrics *metrics.Metrics,
) *Middlewares {
	return &Middlewares{
		Log:             logger,
		InternalConfig:  internalConfig,
		ResourceLimiter: resourceLimiter,
		Metrics:         metrics,
	}
}
