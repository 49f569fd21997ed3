package middlewares

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/services/shared/metrics"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	SessionService contracts.SessionService
	Enforcer       *casbin.Enforcer
	Metrics        *metrics.ClinicMetrics
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(
	logger *zap.Logger,
	sessionService contracts.SessionService,
	enforcer *casbin.Enforcer,
	clinicMetrics *metrics.ClinicMetrics,
	internalConfig *config.InternalConfig,
) *Middlewares {
	return &Middlewares{
		Log:            logger,
		SessionService: sessionService,
		Enforcer:       enforcer,
		Metrics:        clinicMetrics,
		InternalConfig: internalConfig,
	}
}
