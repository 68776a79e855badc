package activity

import (
	"context"

	activityservice "github.com/fairway-collective/roundhouse/app/modules/activity/application"
	activitybridge "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/bridge"
	activityhandlers "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/handlers"
	activityrouter "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/router"
	activitydb "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/repositories"
	"github.com/fairway-collective/roundhouse/config"
	"github.com/fairway-collective/roundhouse/internal/eventbus"
	"github.com/fairway-collective/roundhouse/internal/observability"
	"github.com/fairway-collective/roundhouse/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

// Module bundles the activity subsystem: repository, service, HTTP surface,
// and the feed publication bridge.
type Module struct {
	Service  activityservice.Service
	Handlers *activityhandlers.ActivityHandlers

	observability *observability.Observability
}

// NewModule creates and wires the activity module, registering its routes on
// the given HTTP router.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	bus eventbus.EventBus,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := otel.Tracer("activity")

	logger.InfoContext(ctx, "Initializing activity module")

	repo := activitydb.NewRepository(db)
	metrics := observability.NewActivityMetrics(obs.Registry)
	publisher := activitybridge.NewEventPublisher(bus, logger)

	service := activityservice.NewActivityService(repo, publisher, logger, metrics, tracer, db)
	handlers := activityhandlers.NewActivityHandlers(service, logger, metrics, cfg.HTTP.ContentionRetry)

	if httpRouter != nil {
		jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL)
		activityrouter.Register(httpRouter, handlers, jwtService, cfg.HTTP.RequestsPerSec, cfg.HTTP.RateLimitBurst)
	}

	return &Module{
		Service:       service,
		Handlers:      handlers,
		observability: obs,
	}, nil
}

// Close shuts down the activity module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Activity module stopped")
	return nil
}
