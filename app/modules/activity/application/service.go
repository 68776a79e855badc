package activityservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	activitydb "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/repositories"
	"github.com/fairway-collective/roundhouse/internal/observability"
	"github.com/fairway-collective/roundhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ActivityService implements the Service interface.
type ActivityService struct {
	repo      activitydb.Repository
	publisher SummaryPublisher
	logger    *slog.Logger
	metrics   observability.ActivityMetrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewActivityService creates a new ActivityService.
func NewActivityService(
	repo activitydb.Repository,
	publisher SummaryPublisher,
	logger *slog.Logger,
	metrics observability.ActivityMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &ActivityService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
	}
}

// actorContext loads the evaluator's view of the actor for one activity:
// the account id plus its membership row, if any.
func (s *ActivityService) actorContext(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, activityID uuid.UUID) (activitydomain.Actor, *activitydb.Participant, error) {
	row, err := s.repo.GetParticipant(ctx, db, activityID, actor)
	if err != nil {
		if errors.Is(err, activitydb.ErrNotFound) {
			return activitydomain.Actor{AccountID: actor}, nil, nil
		}
		return activitydomain.Actor{}, nil, fmt.Errorf("failed to load actor membership: %w", err)
	}
	return activitydomain.Actor{
		AccountID: actor,
		Membership: &activitydomain.Membership{
			Role:   row.Role,
			Status: row.Status,
		},
	}, row, nil
}

// getActivityFor loads an activity and checks the actor may perform op on
// it. Absence and denial collapse into ErrAccessDenied so private activities
// never leak their existence.
func (s *ActivityService) getActivityFor(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, activityID uuid.UUID, op activitydomain.Operation) (*activitydb.Activity, activitydomain.Actor, *activitydb.Participant, error) {
	activity, err := s.repo.GetActivity(ctx, db, activityID)
	if err != nil {
		if errors.Is(err, activitydb.ErrNotFound) {
			return nil, activitydomain.Actor{}, nil, ErrAccessDenied
		}
		return nil, activitydomain.Actor{}, nil, fmt.Errorf("failed to load activity: %w", err)
	}

	actorCtx, row, err := s.actorContext(ctx, db, actor, activityID)
	if err != nil {
		return nil, activitydomain.Actor{}, nil, err
	}

	if !activitydomain.Can(actorCtx, toDomainActivity(activity), op) {
		return nil, activitydomain.Actor{}, nil, ErrAccessDenied
	}

	return activity, actorCtx, row, nil
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ActivityService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	// Start span
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "ActivityService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "ActivityService", time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, "Operation triggered",
		slog.String("operation", operationName),
		slog.String("identifier", identifier),
	)

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "ActivityService")
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	// Execute operation
	result, err = op(ctx)

	// Handle Infrastructure Error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "ActivityService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Handle Domain Failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("failure_payload", *result.Failure),
		)
	}

	// Handle Success
	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "ActivityService")

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ActivityService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// unwrap converts the result envelope into the service's public return shape.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	return *result.Success, nil
}
