package activitybridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	activityservice "github.com/fairway-collective/roundhouse/app/modules/activity/application"
	"github.com/fairway-collective/roundhouse/internal/eventbus"
)

// SummaryPublishedTopic is the subject the feed collaborator subscribes to.
const SummaryPublishedTopic = "feed.summary.published.v1"

// EventPublisher hands published summaries to the feed service over the
// event bus. The summary reference is stable per activity, so the consumer
// can upsert on it and repeated deliveries converge.
type EventPublisher struct {
	bus    eventbus.EventBus
	logger *slog.Logger
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(bus eventbus.EventBus, logger *slog.Logger) *EventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{bus: bus, logger: logger}
}

// PublishSummary emits the snapshot as a watermill message keyed by the
// summary reference.
func (p *EventPublisher) PublishSummary(ctx context.Context, snapshot activityservice.SummarySnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode summary snapshot: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("summary_ref", snapshot.SummaryRef.String())
	msg.Metadata.Set("activity_id", snapshot.ActivityID.String())

	if err := p.bus.Publish(SummaryPublishedTopic, msg); err != nil {
		return fmt.Errorf("failed to publish summary event: %w", err)
	}

	p.logger.InfoContext(ctx, "Published feed summary",
		"summary_ref", snapshot.SummaryRef.String(),
		"activity_id", snapshot.ActivityID.String(),
	)
	return nil
}
