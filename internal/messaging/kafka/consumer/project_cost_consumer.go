package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-bakery/internal/events"
	"go-bakery/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// VarianceInvalidator drops cached budget figures of a project.
type VarianceInvalidator interface {
	InvalidateProject(ctx context.Context, companyID, projectID string) error
}

// ProjectCostHandler clears the variance cache whenever the construction
// subsystem reports a changed cost source, so the next read reconciles
// against fresh work item and payment totals.
func ProjectCostHandler(budget VarianceInvalidator, logger *zap.Logger) HandlerFunc {
	log := logger.Named("kafka.consumer.project_cost")

	return func(ctx context.Context, msg kafkago.Message) (Outcome, error) {
		var event events.ProjectCostChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return Commit, fmt.Errorf("decode project cost event: %w", err)
		}
		if event.CompanyID == "" || event.ProjectID == "" {
			return Commit, fmt.Errorf("project cost event at offset %d has no company or project", msg.Offset)
		}

		if requestID := header(msg, "request_id"); requestID != "" {
			ctx = contextutil.WithRequestID(ctx, requestID)
		}

		if err := budget.InvalidateProject(ctx, event.CompanyID, event.ProjectID); err != nil {
			return Retry, fmt.Errorf("invalidate project %s: %w", event.ProjectID, err)
		}

		log.Debug("budget variance cache invalidated",
			zap.String("event_type", event.EventType),
			zap.String("company_id", event.CompanyID),
			zap.String("project_id", event.ProjectID),
		)
		return Commit, nil
	}
}

func ConsumeProjectCost(ctx context.Context, reader MessageReader, budget VarianceInvalidator, logger *zap.Logger) {
	Run(ctx, reader, "project_cost", ProjectCostHandler(budget, logger), logger)
}
