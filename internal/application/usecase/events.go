package usecase

import (
	"context"
	"time"

	"assetpipe/internal/domain/entity"
	"assetpipe/internal/domain/repository/broker"
	"assetpipe/pkg/logger"
)

// notifier publishes to the change feed. Failures are logged and never undo a committed write.
type notifier struct {
	publisher broker.Publisher
}

func (n notifier) publish(ctx context.Context, e entity.Event) {
	if n.publisher == nil {
		return
	}

	e.At = time.Now().UTC()
	if err := n.publisher.Publish(context.WithoutCancel(ctx), e); err != nil {
		logger.Warn("failed to publish event", "type", e.Type, "asset", e.AssetID, "batch", e.BatchID, "err", err)
	}
}
