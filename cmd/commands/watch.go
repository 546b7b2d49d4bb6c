package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"assetpipe/internal/infrastructure/broker"
	"assetpipe/pkg/logger"
)

// HandleWatch tails the change feed through the consumer group until interrupted.
func HandleWatch(args []string) {
	cfg := loadConfig(args)

	client, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		ExitOnError(err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := "watch-" + uuid.NewString()
	messages, err := broker.NewReceiver(client).Messages(ctx, consumer)
	if err != nil {
		ExitOnError(err)
	}

	logger.Info("watching change feed", "stream", cfg.BrokerConfig.StreamName, "consumer", consumer)

	for msg := range messages {
		event, err := msg.Event()
		if err != nil {
			logger.Warn("undecodable event", "id", msg.ID(), "error", err)
		} else {
			logger.Info("event", "id", msg.ID(), "type", event.Type, "asset_id", event.AssetID,
				"path", event.StoragePath, "batch_id", event.BatchID, "percent", event.Percent)
		}

		if err := msg.Ack(); err != nil {
			logger.Error("ack failed", "id", msg.ID(), "error", err)
		}
	}
}
