package minio

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"

	"assetpipe/internal/domain"
	"assetpipe/internal/infrastructure/metrics"
	"assetpipe/pkg/logger"
)

// Mover renames objects with a server side copy followed by a remove of the source.
type Mover struct {
	minioClient *minio.Client
	cfg         *StoreConfig
}

func NewMover(minioClient *minio.Client, cfg *StoreConfig) *Mover {
	return &Mover{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (m *Mover) Move(ctx context.Context, from, to string) error {
	if from == to {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.cfg.Timeout)*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := m.move(ctx, from, to)
	metrics.RecordStoreOperation("move", err, time.Since(start))

	return err
}

func (m *Mover) move(ctx context.Context, from, to string) error {
	_, err := m.minioClient.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: m.cfg.Bucket, Object: to},
		minio.CopySrcOptions{Bucket: m.cfg.Bucket, Object: from},
	)
	if err != nil {
		return fmt.Errorf("copy %s to %s: %w", from, to, classify(err, domain.ErrStorageWrite))
	}

	if err := m.minioClient.RemoveObject(ctx, m.cfg.Bucket, from, minio.RemoveObjectOptions{}); err != nil {
		// the source is still in place, drop the copy so only one object remains.
		if cleanupErr := m.minioClient.RemoveObject(context.WithoutCancel(ctx), m.cfg.Bucket, to,
			minio.RemoveObjectOptions{}); cleanupErr != nil {
			logger.Error("orphaned object", "path", to, "err", cleanupErr)

			return fmt.Errorf("remove source %s: %w: %w", from, domain.ErrOrphanedObject, err)
		}

		return fmt.Errorf("remove source %s: %w", from, classify(err, domain.ErrStorageWrite))
	}

	return nil
}
