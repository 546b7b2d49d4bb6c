package minio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"

	"assetpipe/internal/domain"
	"assetpipe/internal/infrastructure/metrics"
	"assetpipe/pkg/logger"
)

type Remover struct {
	minioClient *minio.Client
	cfg         *StoreConfig
}

func NewRemover(minioClient *minio.Client, cfg *StoreConfig) *Remover {
	return &Remover{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (r *Remover) Remove(ctx context.Context, paths []string) (map[string]error, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Timeout)*time.Millisecond)
	defer cancel()

	objects := make(chan minio.ObjectInfo, len(paths))
	for _, p := range paths {
		objects <- minio.ObjectInfo{Key: p}
	}
	close(objects)

	start := time.Now()
	failed := make(map[string]error)
	unreachable := 0
	for rErr := range r.minioClient.RemoveObjects(ctx, r.cfg.Bucket, objects, minio.RemoveObjectsOptions{}) {
		err := fmt.Errorf("remove %s: %w", rErr.ObjectName, classify(rErr.Err, domain.ErrStorageWrite))
		if errors.Is(err, domain.ErrUnreachable) {
			unreachable++
		}
		failed[rErr.ObjectName] = err
		logger.Warn("failed to remove object", "path", rErr.ObjectName, "err", rErr.Err)
	}

	var callErr error
	if len(failed) > 0 {
		callErr = errors.New("partial failure")
	}
	metrics.RecordStoreOperation("remove", callErr, time.Since(start))

	if unreachable > 0 && unreachable == len(paths) {
		return failed, fmt.Errorf("remove %d objects: %w", len(paths), domain.ErrUnreachable)
	}

	return failed, nil
}
