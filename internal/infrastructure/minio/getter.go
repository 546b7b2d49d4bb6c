package minio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"

	"assetpipe/internal/domain"
	"assetpipe/internal/infrastructure/metrics"
)

type Getter struct {
	minioClient *minio.Client
	cfg         *StoreConfig
}

func NewGetter(minioClient *minio.Client, cfg *StoreConfig) *Getter {
	return &Getter{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (g *Getter) Get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.Timeout)*time.Millisecond)
	defer cancel()

	start := time.Now()
	data, err := g.read(ctx, path)
	metrics.RecordStoreOperation("get", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, classify(err, domain.ErrStorageRead))
	}

	return data, nil
}

func (g *Getter) read(ctx context.Context, path string) ([]byte, error) {
	obj, err := g.minioClient.GetObject(ctx, g.cfg.Bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}
