package minio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"

	"assetpipe/internal/domain"
	"assetpipe/internal/infrastructure/metrics"
)

type Uploader struct {
	minioClient *minio.Client
	cfg         *StoreConfig
}

func NewUploader(minioClient *minio.Client, cfg *StoreConfig) *Uploader {
	return &Uploader{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (u *Uploader) Put(ctx context.Context, path string, body []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(u.cfg.Timeout)*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := u.minioClient.PutObject(ctx, u.cfg.Bucket, path, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{
			ContentType: contentType,
		})
	metrics.RecordStoreOperation("put", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("put %s: %w", path, classify(err, domain.ErrStorageWrite))
	}

	return nil
}
