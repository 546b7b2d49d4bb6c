package minio

import "context"

type Getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
}
