package minio

import "context"

type Uploader interface {
	Put(ctx context.Context, path string, body []byte, contentType string) error
}
