package minio

import "context"

// Remover deletes objects in one multi-key call. The map holds the paths that could not be
// removed; the error is set only when the call as a whole failed.
type Remover interface {
	Remove(ctx context.Context, paths []string) (map[string]error, error)
}
