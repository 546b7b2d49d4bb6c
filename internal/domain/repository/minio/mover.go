package minio

import "context"

// Mover renames an object. On error the object is still at from and nothing exists at to.
type Mover interface {
	Move(ctx context.Context, from, to string) error
}
