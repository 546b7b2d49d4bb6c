package abstraction

import (
	"context"

	"assetpipe/internal/domain/entity"
)

// Deleter defines the interface for removing assets from both stores.
type Deleter interface {
	BulkDelete(ctx context.Context, ids []string, progress entity.ProgressFunc) (entity.BatchReport, error)
}
