package abstraction

import (
	"context"

	"assetpipe/internal/domain/entity"
)

type Mover interface {
	BulkMove(ctx context.Context, ids []string, destination string, progress entity.ProgressFunc) (entity.BatchReport, error)
}
