package abstraction

import (
	"context"

	"assetpipe/internal/domain/entity"
)

type Optimizer interface {
	BulkOptimize(ctx context.Context, ids []string, progress entity.ProgressFunc) (entity.OptimizeReport, error)
}
