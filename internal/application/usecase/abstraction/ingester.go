package abstraction

import (
	"context"

	"assetpipe/internal/domain/entity"
)

type Ingester interface {
	Ingest(ctx context.Context, req entity.IngestRequest) (entity.IngestResult, error)
}
