package abstraction

import (
	"context"

	"assetpipe/internal/domain/dto"
)

type Lister interface {
	ListAssets(ctx context.Context, folder, namePrefix string) ([]dto.AssetDescriptor, error)
}
