package database

import (
	"context"

	"assetpipe/internal/domain/model"
)

// Lister defines the interface for querying assets from the catalog.
type Lister interface {
	Query(ctx context.Context, filter model.AssetFilter) ([]model.Asset, error)
	DistinctFolders(ctx context.Context) ([]string, error)
}
