package database

import (
	"context"
	"fmt"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/model"
)

type AssetWriter struct {
	db *Database
}

func NewAssetWriter(db *Database) *AssetWriter {
	return &AssetWriter{db: db}
}

func (w *AssetWriter) Insert(ctx context.Context, asset *model.Asset) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	if _, err := w.db.collection().InsertOne(ctx, asset); err != nil {
		return "", fmt.Errorf("insert %s: %w", asset.ID, classify(err, domain.ErrCatalogWrite))
	}

	return asset.ID, nil
}
