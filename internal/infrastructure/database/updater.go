package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"assetpipe/internal/domain"
)

type AssetUpdater struct {
	db *Database
}

func NewAssetUpdater(db *Database) *AssetUpdater {
	return &AssetUpdater{db: db}
}

func (u *AssetUpdater) UpdateLocation(ctx context.Context, id, storagePath, folder string) error {
	ctx, cancel := context.WithTimeout(ctx, u.db.QueryTimeout)
	defer cancel()

	res, err := u.db.collection().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"storage_path": storagePath, "folder": folder},
	})
	if err != nil {
		return fmt.Errorf("update %s: %w", id, classify(err, domain.ErrCatalogWrite))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
