package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"assetpipe/internal/domain"
	"assetpipe/pkg/logger"
)

type AssetRemover struct {
	db *Database
}

func NewAssetRemover(db *Database) *AssetRemover {
	return &AssetRemover{db: db}
}

func (r *AssetRemover) RemoveByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	res, err := r.db.collection().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		logger.Error("failed to remove assets", "count", len(ids), "err", err)

		return classify(err, domain.ErrCatalogWrite)
	}

	if int(res.DeletedCount) != len(ids) {
		logger.Warn("some assets were already gone", "requested", len(ids), "deleted", res.DeletedCount)
	}

	return nil
}
