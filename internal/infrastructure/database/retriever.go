package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/model"
)

type AssetRetriever struct {
	db *Database
}

func NewAssetRetriever(db *Database) *AssetRetriever {
	return &AssetRetriever{db: db}
}

func (r *AssetRetriever) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	var asset model.Asset
	if err := r.db.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&asset); err != nil {
		return nil, fmt.Errorf("get %s: %w", id, classify(err, domain.ErrStorageRead))
	}

	return &asset, nil
}

// GetByIDs returns the rows that exist for ids. Missing ids are absent from the result.
func (r *AssetRetriever) GetByIDs(ctx context.Context, ids []string) ([]model.Asset, error) {
	if len(ids) == 0 {
		return []model.Asset{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	cursor, err := r.db.collection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, classify(err, domain.ErrStorageRead)
	}
	defer cursor.Close(ctx)

	assets := make([]model.Asset, 0, len(ids))
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, classify(err, domain.ErrStorageRead)
	}

	return assets, nil
}
