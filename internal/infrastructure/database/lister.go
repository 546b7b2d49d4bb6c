package database

import (
	"context"
	"regexp"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/model"
)

type AssetLister struct {
	db *Database
}

func NewAssetLister(db *Database) *AssetLister {
	return &AssetLister{db: db}
}

// Query returns assets newest first. NamePrefix matches file names case-insensitively.
func (l *AssetLister) Query(ctx context.Context, filter model.AssetFilter) ([]model.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Folder != "" {
		query["folder"] = filter.Folder
	}
	if filter.NamePrefix != "" {
		query["file_name"] = bson.M{
			"$regex":   "^" + regexp.QuoteMeta(filter.NamePrefix),
			"$options": "i",
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := l.db.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, classify(err, domain.ErrStorageRead)
	}
	defer cursor.Close(ctx)

	assets := make([]model.Asset, 0)
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, classify(err, domain.ErrStorageRead)
	}

	return assets, nil
}

func (l *AssetLister) DistinctFolders(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	values, err := l.db.collection().Distinct(ctx, "folder", bson.M{})
	if err != nil {
		return nil, classify(err, domain.ErrStorageRead)
	}

	folders := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			folders = append(folders, s)
		}
	}
	sort.Strings(folders)

	return folders, nil
}
