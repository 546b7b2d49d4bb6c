package database

import (
	"context"

	"assetpipe/internal/domain/model"
)

type Retriever interface {
	GetByID(ctx context.Context, id string) (*model.Asset, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Asset, error)
}
