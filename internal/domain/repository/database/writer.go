package database

import (
	"context"

	"assetpipe/internal/domain/model"
)

type Writer interface {
	Insert(ctx context.Context, asset *model.Asset) (string, error)
}
