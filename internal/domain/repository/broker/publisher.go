package broker

import (
	"context"

	"assetpipe/internal/domain/entity"
)

type Publisher interface {
	Publish(ctx context.Context, event entity.Event) error
}
