package database

import "context"

type Remover interface {
	RemoveByIDs(ctx context.Context, ids []string) error
}
