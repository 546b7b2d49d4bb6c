package database

import "context"

type Updater interface {
	UpdateLocation(ctx context.Context, id, storagePath, folder string) error
}
