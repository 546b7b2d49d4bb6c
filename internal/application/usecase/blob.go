package usecase

import (
	"context"

	"assetpipe/internal/domain/repository/minio"
)

// removeOne deletes a single blob and folds the per-path failure into the returned error.
func removeOne(ctx context.Context, remover minio.Remover, path string) error {
	failed, err := remover.Remove(ctx, []string{path})
	if err != nil {
		return err
	}

	return failed[path]
}
