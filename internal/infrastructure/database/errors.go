package database

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"assetpipe/internal/domain"
)

// classify maps driver errors onto domain sentinels. A nil fallback keeps
// unrecognised errors unchanged.
func classify(err, fallback error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %w", domain.ErrUnreachable, err)
	case fallback != nil:
		return fmt.Errorf("%w: %w", fallback, err)
	default:
		return err
	}
}
