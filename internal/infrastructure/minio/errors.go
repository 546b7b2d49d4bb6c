package minio

import (
	"errors"
	"fmt"
	"net"

	"github.com/minio/minio-go/v7"

	"assetpipe/internal/domain"
)

// classify tags err with a domain sentinel. Connection level failures become
// domain.ErrUnreachable, a missing key becomes domain.ErrNotFound and everything else
// is tagged with fallback (left untouched when fallback is nil).
func classify(err, fallback error) error {
	if err == nil {
		return nil
	}

	if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && !netErr.Timeout() {
		return fmt.Errorf("%w: %w", domain.ErrUnreachable, err)
	}

	if fallback == nil {
		return err
	}

	return fmt.Errorf("%w: %w", fallback, err)
}
