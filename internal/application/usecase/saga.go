package usecase

import (
	"context"
	"errors"
	"fmt"

	"assetpipe/internal/domain"
	"assetpipe/pkg/logger"
)

type sagaStep struct {
	name       string
	forward    func(ctx context.Context) error
	compensate func(ctx context.Context) error
	// orphan names what is left behind when compensate fails.
	orphan string
}

// saga runs two-store writes. When a forward step fails, the compensations of the steps
// that already committed run in reverse order.
type saga struct {
	operation string
	steps     []sagaStep
}

func newSaga(operation string) *saga {
	return &saga{operation: operation}
}

func (s *saga) then(name string, forward, compensate func(ctx context.Context) error, orphan string) *saga {
	s.steps = append(s.steps, sagaStep{name: name, forward: forward, compensate: compensate, orphan: orphan})

	return s
}

// run returns the forward error joined with any compensation failure, and the orphans those
// failures left behind.
func (s *saga) run(ctx context.Context) ([]string, error) {
	for i, step := range s.steps {
		err := step.forward(ctx)
		if err == nil {
			continue
		}

		err = fmt.Errorf("%s: %w", step.name, err)
		orphans, compErr := s.rollback(ctx, i)

		return orphans, errors.Join(err, compErr)
	}

	return nil, nil
}

func (s *saga) rollback(ctx context.Context, failed int) ([]string, error) {
	ctx = context.WithoutCancel(ctx)

	var (
		orphans []string
		errs    []error
	)
	for i := failed - 1; i >= 0; i-- {
		step := s.steps[i]
		if step.compensate == nil {
			continue
		}

		if err := step.compensate(ctx); err != nil {
			logger.Error("orphaned object", "operation", s.operation, "step", step.name,
				"object", step.orphan, "err", err)
			orphans = append(orphans, step.orphan)
			errs = append(errs, fmt.Errorf("%w: %s: %w", domain.ErrOrphanedObject, step.orphan, err))
		}
	}

	return orphans, errors.Join(errs...)
}
