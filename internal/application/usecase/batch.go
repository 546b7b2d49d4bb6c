package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/entity"
	"assetpipe/internal/infrastructure/metrics"
	"assetpipe/pkg/pathid"
)

const (
	OperationOptimize = "optimize"
	OperationMove     = "move"
	OperationDelete   = "delete"
)

type itemStatus int

const (
	itemSucceeded itemStatus = iota
	itemFailed
	itemSkipped
)

func (s itemStatus) String() string {
	switch s {
	case itemSucceeded:
		return "succeeded"
	case itemFailed:
		return "failed"
	default:
		return "skipped"
	}
}

type itemResult struct {
	status  itemStatus
	reason  string
	orphans []string
	// fatal aborts the items that have not started yet.
	fatal error

	original  int64
	optimized int64
}

func succeeded() itemResult { return itemResult{status: itemSucceeded} }

func skipped(reason string) itemResult { return itemResult{status: itemSkipped, reason: reason} }

func failed(err error) itemResult {
	r := itemResult{status: itemFailed, reason: err.Error()}
	if isFatal(err) {
		r.fatal = err
	}

	return r
}

// isFatal reports errors that make retrying the next item pointless.
func isFatal(err error) bool {
	return errors.Is(err, domain.ErrMissingCredential) || errors.Is(err, domain.ErrUnreachable)
}

// uniqueIDs drops blanks and duplicates, keeping first-seen order.
func uniqueIDs(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty selection", domain.ErrValidation)
	}

	return out, nil
}

func percentOf(processed, total int) int {
	if total == 0 {
		return 100
	}

	return int(math.Round(100 * float64(processed) / float64(total)))
}

// batchRunner processes ids on a bounded pool. One item failing never stops the others;
// only a fatal error or cancellation keeps pending items from starting.
type batchRunner struct {
	operation string
	workers   int
	progress  entity.ProgressFunc
	notifier  notifier
}

type batchRun struct {
	batchID string
	results []itemResult
	fatal   error
}

func (b batchRunner) run(ctx context.Context, ids []string, fn func(ctx context.Context, id string) itemResult) batchRun {
	run := batchRun{
		batchID: pathid.New(),
		results: make([]itemResult, len(ids)),
	}

	var (
		mu        sync.Mutex
		processed int
		aborted   atomic.Bool
		fatalOnce sync.Once
	)

	// Progress is reported from a shared counter so percent only grows, whatever the completion order.
	tick := func(r itemResult) {
		metrics.RecordBatchItem(b.operation, r.status.String())

		mu.Lock()
		defer mu.Unlock()

		processed++
		percent := percentOf(processed, len(ids))
		if b.progress != nil {
			b.progress(processed, len(ids), percent)
		}
		b.notifier.publish(ctx, entity.Event{
			Type:      entity.EventBatchProgress,
			BatchID:   run.batchID,
			Operation: b.operation,
			Percent:   percent,
		})
	}

	stopped := func() bool {
		return aborted.Load() || ctx.Err() != nil
	}

	g := errgroup.Group{}
	g.SetLimit(b.workers)

	for i, id := range ids {
		if stopped() {
			run.results[i] = skipped("not started")
			tick(run.results[i])

			continue
		}

		g.Go(func() error {
			if stopped() {
				run.results[i] = skipped("not started")
				tick(run.results[i])

				return nil
			}

			r := fn(ctx, id)
			if r.fatal != nil {
				aborted.Store(true)
				fatalOnce.Do(func() { run.fatal = r.fatal })
			}
			run.results[i] = r
			tick(r)

			return nil
		})
	}

	_ = g.Wait()

	if run.fatal == nil && ctx.Err() != nil {
		run.fatal = ctx.Err()
	}

	return run
}

// report folds per-item results in input order.
func (r batchRun) report(operation string, ids []string) entity.BatchReport {
	rep := entity.BatchReport{
		BatchID:   r.batchID,
		Operation: operation,
		Total:     len(ids),
	}

	for i, res := range r.results {
		switch res.status {
		case itemSucceeded:
			rep.Succeeded++
		case itemFailed:
			rep.Failed++
			rep.Failures = append(rep.Failures, entity.ItemFailure{Item: ids[i], Reason: res.reason})
		case itemSkipped:
			rep.Skipped++
		}
		rep.Orphans = append(rep.Orphans, res.orphans...)
	}

	return rep
}

func (b batchRunner) done(ctx context.Context, rep entity.BatchReport) {
	b.notifier.publish(ctx, entity.Event{
		Type:      entity.EventBatchDone,
		BatchID:   rep.BatchID,
		Operation: rep.Operation,
		Percent:   100,
		Succeeded: rep.Succeeded,
		Failed:    rep.Failed,
	})
}
