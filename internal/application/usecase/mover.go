package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/entity"
	"assetpipe/internal/domain/repository/broker"
	"assetpipe/internal/domain/repository/database"
	"assetpipe/internal/domain/repository/minio"
	"assetpipe/pkg/logger"
)

type Mover struct {
	cfg       Config
	retriever database.Retriever
	updater   database.Updater
	mover     minio.Mover
	notifier  notifier
}

func NewMover(cfg Config, retriever database.Retriever, updater database.Updater, mover minio.Mover,
	publisher broker.Publisher,
) *Mover {
	return &Mover{
		cfg:       cfg.withDefaults(),
		retriever: retriever,
		updater:   updater,
		mover:     mover,
		notifier:  notifier{publisher: publisher},
	}
}

// BulkMove relocates assets into destination keeping their unique file names. The row is
// updated only after the blob has moved, and the blob is moved back if the update fails.
func (m *Mover) BulkMove(ctx context.Context, ids []string, destination string, progress entity.ProgressFunc,
) (entity.BatchReport, error) {
	destination = cleanFolder(destination)
	if destination == "" {
		return entity.BatchReport{Operation: OperationMove}, fmt.Errorf("%w: empty destination folder", domain.ErrValidation)
	}

	ids, err := uniqueIDs(ids)
	if err != nil {
		return entity.BatchReport{Operation: OperationMove}, err
	}

	assets, err := lookup(ctx, m.retriever, ids)
	if err != nil {
		return entity.BatchReport{Operation: OperationMove, Total: len(ids)}, err
	}

	runner := batchRunner{operation: OperationMove, workers: m.cfg.Workers, progress: progress, notifier: m.notifier}
	run := runner.run(ctx, ids, func(ctx context.Context, id string) itemResult {
		asset, ok := assets[id]
		if !ok {
			return failed(errAssetNotFound)
		}

		from := asset.StoragePath
		to := path.Join(destination, path.Base(from))
		if from == to {
			return succeeded()
		}

		orphans, err := newSaga("move").
			then("move blob",
				func(ctx context.Context) error {
					return m.mover.Move(ctx, from, to)
				},
				func(ctx context.Context) error {
					return m.mover.Move(ctx, to, from)
				},
				to,
			).
			then("update asset",
				func(ctx context.Context) error {
					return m.updater.UpdateLocation(ctx, id, to, destination)
				},
				nil, "",
			).
			run(ctx)
		if err != nil {
			r := failed(err)
			r.orphans = orphans
			if errors.Is(err, domain.ErrOrphanedObject) && len(orphans) == 0 {
				r.orphans = []string{to}
			}

			return r
		}

		m.notifier.publish(ctx, entity.Event{
			Type:         entity.EventAssetMoved,
			AssetID:      id,
			StoragePath:  to,
			PreviousPath: from,
			Folder:       destination,
		})

		return succeeded()
	})

	report := run.report(OperationMove, ids)
	runner.done(ctx, report)

	logger.Info("bulk move finished", "batch", report.BatchID, "destination", destination,
		"succeeded", report.Succeeded, "failed", report.Failed)

	return report, run.fatal
}
