package usecase

import (
	"context"
	"fmt"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/entity"
	"assetpipe/internal/domain/repository/broker"
	"assetpipe/internal/domain/repository/database"
	"assetpipe/internal/domain/repository/minio"
	"assetpipe/internal/infrastructure/metrics"
	"assetpipe/pkg/logger"
	"assetpipe/pkg/pathid"
)

type Deleter struct {
	retriever    database.Retriever
	dbRemover    database.Remover
	minioRemover minio.Remover
	notifier     notifier
}

func NewDeleter(retriever database.Retriever, dbRemover database.Remover, minioRemover minio.Remover,
	publisher broker.Publisher,
) *Deleter {
	return &Deleter{
		retriever:    retriever,
		dbRemover:    dbRemover,
		minioRemover: minioRemover,
		notifier:     notifier{publisher: publisher},
	}
}

// BulkDelete removes blobs in one multi-key call, then deletes the rows of exactly those
// assets whose blob is gone. Assets whose blob could not be removed keep their row.
func (d *Deleter) BulkDelete(ctx context.Context, ids []string, progress entity.ProgressFunc,
) (entity.BatchReport, error) {
	ids, err := uniqueIDs(ids)
	if err != nil {
		return entity.BatchReport{Operation: OperationDelete}, err
	}

	report := entity.BatchReport{
		BatchID:   pathid.New(),
		Operation: OperationDelete,
		Total:     len(ids),
	}

	assets, err := lookup(ctx, d.retriever, ids)
	if err != nil {
		return report, err
	}

	status := make(map[string]entity.ItemFailure, len(ids))
	paths := make([]string, 0, len(assets))
	for _, id := range ids {
		if a, ok := assets[id]; ok {
			paths = append(paths, a.StoragePath)
		} else {
			status[id] = entity.ItemFailure{Item: id, Reason: errAssetNotFound.Error()}
		}
	}

	blobFailures := map[string]error{}
	if len(paths) > 0 {
		blobFailures, err = d.minioRemover.Remove(ctx, paths)
		if err != nil {
			// Nothing was acknowledged; every found asset is left as it was.
			report.Failed = len(status)
			report.Skipped = len(paths)
			report.Failures = orderedFailures(ids, status)

			return report, fmt.Errorf("remove blobs: %w", err)
		}
	}

	removed := make([]string, 0, len(paths))
	for _, id := range ids {
		a, ok := assets[id]
		if !ok {
			continue
		}
		if blobErr, bad := blobFailures[a.StoragePath]; bad {
			status[id] = entity.ItemFailure{Item: id, Reason: fmt.Sprintf("remove blob: %v", blobErr)}

			continue
		}
		removed = append(removed, id)
	}

	var fatal error
	if len(removed) > 0 {
		if err := d.dbRemover.RemoveByIDs(ctx, removed); err != nil {
			for _, id := range removed {
				logger.Error("orphaned object", "operation", OperationDelete, "object", id,
					"path", assets[id].StoragePath, "err", err)
				status[id] = entity.ItemFailure{
					Item:   id,
					Reason: fmt.Sprintf("%v: remove asset: %v", domain.ErrOrphanedObject, err),
				}
				report.Orphans = append(report.Orphans, id)
			}
			if isFatal(err) {
				fatal = fmt.Errorf("remove assets: %w", err)
			}
			removed = nil
		}
	}

	for _, id := range removed {
		d.notifier.publish(ctx, entity.Event{
			Type:        entity.EventAssetDeleted,
			AssetID:     id,
			StoragePath: assets[id].StoragePath,
			Folder:      assets[id].Folder,
		})
		metrics.RecordBatchItem(OperationDelete, itemSucceeded.String())
	}
	for range status {
		metrics.RecordBatchItem(OperationDelete, itemFailed.String())
	}

	report.Succeeded = len(removed)
	report.Failed = len(status)
	report.Failures = orderedFailures(ids, status)

	if progress != nil {
		progress(len(ids), len(ids), 100)
	}
	d.notifier.publish(ctx, entity.Event{
		Type:      entity.EventBatchDone,
		BatchID:   report.BatchID,
		Operation: OperationDelete,
		Percent:   100,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
	})

	logger.Info("bulk delete finished", "batch", report.BatchID, "succeeded", report.Succeeded,
		"failed", report.Failed)

	return report, fatal
}

func orderedFailures(ids []string, status map[string]entity.ItemFailure) []entity.ItemFailure {
	out := make([]entity.ItemFailure, 0, len(status))
	for _, id := range ids {
		if f, ok := status[id]; ok {
			out = append(out, f)
		}
	}

	return out
}
