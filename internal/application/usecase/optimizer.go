package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/entity"
	"assetpipe/internal/domain/model"
	"assetpipe/internal/domain/repository/broker"
	"assetpipe/internal/domain/repository/database"
	"assetpipe/internal/domain/repository/minio"
	"assetpipe/internal/domain/repository/transcoder"
	"assetpipe/internal/infrastructure/metrics"
	"assetpipe/pkg/logger"
	"assetpipe/pkg/pathid"
	"assetpipe/pkg/utils"
)

var errAssetNotFound = fmt.Errorf("asset %w", domain.ErrNotFound)

type Optimizer struct {
	cfg        Config
	retriever  database.Retriever
	writer     database.Writer
	dbRemover  database.Remover
	getter     minio.Getter
	uploader   minio.Uploader
	remover    minio.Remover
	transcoder transcoder.Transcoder
	notifier   notifier
}

func NewOptimizer(cfg Config, retriever database.Retriever, writer database.Writer, dbRemover database.Remover,
	getter minio.Getter, uploader minio.Uploader, remover minio.Remover, tc transcoder.Transcoder,
	publisher broker.Publisher,
) *Optimizer {
	return &Optimizer{
		cfg:        cfg.withDefaults(),
		retriever:  retriever,
		writer:     writer,
		dbRemover:  dbRemover,
		getter:     getter,
		uploader:   uploader,
		remover:    remover,
		transcoder: tc,
		notifier:   notifier{publisher: publisher},
	}
}

// BulkOptimize re-encodes every optimizable asset into the target format. A replaced asset gets
// a new id and path; its old row and blob are removed only once the replacement is stored.
func (o *Optimizer) BulkOptimize(ctx context.Context, ids []string, progress entity.ProgressFunc,
) (entity.OptimizeReport, error) {
	ids, err := uniqueIDs(ids)
	if err != nil {
		return entity.OptimizeReport{BatchReport: entity.BatchReport{Operation: OperationOptimize}}, err
	}

	assets, err := lookup(ctx, o.retriever, ids)
	if err != nil {
		return entity.OptimizeReport{BatchReport: entity.BatchReport{Operation: OperationOptimize, Total: len(ids)}}, err
	}

	runner := batchRunner{operation: OperationOptimize, workers: o.cfg.Workers, progress: progress, notifier: o.notifier}
	run := runner.run(ctx, ids, func(ctx context.Context, id string) itemResult {
		asset, ok := assets[id]
		if !ok {
			return failed(errAssetNotFound)
		}

		return o.replace(ctx, &asset)
	})

	tally := entity.SavingsTally{}
	for _, r := range run.results {
		if r.status == itemSucceeded {
			tally.Add(r.original, r.optimized)
		}
	}

	report := entity.OptimizeReport{BatchReport: run.report(OperationOptimize, ids)}
	report.OriginalTotal, report.OptimizedTotal = tally.Totals()
	report.Stats = tally.Outcome()
	runner.done(ctx, report.BatchReport)

	logger.Info("bulk optimize finished", "batch", report.BatchID, "succeeded", report.Succeeded,
		"failed", report.Failed, "skipped", report.Skipped)

	return report, run.fatal
}

func (o *Optimizer) replace(ctx context.Context, old *model.Asset) itemResult {
	mimeType := utils.CleanMimeType(old.MimeType)
	if !utils.IsOptimizable(mimeType) {
		return skipped("not an optimizable image")
	}
	if mimeType == utils.CleanMimeType(o.cfg.TargetMimeType) {
		return skipped("already " + mimeType)
	}

	content, err := o.getter.Get(ctx, old.StoragePath)
	if err != nil {
		return failed(fmt.Errorf("read blob: %w", err))
	}

	out, err := o.transcoder.Transcode(ctx, entity.TranscodeRequest{
		FileName: old.FileName,
		MimeType: mimeType,
		Folder:   old.Folder,
		Quality:  o.cfg.Quality,
		Content:  content,
	})
	if err != nil {
		return failed(fmt.Errorf("transcode: %w", err))
	}
	if len(out.Content) == 0 || len(out.Content) >= len(content) {
		return skipped("no size gain")
	}

	newMime := utils.CleanMimeType(out.MimeType)
	if newMime == "" {
		newMime = utils.CleanMimeType(o.cfg.TargetMimeType)
	}
	ext := utils.GetExtensionFromMimeType(newMime)

	fresh := &model.Asset{
		ID:          uuid.NewString(),
		FileName:    strings.TrimSuffix(old.FileName, path.Ext(old.FileName)) + ext,
		StoragePath: pathid.StoragePath(old.Folder, ext),
		MimeType:    newMime,
		ByteSize:    int64(len(out.Content)),
		Folder:      old.Folder,
		CreatedAt:   time.Now().UTC(),
	}

	orphans, err := newSaga("optimize").
		then("put blob",
			func(ctx context.Context) error {
				return o.uploader.Put(ctx, fresh.StoragePath, out.Content, fresh.MimeType)
			},
			func(ctx context.Context) error {
				return removeOne(ctx, o.remover, fresh.StoragePath)
			},
			fresh.StoragePath,
		).
		then("insert asset",
			func(ctx context.Context) error {
				_, err := o.writer.Insert(ctx, fresh)

				return err
			},
			func(ctx context.Context) error {
				return o.dbRemover.RemoveByIDs(ctx, []string{fresh.ID})
			},
			fresh.ID,
		).
		then("remove old asset",
			func(ctx context.Context) error {
				return o.dbRemover.RemoveByIDs(ctx, []string{old.ID})
			},
			nil, "",
		).
		run(ctx)
	if err != nil {
		r := failed(err)
		r.orphans = orphans

		return r
	}

	res := succeeded()
	res.original, res.optimized = int64(len(content)), fresh.ByteSize
	metrics.RecordSavedBytes(res.original - res.optimized)

	// The replacement is committed; a blob left at the old path only costs space.
	if err := removeOne(context.WithoutCancel(ctx), o.remover, old.StoragePath); err != nil {
		logger.Error("orphaned object", "operation", "optimize", "object", old.StoragePath,
			"err", errors.Join(domain.ErrOrphanedObject, err))
		res.orphans = append(res.orphans, old.StoragePath)
	}

	o.notifier.publish(ctx, entity.Event{
		Type:         entity.EventAssetReplaced,
		AssetID:      fresh.ID,
		ReplacedID:   old.ID,
		StoragePath:  fresh.StoragePath,
		PreviousPath: old.StoragePath,
		Folder:       fresh.Folder,
	})

	return res
}

// lookup fetches the rows for ids in one catalog call.
func lookup(ctx context.Context, retriever database.Retriever, ids []string) (map[string]model.Asset, error) {
	rows, err := retriever.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}

	assets := make(map[string]model.Asset, len(rows))
	for _, a := range rows {
		assets[a.ID] = a
	}

	return assets, nil
}
