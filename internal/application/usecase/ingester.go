package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
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

const (
	pathOptimized = "optimized"
	pathDirect    = "direct"
	pathFailed    = "failed"
)

type Ingester struct {
	cfg        Config
	uploader   minio.Uploader
	remover    minio.Remover
	resolver   minio.Resolver
	writer     database.Writer
	transcoder transcoder.Transcoder
	notifier   notifier
}

func NewIngester(cfg Config, uploader minio.Uploader, remover minio.Remover, resolver minio.Resolver,
	writer database.Writer, tc transcoder.Transcoder, publisher broker.Publisher,
) *Ingester {
	return &Ingester{
		cfg:        cfg.withDefaults(),
		uploader:   uploader,
		remover:    remover,
		resolver:   resolver,
		writer:     writer,
		transcoder: tc,
		notifier:   notifier{publisher: publisher},
	}
}

type sniffedFile struct {
	entity.FileInput
	mimeType string
}

// Ingest stores each file, transcoded when that helps, and reports what landed.
// Files are independent: one failing does not stop the next. A missing transcoder
// credential, an unreachable store or cancellation aborts the rest of the call.
func (i *Ingester) Ingest(ctx context.Context, req entity.IngestRequest) (entity.IngestResult, error) {
	result := entity.IngestResult{
		UploadedURLs: []string{},
		Assets:       []model.Asset{},
	}

	if len(req.Files) == 0 {
		return result, fmt.Errorf("%w: no files", domain.ErrValidation)
	}

	files := make([]sniffedFile, 0, len(req.Files))
	for _, f := range req.Files {
		mimeType := utils.CleanMimeType(mimetype.Detect(f.Content).String())
		if req.ImagesOnly && !utils.IsImage(mimeType) {
			return result, fmt.Errorf("%w: %s is %s, only images are accepted", domain.ErrValidation, f.Name, mimeType)
		}
		files = append(files, sniffedFile{FileInput: f, mimeType: mimeType})
	}

	folder := resolveUploadFolder(req.Folder, req.FilterFolder, i.cfg.DefaultFolder)
	tally := entity.SavingsTally{}

	for idx, f := range files {
		if err := ctx.Err(); err != nil {
			i.failRemaining(&result, files[idx:], "not started")

			return i.finish(result, tally), err
		}

		asset, transcoded, orphans, err := i.ingestOne(ctx, folder, f, req.Optimize)
		result.Orphans = append(result.Orphans, orphans...)
		if err != nil {
			metrics.RecordIngest(pathFailed)
			result.Failed++
			result.Failures = append(result.Failures, entity.ItemFailure{Item: f.Name, Reason: err.Error()})
			logger.Warn("failed to ingest file", "file", f.Name, "folder", folder, "err", err)

			if isFatal(err) {
				i.failRemaining(&result, files[idx+1:], "aborted")

				return i.finish(result, tally), err
			}

			continue
		}

		if transcoded {
			metrics.RecordIngest(pathOptimized)
			metrics.RecordSavedBytes(int64(len(f.Content)) - asset.ByteSize)
			tally.Add(int64(len(f.Content)), asset.ByteSize)
		} else {
			metrics.RecordIngest(pathDirect)
		}

		result.Succeeded++
		result.Assets = append(result.Assets, *asset)
		result.UploadedURLs = append(result.UploadedURLs, i.resolver.PublicURL(asset.StoragePath))

		i.notifier.publish(ctx, entity.Event{
			Type:        entity.EventAssetCreated,
			AssetID:     asset.ID,
			StoragePath: asset.StoragePath,
			Folder:      asset.Folder,
		})
	}

	return i.finish(result, tally), nil
}

func (i *Ingester) finish(result entity.IngestResult, tally entity.SavingsTally) entity.IngestResult {
	result.Stats = tally.Outcome()

	return result
}

func (i *Ingester) failRemaining(result *entity.IngestResult, files []sniffedFile, reason string) {
	for _, f := range files {
		result.Failed++
		result.Failures = append(result.Failures, entity.ItemFailure{Item: f.Name, Reason: reason})
	}
}

func (i *Ingester) ingestOne(ctx context.Context, folder string, f sniffedFile, optimize bool,
) (*model.Asset, bool, []string, error) {
	body, mimeType := f.Content, f.mimeType
	ext := utils.ExtensionFor(f.Name, f.mimeType)
	transcoded := false

	if optimize && utils.IsOptimizable(f.mimeType) {
		out, ok, err := i.optimize(ctx, folder, f)
		if err != nil {
			return nil, false, nil, err
		}
		if ok {
			body, mimeType, transcoded = out.Content, out.MimeType, true
			ext = utils.GetExtensionFromMimeType(out.MimeType)
		}
	}

	asset := &model.Asset{
		ID:          uuid.NewString(),
		FileName:    f.Name,
		StoragePath: pathid.StoragePath(folder, ext),
		MimeType:    mimeType,
		ByteSize:    int64(len(body)),
		Folder:      folder,
		CreatedAt:   time.Now().UTC(),
	}

	orphans, err := newSaga("ingest").
		then("put blob",
			func(ctx context.Context) error {
				return i.uploader.Put(ctx, asset.StoragePath, body, asset.MimeType)
			},
			func(ctx context.Context) error {
				return removeOne(ctx, i.remover, asset.StoragePath)
			},
			asset.StoragePath,
		).
		then("insert asset",
			func(ctx context.Context) error {
				_, err := i.writer.Insert(ctx, asset)

				return err
			},
			nil, "",
		).
		run(ctx)
	if err != nil {
		return nil, false, orphans, err
	}

	return asset, transcoded, nil, nil
}

// optimize asks the transcoder for a smaller encoding. ok is false when the original
// should be stored as is; err is set only for failures that must abort the call.
func (i *Ingester) optimize(ctx context.Context, folder string, f sniffedFile) (entity.TranscodeResult, bool, error) {
	out, err := i.transcoder.Transcode(ctx, entity.TranscodeRequest{
		FileName: f.Name,
		MimeType: f.mimeType,
		Folder:   folder,
		Quality:  i.cfg.Quality,
		Content:  f.Content,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredential) {
			return entity.TranscodeResult{}, false, err
		}
		logger.Warn("transcoding failed, storing original", "file", f.Name, "err", err)

		return entity.TranscodeResult{}, false, nil
	}

	if len(out.Content) == 0 || len(out.Content) >= len(f.Content) {
		logger.Debug("transcoding brought no gain, storing original", "file", f.Name,
			"original", len(f.Content), "optimized", len(out.Content))

		return entity.TranscodeResult{}, false, nil
	}

	out.MimeType = utils.CleanMimeType(out.MimeType)
	if out.MimeType == "" {
		out.MimeType = utils.CleanMimeType(mimetype.Detect(out.Content).String())
	}

	return out, true, nil
}
