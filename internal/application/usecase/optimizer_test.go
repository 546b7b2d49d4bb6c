package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/entity"
	"assetpipe/internal/domain/model"
)

type optimizeFixture struct {
	retriever  *MockRetriever
	writer     *MockWriter
	dbRemover  *MockRowRemover
	getter     *MockGetter
	uploader   *MockUploader
	remover    *MockBlobRemover
	transcoder *MockTranscoder
	publisher  *RecordingPublisher
	optimizer  *Optimizer
}

func newOptimizeFixture(workers int) *optimizeFixture {
	f := &optimizeFixture{
		retriever:  &MockRetriever{},
		writer:     &MockWriter{},
		dbRemover:  &MockRowRemover{},
		getter:     &MockGetter{},
		uploader:   &MockUploader{},
		remover:    &MockBlobRemover{},
		transcoder: &MockTranscoder{},
		publisher:  &RecordingPublisher{},
	}
	f.optimizer = NewOptimizer(Config{Workers: workers, Quality: 75}, f.retriever, f.writer, f.dbRemover,
		f.getter, f.uploader, f.remover, f.transcoder, f.publisher)

	return f
}

func pngAsset(id string) model.Asset {
	return model.Asset{
		ID:          id,
		FileName:    id + ".png",
		StoragePath: "products/" + id + ".png",
		MimeType:    "image/png",
		ByteSize:    1000,
		Folder:      "products",
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestBulkOptimizeIsolatesFailingItem(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 3} {
		t.Run(fmt.Sprintf("%d workers", workers), func(t *testing.T) {
			t.Parallel()

			f := newOptimizeFixture(workers)
			idList := []string{"a1", "a2", "a3", "a4", "a5"}
			assets := make([]model.Asset, 0, len(idList))
			for _, id := range idList {
				assets = append(assets, pngAsset(id))
			}

			f.retriever.On("GetByIDs", mock.Anything, idList).Return(assets, nil)
			f.getter.On("Get", mock.Anything, mock.Anything).Return(pngBytes(1000), nil)
			f.transcoder.On("Transcode", mock.Anything, mock.MatchedBy(func(r entity.TranscodeRequest) bool {
				return r.FileName == "a3.png"
			})).Return(entity.TranscodeResult{}, domain.ErrTransientRemote)
			f.transcoder.On("Transcode", mock.Anything, mock.MatchedBy(func(r entity.TranscodeRequest) bool {
				return r.FileName != "a3.png" && r.Quality == 75
			})).Return(entity.TranscodeResult{Content: webpBytes(250), MimeType: "image/webp"}, nil)

			var (
				mu      sync.Mutex
				newRows []*model.Asset
			)
			f.uploader.On("Put", mock.Anything, mock.Anything, mock.Anything, "image/webp").Return(nil)
			f.writer.On("Insert", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					mu.Lock()
					defer mu.Unlock()
					newRows = append(newRows, args.Get(1).(*model.Asset))
				}).
				Return("id", nil)
			f.dbRemover.On("RemoveByIDs", mock.Anything, mock.Anything).Return(nil)
			f.remover.On("Remove", mock.Anything, mock.Anything).Return(map[string]error{}, nil)

			progress := &progressLog{}
			report, err := f.optimizer.BulkOptimize(context.Background(), idList, progress.record)
			require.NoError(t, err)

			assert.Equal(t, 5, report.Total)
			assert.Equal(t, 4, report.Succeeded)
			assert.Equal(t, 1, report.Failed)
			assert.Equal(t, 0, report.Skipped)
			require.Len(t, report.Failures, 1)
			assert.Equal(t, "a3", report.Failures[0].Item)
			assert.Equal(t, int64(4000), report.OriginalTotal)
			assert.Equal(t, int64(1000), report.OptimizedTotal)
			require.NotNil(t, report.Stats)
			assert.Equal(t, 75, report.Stats.SavingsPercent)

			// a3 is left exactly as it was.
			f.dbRemover.AssertNotCalled(t, "RemoveByIDs", mock.Anything, []string{"a3"})
			f.remover.AssertNotCalled(t, "Remove", mock.Anything, []string{"products/a3.png"})
			for _, id := range []string{"a1", "a2", "a4", "a5"} {
				f.dbRemover.AssertCalled(t, "RemoveByIDs", mock.Anything, []string{id})
				f.remover.AssertCalled(t, "Remove", mock.Anything, []string{"products/" + id + ".png"})
			}

			require.Len(t, newRows, 4)
			for _, row := range newRows {
				assert.Equal(t, "products", row.Folder)
				assert.True(t, strings.HasPrefix(row.StoragePath, "products/"))
				assert.True(t, strings.HasSuffix(row.StoragePath, ".webp"))
				assert.True(t, strings.HasSuffix(row.FileName, ".webp"))
				assert.Equal(t, int64(250), row.ByteSize)
			}

			require.Len(t, progress.percents, 5)
			assert.IsNonDecreasing(t, progress.percents)
			assert.Equal(t, 100, progress.percents[4])
		})
	}
}

func TestBulkOptimizeSkipsAndFails(t *testing.T) {
	t.Parallel()

	f := newOptimizeFixture(1)

	webp := pngAsset("w1")
	webp.MimeType = "image/webp"
	pdf := pngAsset("d1")
	pdf.MimeType = "application/pdf"
	svg := pngAsset("s1")
	svg.MimeType = "image/svg+xml"

	f.retriever.On("GetByIDs", mock.Anything, mock.Anything).Return([]model.Asset{webp, pdf, svg}, nil)

	report, err := f.optimizer.BulkOptimize(context.Background(), []string{"w1", "d1", "s1", "ghost"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "ghost", report.Failures[0].Item)
	assert.Nil(t, report.Stats)
	f.getter.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestBulkOptimizeRollsBackWhenOldRowStays(t *testing.T) {
	t.Parallel()

	f := newOptimizeFixture(1)
	old := pngAsset("a1")

	f.retriever.On("GetByIDs", mock.Anything, mock.Anything).Return([]model.Asset{old}, nil)
	f.getter.On("Get", mock.Anything, old.StoragePath).Return(pngBytes(1000), nil)
	f.transcoder.On("Transcode", mock.Anything, mock.Anything).
		Return(entity.TranscodeResult{Content: webpBytes(100), MimeType: "image/webp"}, nil)

	var newPath, newID string
	f.uploader.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { newPath = args.String(1) }).
		Return(nil)
	f.writer.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { newID = args.Get(1).(*model.Asset).ID }).
		Return("id", nil)
	f.dbRemover.On("RemoveByIDs", mock.Anything, []string{"a1"}).Return(domain.ErrCatalogWrite)
	f.dbRemover.On("RemoveByIDs", mock.Anything, mock.Anything).Return(nil)
	f.remover.On("Remove", mock.Anything, mock.Anything).Return(map[string]error{}, nil)

	report, err := f.optimizer.BulkOptimize(context.Background(), []string{"a1"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, report.Orphans)
	f.dbRemover.AssertCalled(t, "RemoveByIDs", mock.Anything, []string{newID})
	f.remover.AssertCalled(t, "Remove", mock.Anything, []string{newPath})
	f.remover.AssertNotCalled(t, "Remove", mock.Anything, []string{old.StoragePath})
}

func TestBulkOptimizeReportsOldBlobOrphan(t *testing.T) {
	t.Parallel()

	f := newOptimizeFixture(1)
	old := pngAsset("a1")

	f.retriever.On("GetByIDs", mock.Anything, mock.Anything).Return([]model.Asset{old}, nil)
	f.getter.On("Get", mock.Anything, old.StoragePath).Return(pngBytes(1000), nil)
	f.transcoder.On("Transcode", mock.Anything, mock.Anything).
		Return(entity.TranscodeResult{Content: webpBytes(100), MimeType: "image/webp"}, nil)
	f.uploader.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.writer.On("Insert", mock.Anything, mock.Anything).Return("id", nil)
	f.dbRemover.On("RemoveByIDs", mock.Anything, mock.Anything).Return(nil)
	f.remover.On("Remove", mock.Anything, []string{old.StoragePath}).
		Return(map[string]error{old.StoragePath: domain.ErrStorageWrite}, nil)

	report, err := f.optimizer.BulkOptimize(context.Background(), []string{"a1"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, []string{old.StoragePath}, report.Orphans)
	assert.Contains(t, f.publisher.Types(), entity.EventAssetReplaced)
}

func TestBulkOptimizeAbortsWithoutCredential(t *testing.T) {
	t.Parallel()

	f := newOptimizeFixture(1)
	f.retriever.On("GetByIDs", mock.Anything, mock.Anything).
		Return([]model.Asset{pngAsset("a1"), pngAsset("a2"), pngAsset("a3")}, nil)
	f.getter.On("Get", mock.Anything, mock.Anything).Return(pngBytes(1000), nil)
	f.transcoder.On("Transcode", mock.Anything, mock.Anything).Return(entity.TranscodeResult{}, domain.ErrMissingCredential)

	report, err := f.optimizer.BulkOptimize(context.Background(), []string{"a1", "a2", "a3"}, nil)

	require.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 2, report.Skipped)
	f.transcoder.AssertNumberOfCalls(t, "Transcode", 1)
}

func TestBulkOptimizeEmptySelection(t *testing.T) {
	t.Parallel()

	f := newOptimizeFixture(1)
	_, err := f.optimizer.BulkOptimize(context.Background(), nil, nil)

	require.ErrorIs(t, err, domain.ErrValidation)
	f.retriever.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}
