package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"assetpipe/internal/domain/entity"
	"assetpipe/internal/domain/model"
)

type MockUploader struct{ mock.Mock }

func (m *MockUploader) Put(ctx context.Context, path string, body []byte, contentType string) error {
	return m.Called(ctx, path, body, contentType).Error(0)
}

type MockGetter struct{ mock.Mock }

func (m *MockGetter) Get(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	b, _ := args.Get(0).([]byte)

	return b, args.Error(1)
}

type MockBlobRemover struct{ mock.Mock }

func (m *MockBlobRemover) Remove(ctx context.Context, paths []string) (map[string]error, error) {
	args := m.Called(ctx, paths)
	failed, _ := args.Get(0).(map[string]error)

	return failed, args.Error(1)
}

type MockBlobMover struct{ mock.Mock }

func (m *MockBlobMover) Move(ctx context.Context, from, to string) error {
	return m.Called(ctx, from, to).Error(0)
}

type StubResolver struct{}

func (StubResolver) PublicURL(path string) string { return "https://cdn.test/media/" + path }

type MockWriter struct{ mock.Mock }

func (m *MockWriter) Insert(ctx context.Context, asset *model.Asset) (string, error) {
	args := m.Called(ctx, asset)

	return args.String(0), args.Error(1)
}

type MockRetriever struct{ mock.Mock }

func (m *MockRetriever) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Asset)

	return a, args.Error(1)
}

func (m *MockRetriever) GetByIDs(ctx context.Context, ids []string) ([]model.Asset, error) {
	args := m.Called(ctx, ids)
	a, _ := args.Get(0).([]model.Asset)

	return a, args.Error(1)
}

type MockLister struct{ mock.Mock }

func (m *MockLister) Query(ctx context.Context, filter model.AssetFilter) ([]model.Asset, error) {
	args := m.Called(ctx, filter)
	a, _ := args.Get(0).([]model.Asset)

	return a, args.Error(1)
}

func (m *MockLister) DistinctFolders(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).([]string)

	return f, args.Error(1)
}

type MockUpdater struct{ mock.Mock }

func (m *MockUpdater) UpdateLocation(ctx context.Context, id, storagePath, folder string) error {
	return m.Called(ctx, id, storagePath, folder).Error(0)
}

type MockRowRemover struct{ mock.Mock }

func (m *MockRowRemover) RemoveByIDs(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

type MockTranscoder struct{ mock.Mock }

func (m *MockTranscoder) Transcode(ctx context.Context, req entity.TranscodeRequest) (entity.TranscodeResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(entity.TranscodeResult)

	return r, args.Error(1)
}

// RecordingPublisher keeps every event it is handed.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []entity.Event
	err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, e entity.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, e)

	return p.err
}

func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}

	return out
}

// progressLog records progress callbacks.
type progressLog struct {
	mu       sync.Mutex
	percents []int
}

func (p *progressLog) record(_, _, percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.percents = append(p.percents, percent)
}

// pngBytes is a PNG signature followed by padding, enough for MIME sniffing.
func pngBytes(size int) []byte {
	b := make([]byte, size)
	copy(b, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))

	return b
}
