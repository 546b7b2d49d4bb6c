package database

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/model"
)

const (
	TestUsername = "testuser"
	TestPassword = "testpass"
)

func setupMongo(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:latest",
		ExposedPorts: []string{"27017/tcp"},
		Env: map[string]string{
			"MONGO_INITDB_ROOT_USERNAME": TestUsername,
			"MONGO_INITDB_ROOT_PASSWORD": TestPassword,
		},
		WaitingFor: wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatal("Failed to start MongoDB container:", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal("Failed to get container host:", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatal("Failed to get mapped port:", err)
	}

	return fmt.Sprintf("mongodb://%s:%s@%s", TestUsername, TestPassword, net.JoinHostPort(host, port.Port()))
}

func connect(t *testing.T, dbName string) *Database {
	t.Helper()

	db, err := Connect(Config{
		URI:               setupMongo(t),
		DBName:            dbName,
		ConnectionTimeout: 30000,
		QueryTimeout:      30000,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Stop() })

	return db
}

func newAsset(id, name, folder string, created time.Time) *model.Asset {
	return &model.Asset{
		ID:          id,
		FileName:    name,
		StoragePath: folder + "/" + id + ".png",
		MimeType:    "image/png",
		ByteSize:    128,
		Folder:      folder,
		CreatedAt:   created.UTC().Truncate(time.Millisecond),
	}
}

func TestCatalog(t *testing.T) {
	db := connect(t, "catalog")
	ctx := context.Background()

	writer := NewAssetWriter(db)
	retriever := NewAssetRetriever(db)
	lister := NewAssetLister(db)
	updater := NewAssetUpdater(db)
	remover := NewAssetRemover(db)

	now := time.Now()
	seed := []*model.Asset{
		newAsset("a1", "Cat.png", "uploads", now.Add(-3*time.Minute)),
		newAsset("a2", "catalog.pdf", "docs", now.Add(-2*time.Minute)),
		newAsset("a3", "dog.png", "uploads", now.Add(-1*time.Minute)),
	}
	for _, a := range seed {
		id, err := writer.Insert(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, a.ID, id)
	}

	t.Run("duplicate storage path is a catalog write error", func(t *testing.T) {
		dup := newAsset("a9", "copy.png", "uploads", now)
		dup.StoragePath = seed[0].StoragePath

		_, err := writer.Insert(ctx, dup)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogWrite)
	})

	t.Run("document failing validation is rejected", func(t *testing.T) {
		bad := newAsset("a8", "", "uploads", now)

		_, err := writer.Insert(ctx, bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogWrite)
		assert.Contains(t, err.Error(), "Document failed validation")
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := retriever.GetByID(ctx, "a2")
		require.NoError(t, err)
		assert.Equal(t, *seed[1], *got)

		_, err = retriever.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("get by ids skips missing", func(t *testing.T) {
		got, err := retriever.GetByIDs(ctx, []string{"a1", "missing", "a3"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	tests := []struct {
		name     string
		filter   model.AssetFilter
		expected []string
	}{
		{name: "everything newest first", filter: model.AssetFilter{}, expected: []string{"a3", "a2", "a1"}},
		{name: "by folder", filter: model.AssetFilter{Folder: "uploads"}, expected: []string{"a3", "a1"}},
		{name: "case-insensitive prefix", filter: model.AssetFilter{NamePrefix: "cat"}, expected: []string{"a2", "a1"}},
		{name: "prefix and folder", filter: model.AssetFilter{Folder: "docs", NamePrefix: "CAT"}, expected: []string{"a2"}},
		{name: "regex characters are literal", filter: model.AssetFilter{NamePrefix: "c.t"}, expected: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lister.Query(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	t.Run("distinct folders", func(t *testing.T) {
		folders, err := lister.DistinctFolders(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"docs", "uploads"}, folders)
	})

	t.Run("update location", func(t *testing.T) {
		require.NoError(t, updater.UpdateLocation(ctx, "a3", "archive/a3.png", "archive"))

		got, err := retriever.GetByID(ctx, "a3")
		require.NoError(t, err)
		assert.Equal(t, "archive", got.Folder)
		assert.Equal(t, "archive/a3.png", got.StoragePath)

		err = updater.UpdateLocation(ctx, "missing", "x/y.png", "x")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("remove by ids", func(t *testing.T) {
		require.NoError(t, remover.RemoveByIDs(ctx, []string{"a1", "a2", "missing"}))
		require.NoError(t, remover.RemoveByIDs(ctx, nil))

		got, err := lister.Query(ctx, model.AssetFilter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "a3", got[0].ID)
	})
}

func TestConnectCreatesCollectionOnce(t *testing.T) {
	uri := setupMongo(t)
	cfg := Config{URI: uri, DBName: "reconnect", ConnectionTimeout: 30000, QueryTimeout: 30000}

	first, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, first.Stop())

	second, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, second.Stop())
}
