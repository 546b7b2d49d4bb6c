package commands

import (
	"context"
	"time"

	"assetpipe/config"
	"assetpipe/internal/application/usecase"
	"assetpipe/internal/infrastructure/broker"
	"assetpipe/internal/infrastructure/database"
	"assetpipe/internal/infrastructure/minio"
	"assetpipe/internal/infrastructure/transcoder"
	"assetpipe/pkg/logger"
)

type services struct {
	db     *database.Database
	broker *broker.Client

	ingester  *usecase.Ingester
	optimizer *usecase.Optimizer
	mover     *usecase.Mover
	deleter   *usecase.Deleter
	lister    *usecase.Lister
	folders   *usecase.Folders
}

func wire(cfg *config.Config) (*services, error) {
	brokerClient, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		return nil, err
	}
	publisher := broker.NewPublisher(brokerClient, cfg.PublisherConfig)

	db, err := database.Connect(cfg.DBConfig)
	if err != nil {
		return nil, err
	}

	dbWriter := database.NewAssetWriter(db)
	dbRetriever := database.NewAssetRetriever(db)
	dbLister := database.NewAssetLister(db)
	dbUpdater := database.NewAssetUpdater(db)
	dbRemover := database.NewAssetRemover(db)

	minIOClient, err := minio.New(&cfg.MinIOClient)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := minIOClient.EnsureBucket(ctx, cfg.MinIOStore.Bucket); err != nil {
		return nil, err
	}

	minIOUploader := minio.NewUploader(minIOClient.MinioClient, &cfg.MinIOStore)
	minIOGetter := minio.NewGetter(minIOClient.MinioClient, &cfg.MinIOStore)
	minIORemover := minio.NewRemover(minIOClient.MinioClient, &cfg.MinIOStore)
	minIOMover := minio.NewMover(minIOClient.MinioClient, &cfg.MinIOStore)
	resolver := minio.NewResolver(&cfg.MinIOStore)

	tc := transcoder.New(cfg.Transcoder)

	logger.Info("stores connected", "bucket", cfg.MinIOStore.Bucket, "db", cfg.DBConfig.DBName,
		"stream", cfg.BrokerConfig.StreamName)

	return &services{
		db:     db,
		broker: brokerClient,
		ingester: usecase.NewIngester(cfg.Pipeline, minIOUploader, minIORemover, resolver, dbWriter,
			tc, publisher),
		optimizer: usecase.NewOptimizer(cfg.Pipeline, dbRetriever, dbWriter, dbRemover, minIOGetter,
			minIOUploader, minIORemover, tc, publisher),
		mover:   usecase.NewMover(cfg.Pipeline, dbRetriever, dbUpdater, minIOMover, publisher),
		deleter: usecase.NewDeleter(dbRetriever, dbRemover, minIORemover, publisher),
		lister:  usecase.NewLister(dbLister, resolver),
		folders: usecase.NewFolders(cfg.Pipeline, dbLister),
	}, nil
}

func (s *services) close() {
	if err := s.db.Stop(); err != nil {
		logger.Error("couldn't stop db instance", "error", err)
	}
	if err := s.broker.Close(); err != nil {
		logger.Error("couldn't close broker client", "error", err)
	}
}
