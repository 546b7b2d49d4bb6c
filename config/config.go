package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"assetpipe/internal/application/usecase"
	"assetpipe/internal/infrastructure/broker"
	"assetpipe/internal/infrastructure/database"
	"assetpipe/internal/infrastructure/minio"
	"assetpipe/internal/infrastructure/transcoder"
	"assetpipe/pkg/logger"
)

// Config represents the configs used by services on system.
type Config struct {
	Environment     string                 `yaml:"environment"`
	Default         DefaultConfig          `yaml:"default"`
	MinIOClient     minio.ClientConfig     `yaml:"minio_client"`
	MinIOStore      minio.StoreConfig      `yaml:"minio_store"`
	DBConfig        database.Config        `yaml:"db_config"`
	BrokerConfig    broker.Config          `yaml:"redis_broker_config"`
	PublisherConfig broker.PublisherConfig `yaml:"publisher_config"`
	Transcoder      transcoder.Config      `yaml:"transcoder"`
	Pipeline        usecase.Config         `yaml:"pipeline"`
	Logger          logger.Config          `yaml:"logger"`
}

type DefaultConfig struct {
	Address   string `yaml:"address"`
	BodyLimit string `yaml:"body_limit"`
	// Admins are the hex pubkeys allowed to sign requests. Empty admits any valid signer.
	Admins []string `yaml:"admins"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.MinIOClient.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.MinIOClient.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	if uri := os.Getenv("DATABASE_URI"); uri != "" {
		config.DBConfig.URI = uri
	}
	if uri := os.Getenv("BROKER_URI"); uri != "" {
		config.BrokerConfig.URI = uri
	}

	config.Pipeline.Quality = config.Transcoder.Quality

	if config.Default.BodyLimit == "" {
		config.Default.BodyLimit = "50M"
	}

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	switch {
	case c.Default.Address == "":
		return Error{reason: "default.address is required"}
	case c.Transcoder.Quality < 0 || c.Transcoder.Quality > 100:
		return Error{reason: "transcoder.quality must be between 0 and 100"}
	case c.Pipeline.Workers < 1:
		return Error{reason: "pipeline.workers must be at least 1"}
	case c.MinIOStore.Bucket == "":
		return Error{reason: "minio_store.bucket is required"}
	case c.DBConfig.DBName == "":
		return Error{reason: "db_config.db_name is required"}
	case c.Pipeline.SeedFolders != nil && len(c.Pipeline.SeedFolders) == 0:
		return Error{reason: "pipeline.seed_folders must not be empty"}
	}

	return nil
}
