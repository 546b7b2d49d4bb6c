package usecase

import "strings"

// DefaultSeedFolders are always offered for placement, even while empty.
var DefaultSeedFolders = []string{
	"uploads", "products", "blog", "categories", "banners", "logos", "digital-products",
}

type Config struct {
	SeedFolders    []string `yaml:"seed_folders"`
	DefaultFolder  string   `yaml:"default_folder"`
	Workers        int      `yaml:"workers"`
	TargetMimeType string   `yaml:"target_mime_type"`
	// Quality is copied from the transcoder section when the config is loaded.
	Quality int `yaml:"-"`
}

func (c Config) withDefaults() Config {
	if len(c.SeedFolders) == 0 {
		c.SeedFolders = DefaultSeedFolders
	}
	if strings.TrimSpace(c.DefaultFolder) == "" {
		c.DefaultFolder = "uploads"
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.TargetMimeType == "" {
		c.TargetMimeType = "image/webp"
	}
	if c.Quality <= 0 || c.Quality > 100 {
		c.Quality = 80
	}

	return c
}
