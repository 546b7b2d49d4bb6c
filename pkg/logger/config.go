package logger

type Config struct {
	Colorful        bool              `yaml:"colorful"`
	Targets         []string          `yaml:"targets"`
	Levels          map[string]string `yaml:"levels"`
	Filename        string            `yaml:"filename"`
	MaxSizeMB       int               `yaml:"max_size_mb"`
	MaxBackups      int               `yaml:"max_backups"`
	RotateAfterDays int               `yaml:"rotate_after_days"`
	Compress        bool              `yaml:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Colorful: true,
		Targets:  []string{"console"},
		Levels: map[string]string{
			"default": "info",
		},
		Filename:        "assetpipe.log",
		MaxSizeMB:       10,
		MaxBackups:      5,
		RotateAfterDays: 7,
		Compress:        true,
	}
}
