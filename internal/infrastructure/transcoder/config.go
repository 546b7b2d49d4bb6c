package transcoder

type Config struct {
	URL                    string `yaml:"url"`
	Timeout                int64  `yaml:"timeout_in_ms"`
	Quality                int    `yaml:"quality"`
	MaxConsecutiveFailures uint32 `yaml:"max_consecutive_failures"`
	OpenTimeout            int64  `yaml:"open_timeout_in_ms"`
}
