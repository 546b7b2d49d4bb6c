package commands

import (
	"errors"
	"os"

	"assetpipe/config"
	"assetpipe/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("assetpipe error", "err", err.Error())
	os.Exit(1)
}

func loadConfig(args []string) *config.Config {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	return cfg
}
