package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/openfret/tunerio/internal/utils"
	"github.com/spf13/viper"
)

// LoadConfig seeds the viper defaults and overlays the config file, if one
// exists. A missing config file is fine; the defaults carry the CLI.
func LoadConfig(configFilePath string) {
	utils.SetViperDefaults()

	viper.SetConfigFile(configFilePath)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			slog.Info("no config file found", "configFilePath", configFilePath)
		} else {
			slog.Error("error during config read", "err", err)
			panic(err)
		}
	}
}
