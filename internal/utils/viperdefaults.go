package utils

import "github.com/spf13/viper"

// Set the viper defaults for the tunerio CLI.
// For use in cmd/tunerio, as well as the examples.
func SetViperDefaults() {
	viper.SetDefault("loglevel", "info")
	viper.SetDefault("logfile", "")
	viper.SetDefault("samplerate", 48000)
	viper.SetDefault("buffersize", 512)
	viper.SetDefault("volume", 0.5)
	viper.SetDefault("tuning", "standard")
}
