package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// viper keys, bound in cmd/root.go
const (
	LevelKey   = "log.level"
	FormatKey  = "log.format"
	NoColorKey = "log.no_color"
)

// InitDefault sets up a console logger before flags are parsed so that
// early failures are still readable.
func InitDefault() {
	log.Logger = consoleLogger(false).Level(zerolog.InfoLevel)
}

// Init configures the global logger from viper (flags/env/config).
func Init() {
	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString(LevelKey)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	switch viper.GetString(FormatKey) {
	case "json":
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	default:
		log.Logger = consoleLogger(viper.GetBool(NoColorKey)).Level(level)
	}
}

func consoleLogger(noColor bool) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
	return zerolog.New(writer).With().Timestamp().Logger()
}
