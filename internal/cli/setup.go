package cli

import (
	"os"

	"github.com/pablasso/scopa/internal/config"
	"github.com/pablasso/scopa/internal/logging"
)

// newLogger builds the file logger for a command. The path comes from
// log.file, falling back to logs/scopa.log under the nearest .scopa
// directory. Without either, logging is disabled so stdout stays clean.
func newLogger(cfg *config.Config) *logging.Logger {
	path := cfg.Log.File
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			if dir, ok := config.FindDir(wd); ok {
				path = logging.DefaultPath(dir)
			}
		}
	}

	log, err := logging.New(path, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		return logging.Nop()
	}
	return log
}
