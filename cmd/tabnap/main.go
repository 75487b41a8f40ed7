package main

import (
	"os"

	"github.com/tabnap/tabnap/internal/cli"
	"github.com/tabnap/tabnap/internal/logging"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: buildDate})
	if err := root.Execute(); err != nil {
		log := logging.NewFromEnv()
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
