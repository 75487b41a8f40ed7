// Package cli provides the command-line interface for tabnap.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configPath string

// BuildInfo carries build-time metadata set via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand builds the tabnap command tree.
func NewRootCommand(build BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "tabnap",
		Short: "Background coordinator for the tabnap tab-suspension extension",
		Long: "tabnap keeps track of tab and window focus state, routes control\n" +
			"messages from the extension, and coordinates bulk suspend/unsuspend\n" +
			"operations with durable, restart-safe flags.",
		Version:       fmt.Sprintf("%s (%s, %s)", build.Version, build.Commit, build.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(newServeCommand())
	root.AddCommand(newStatsCommand())
	root.AddCommand(newConfigCommand())

	return root
}
