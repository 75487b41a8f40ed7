package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tabnap/tabnap/internal/config"
	"github.com/tabnap/tabnap/internal/domain/entity"
	"github.com/tabnap/tabnap/internal/infrastructure/persistence/sqlite"
	"github.com/tabnap/tabnap/internal/logging"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(26)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show durable coordinator state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := config.NewManager(configPath)
			cfg, err := manager.Load()
			if err != nil {
				return err
			}

			ctx := logging.WithContext(cmd.Context(), logging.NewFromConfigValues("warn", "console"))
			db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			flags, err := sqlite.NewFlagRepository(ctx, db)
			if err != nil {
				return err
			}

			for _, name := range []string{entity.FlagBulkOperationRunning, entity.FlagFaviconRefreshRunning} {
				flag, err := flags.Get(ctx, name)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderFlag(flag))
			}
			return nil
		},
	}
}

func renderFlag(flag entity.DurableFlag) string {
	value := offStyle.Render("off")
	if flag.Value {
		value = onStyle.Render("on")
	}
	line := labelStyle.Render(flag.Name) + value
	if !flag.UpdatedAt.IsZero() {
		line += offStyle.Render(fmt.Sprintf("  (updated %s)", flag.UpdatedAt.Local().Format(time.RFC3339)))
	}
	return line
}
