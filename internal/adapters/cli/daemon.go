package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/rareships-go/internal/infrastructure/config"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/pidfile"
)

// NewDaemonCommand inspects the settlement sweeper
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Inspect the settlement sweeper daemon",
		Long: `The sweeper (rareships-daemon) settles every ship on a fixed interval.

Example:
  rareships daemon status`,
	}

	cmd.AddCommand(newDaemonStatusCommand())

	return cmd
}

func newDaemonStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the sweeper is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			pf := pidfile.New(cfg.Daemon.PIDFile)
			pid, running := pf.Running()
			if !running {
				fmt.Printf("Sweeper is not running (PID file: %s)\n", pf.Path())
				return nil
			}

			fmt.Printf("✓ Sweeper is running\n")
			fmt.Printf("  PID:            %d\n", pid)
			fmt.Printf("  Sweep Interval: %s\n", cfg.Daemon.SweepInterval)
			return nil
		},
	}
}
