package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	callerID   string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rareships",
		Short: "rareships CLI - spawn ships, queue orders and settle them",
		Long: `rareships drives the settlement engine against the configured database.

Ships act only when settled: orders are queued with a start tick and the
elapsed ticks are applied lazily the next time the ship is settled.

Examples:
  rareships ship spawn --ship 1 --name Kestrel --as alice
  rareships ship order move --ship 1 --direction EAST --speed 1000 --distance 5
  rareships ship order mine --ship 1 --site 4 --resource IRON --duration 10
  rareships ship settle --ship 1
  rareships site mint --site 4 --level BASIC --x 5001 --y 5000 --as overseer
  rareships events --ship 1 --limit 20`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/rareships)")
	rootCmd.PersistentFlags().StringVar(&callerID, "as", "",
		"Identity to act as (default: from 'rareships config set-identity')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log handler activity at debug level")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewShipCommand())
	rootCmd.AddCommand(NewSiteCommand())
	rootCmd.AddCommand(NewEventsCommand())
	rootCmd.AddCommand(NewDaemonCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
