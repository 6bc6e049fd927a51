package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/rareships-go/internal/domain/shared"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage rareships configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (RS_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default identity) are stored in ~/.rareships/config.json

Examples:
  rareships config show
  rareships config set-identity alice
  rareships config clear-identity`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetIdentityCommand())
	cmd.AddCommand(newConfigClearIdentityCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.Default()
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("rareships Configuration")
			fmt.Println("=======================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:        %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultIdentity != "" {
				fmt.Printf("  Default Identity:   %s\n", userCfg.DefaultIdentity)
			} else {
				fmt.Printf("  Default Identity:   (not set)\n")
			}

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:               %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.IsEphemeral():
				fmt.Printf("  Path:               %s (nothing survives this process)\n", cfg.Database.SQLitePath())
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:               %s\n", cfg.Database.SQLitePath())
			case cfg.Database.URL != "":
				fmt.Printf("  URL:                %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Printf("  Host:               %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Printf("  Database:           %s\n", cfg.Database.Name)
				fmt.Printf("  User:               %s\n", cfg.Database.User)
				fmt.Printf("  Max Connections:    %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Println("\nWorld:")
			fmt.Printf("  Size:               %d x %d\n", cfg.World.MaxX, cfg.World.MaxY)
			fmt.Printf("  Genesis:            %s\n", cfg.World.Genesis)
			fmt.Printf("  Tick Interval:      %s\n", cfg.World.TickInterval)
			if cfg.World.Admin != "" {
				fmt.Printf("  Admin:              %s\n", cfg.World.Admin)
			} else {
				fmt.Printf("  Admin:              (minting disabled)\n")
			}

			fmt.Println("\nNew Ships:")
			fmt.Printf("  Max Speed:          %d\n", cfg.Ship.MaxSpeed)
			fmt.Printf("  Energy:             %d (+%d per tick)\n", cfg.Ship.MaxEnergy, cfg.Ship.RechargeRate)
			fmt.Printf("  Slots:              %d inventory, %d cargo\n", cfg.Ship.MaxInventorySize, cfg.Ship.MaxCargoSize)

			fmt.Println("\nSettlement:")
			fmt.Printf("  Restamp On Drop:    %t\n", cfg.Settlement.RestampHeadOnDrop)
			fmt.Printf("  Fleet Rate:         %.0f ships/s (burst: %d)\n", cfg.Settlement.FleetRate, cfg.Settlement.FleetBurst)

			fmt.Println("\nDaemon:")
			fmt.Printf("  PID File:           %s\n", cfg.Daemon.PIDFile)
			fmt.Printf("  Sweep Interval:     %s\n", cfg.Daemon.SweepInterval)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Metrics:            http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			} else {
				fmt.Printf("  Metrics:            disabled\n")
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:              %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:             %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:             %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetIdentityCommand creates the config set-identity subcommand
func newConfigSetIdentityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-identity <identity>",
		Short: "Set the identity commands act as",
		Long: `Set the identity used when --as is not given.

Example:
  rareships config set-identity alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := shared.NewIdentity(args[0])
			if err != nil {
				return err
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultIdentity(identity.Value()); err != nil {
				return fmt.Errorf("failed to set default identity: %w", err)
			}

			fmt.Println("✓ Default identity set")
			fmt.Printf("  Identity: %s\n", identity)
			fmt.Printf("\nOverride with the --as flag.\n")
			return nil
		},
	}

	return cmd
}

// newConfigClearIdentityCommand creates the config clear-identity subcommand
func newConfigClearIdentityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-identity",
		Short: "Clear the default identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.ClearDefaultIdentity(); err != nil {
				return fmt.Errorf("failed to clear default identity: %w", err)
			}

			fmt.Println("✓ Default identity cleared")
			fmt.Println("\nCommands that act for someone now need --as.")
			return nil
		},
	}

	return cmd
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "****")
	return u.String()
}
