package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	planetCommands "github.com/andrescamacho/rareships-go/internal/application/planet/commands"
	planetQueries "github.com/andrescamacho/rareships-go/internal/application/planet/queries"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/planet"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/bootstrap"
)

// NewSiteCommand creates the site command with subcommands
func NewSiteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Mint and inspect resource sites",
		Long: `Resource sites offer resources at per-tick rates fixed by their level.

Examples:
  rareships site mint --site 4 --level ADVANCED --x 10 --y 12 --as overseer
  rareships site info --site 4`,
	}

	cmd.AddCommand(newSiteMintCommand())
	cmd.AddCommand(newSiteInfoCommand())

	return cmd
}

type mintFlags struct {
	SiteID uint32
	Level  string `validate:"required,oneof=BASIC ADVANCED FORTRESS"`
	X      int    `validate:"min=0"`
	Y      int    `validate:"min=0"`
	Owner  string
}

// newSiteMintCommand creates the site mint subcommand
func newSiteMintCommand() *cobra.Command {
	var flags mintFlags

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a resource site (administrator only)",
		Long: `Mint a resource site. Only the identity configured as world.admin may mint.
Sites without --owner can be mined by anyone.

Example:
  rareships site mint --site 4 --level BASIC --x 5001 --y 5000 --owner alice --as overseer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Struct(flags); err != nil {
				return validationError(err)
			}
			level, err := planet.ParseLevel(flags.Level)
			if err != nil {
				return err
			}

			command := &planetCommands.MintSiteCommand{
				SiteID:   flags.SiteID,
				Level:    level,
				Position: hexgrid.Position{X: flags.X, Y: flags.Y},
			}
			if flags.Owner != "" {
				owner, err := shared.NewIdentity(flags.Owner)
				if err != nil {
					return err
				}
				command.Owner = &owner
			}

			return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
				ctx, err := asCaller(ctx)
				if err != nil {
					return err
				}

				response, err := rt.Mediator.Send(ctx, command)
				if err != nil {
					return fmt.Errorf("failed to mint site: %w", err)
				}

				site := response.(*planetCommands.MintSiteResponse).Site
				fmt.Printf("✓ Site %d minted at %s\n", site.ID(), site.Position())
				fmt.Printf("  Level: %s\n", site.Level())
				return nil
			})
		},
	}

	cmd.Flags().Uint32Var(&flags.SiteID, "site", 0, "Site ID (required)")
	cmd.Flags().StringVar(&flags.Level, "level", "", "BASIC, ADVANCED or FORTRESS")
	cmd.Flags().IntVar(&flags.X, "x", 0, "Column")
	cmd.Flags().IntVar(&flags.Y, "y", 0, "Row")
	cmd.Flags().StringVar(&flags.Owner, "owner", "", "Identity allowed to mine the site (default: anyone)")
	_ = cmd.MarkFlagRequired("site")

	return cmd
}

// newSiteInfoCommand creates the site info subcommand
func newSiteInfoCommand() *cobra.Command {
	var siteID uint32

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show a resource site",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
				response, err := rt.Mediator.Send(ctx, &planetQueries.GetSiteQuery{SiteID: siteID})
				if err != nil {
					return fmt.Errorf("failed to get site: %w", err)
				}

				site := response.(*planetQueries.GetSiteResponse).Site
				spec := site.Spec()

				fmt.Printf("Site Information\n")
				fmt.Printf("================\n\n")
				fmt.Printf("Site ID:   %d\n", site.ID())
				fmt.Printf("Level:     %s\n", site.Level())
				fmt.Printf("Position:  %s\n", site.Position())
				if owner, ok := site.Owner(); ok {
					fmt.Printf("Owner:     %s\n", owner)
				} else {
					fmt.Printf("Owner:     (unclaimed)\n")
				}
				fmt.Printf("Storage:   %d slots: %s\n", spec.Storage, formatStacks(site.Stock()))

				resources := make([]inventory.ResourceType, 0, len(spec.Rates))
				for rt := range spec.Rates {
					resources = append(resources, rt)
				}
				sort.Slice(resources, func(i, j int) bool { return resources[i] < resources[j] })

				fmt.Printf("\nRates:\n")
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "  RESOURCE\tPER TICK")
				for _, resource := range resources {
					fmt.Fprintf(w, "  %s\t%d\n", resource, spec.Rates[resource])
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().Uint32Var(&siteID, "site", 0, "Site ID (required)")
	_ = cmd.MarkFlagRequired("site")

	return cmd
}
