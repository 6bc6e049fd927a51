package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	shipCommands "github.com/andrescamacho/rareships-go/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/rareships-go/internal/application/ship/queries"
	"github.com/andrescamacho/rareships-go/internal/domain/hexgrid"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/settlement"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/bootstrap"
)

// NewShipCommand creates the ship command with subcommands
func NewShipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Spawn, order and settle ships",
		Long: `Manage ships and their order queues.

A ship only changes when it is settled. Orders are applied in queue order
for the ticks that passed since they started.

Examples:
  rareships ship spawn --ship 1 --name Kestrel
  rareships ship list --mine
  rareships ship info --ship 1
  rareships ship settle --ship 1`,
	}

	// Add subcommands
	cmd.AddCommand(newShipSpawnCommand())
	cmd.AddCommand(newShipListCommand())
	cmd.AddCommand(newShipInfoCommand())
	cmd.AddCommand(newShipOrderCommand())
	cmd.AddCommand(newShipDropCommand())
	cmd.AddCommand(newShipSettleCommand())
	cmd.AddCommand(newShipRechargeCommand())

	return cmd
}

// newShipSpawnCommand creates the ship spawn subcommand
func newShipSpawnCommand() *cobra.Command {
	var (
		shipID uint32
		name   string
	)

	cmd := &cobra.Command{
		Use:   "spawn",
		Short: "Spawn a ship owned by the caller",
		Long: `Spawn a new ship at the centre of the map with the configured stats.

Example:
  rareships ship spawn --ship 1 --name Kestrel --as alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
				ctx, err := asCaller(ctx)
				if err != nil {
					return err
				}

				response, err := rt.Mediator.Send(ctx, &shipCommands.SpawnShipCommand{ShipID: shipID, Name: name})
				if err != nil {
					return fmt.Errorf("failed to spawn ship: %w", err)
				}

				s := response.(*shipCommands.SpawnShipResponse).Ship
				fmt.Printf("✓ Ship %d spawned at %s\n", s.ID(), s.Position())
				fmt.Printf("  Owner:  %s\n", s.Owner())
				fmt.Printf("  Energy: %d / %d\n", s.Energy(), s.MaxEnergy())
				return nil
			})
		},
	}

	cmd.Flags().Uint32Var(&shipID, "ship", 0, "Ship ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Ship name")
	_ = cmd.MarkFlagRequired("ship")

	return cmd
}

// newShipListCommand creates the ship list subcommand
func newShipListCommand() *cobra.Command {
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ships",
		Long: `List every ship in spawn order, or only the caller's with --mine.

Stored state is shown as of the last settlement.

Examples:
  rareships ship list
  rareships ship list --mine --as alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
				query := &shipQueries.ListShipsQuery{}
				if mine {
					caller, err := resolveCaller()
					if err != nil {
						return err
					}
					query.Owner = &caller
				}

				response, err := rt.Mediator.Send(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to list ships: %w", err)
				}

				ships := response.(*shipQueries.ListShipsResponse).Ships
				if len(ships) == 0 {
					fmt.Println("No ships found.")
					return nil
				}

				// Display table
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tOWNER\tPOSITION\tENERGY\tCARGO\tORDERS")
				fmt.Fprintln(w, "--\t----\t-----\t--------\t------\t-----\t------")
				for _, s := range ships {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\t%d/%d\t%d\n",
						s.ID(),
						s.Name(),
						s.Owner(),
						s.Position(),
						s.Energy(),
						s.MaxEnergy(),
						s.Cargo().Len(),
						s.Cargo().MaxSize(),
						s.Orders().Len(),
					)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Only ships owned by the caller")

	return cmd
}

// newShipInfoCommand creates the ship info subcommand
func newShipInfoCommand() *cobra.Command {
	var shipID uint32

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show detailed ship information",
		Long: `Show a ship's stored state, order queue and state digest.

The digest changes whenever settlement changes the ship, so two equal
digests mean nothing happened in between.

Example:
  rareships ship info --ship 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
				response, err := rt.Mediator.Send(ctx, &shipQueries.GetShipQuery{ShipID: shipID})
				if err != nil {
					return fmt.Errorf("failed to get ship: %w", err)
				}

				result := response.(*shipQueries.GetShipResponse)
				printShip(os.Stdout, result.Ship, result.Digest)
				return nil
			})
		},
	}

	cmd.Flags().Uint32Var(&shipID, "ship", 0, "Ship ID (required)")
	_ = cmd.MarkFlagRequired("ship")

	return cmd
}

// newShipOrderCommand groups the order kinds
func newShipOrderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Queue an order on a ship you own",
		Long: `Append an order to a ship's queue. An order placed on an empty
queue starts at the current tick; later orders wait for the head to finish.

Examples:
  rareships ship order move --ship 1 --direction SOUTH_WEST --speed 700 --distance 9
  rareships ship order mine --ship 1 --site 4 --resource IRON --duration 10`,
	}

	cmd.AddCommand(newShipOrderMoveCommand())
	cmd.AddCommand(newShipOrderMineCommand())

	return cmd
}

type moveFlags struct {
	ShipID    uint32
	Direction string `validate:"required,oneof=NORTH_WEST NORTH_EAST EAST SOUTH_EAST SOUTH_WEST WEST"`
	Speed     int    `validate:"min=1"`
	Distance  int    `validate:"min=1"`
}

func newShipOrderMoveCommand() *cobra.Command {
	var flags moveFlags

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Queue a move order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Struct(flags); err != nil {
				return validationError(err)
			}
			direction, err := hexgrid.ParseDirection(flags.Direction)
			if err != nil {
				return err
			}
			order := navigation.MoveOrder{Direction: direction, Speed: flags.Speed, Distance: flags.Distance}
			return sendOrder(flags.ShipID, order)
		},
	}

	cmd.Flags().Uint32Var(&flags.ShipID, "ship", 0, "Ship ID (required)")
	cmd.Flags().StringVar(&flags.Direction, "direction", "", "NORTH_WEST, NORTH_EAST, EAST, SOUTH_EAST, SOUTH_WEST or WEST")
	cmd.Flags().IntVar(&flags.Speed, "speed", 0, "Speed, at most the ship's max speed")
	cmd.Flags().IntVar(&flags.Distance, "distance", 0, "Tiles to travel")
	_ = cmd.MarkFlagRequired("ship")

	return cmd
}

type mineFlags struct {
	ShipID   uint32
	SiteID   uint32
	Resource string `validate:"required,oneof=IRON COPPER SILVER GOLD URANIUM"`
	Duration int    `validate:"min=1"`
}

func newShipOrderMineCommand() *cobra.Command {
	var flags mineFlags

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Queue a mine order",
		Long: `Queue a mine order. The ship must be on the site's tile when the
order completes, and the site must be unclaimed or owned by the ship's owner.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Struct(flags); err != nil {
				return validationError(err)
			}
			resource, err := inventory.ParseResourceType(flags.Resource)
			if err != nil {
				return err
			}
			order := navigation.MineOrder{SiteID: flags.SiteID, Resource: resource, Duration: flags.Duration}
			return sendOrder(flags.ShipID, order)
		},
	}

	cmd.Flags().Uint32Var(&flags.ShipID, "ship", 0, "Ship ID (required)")
	cmd.Flags().Uint32Var(&flags.SiteID, "site", 0, "Resource site ID (required)")
	cmd.Flags().StringVar(&flags.Resource, "resource", "", "IRON, COPPER, SILVER, GOLD or URANIUM")
	cmd.Flags().IntVar(&flags.Duration, "duration", 0, "Ticks to mine")
	_ = cmd.MarkFlagRequired("ship")
	_ = cmd.MarkFlagRequired("site")

	return cmd
}

func sendOrder(shipID uint32, order navigation.Order) error {
	return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
		ctx, err := asCaller(ctx)
		if err != nil {
			return err
		}

		response, err := rt.Mediator.Send(ctx, &shipCommands.OrderShipCommand{ShipID: shipID, Order: order})
		if err != nil {
			return fmt.Errorf("failed to order ship: %w", err)
		}

		result := response.(*shipCommands.OrderShipResponse)
		fmt.Printf("✓ Queued %s as order %d of %d\n", order, result.Index, result.QueueLength)
		if result.Start != nil {
			fmt.Printf("  Starts at tick %d\n", *result.Start)
		}
		return nil
	})
}

// newShipDropCommand creates the ship drop subcommand
func newShipDropCommand() *cobra.Command {
	var (
		shipID uint32
		index  int
	)

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop a queued order",
		Long: `Remove the order at --index (0 is the head) from a ship you own.

Example:
  rareships ship drop --ship 1 --index 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
				ctx, err := asCaller(ctx)
				if err != nil {
					return err
				}

				response, err := rt.Mediator.Send(ctx, &shipCommands.DropOrderCommand{ShipID: shipID, Index: index})
				if err != nil {
					return fmt.Errorf("failed to drop order: %w", err)
				}

				result := response.(*shipCommands.DropOrderResponse)
				fmt.Printf("✓ Dropped %s, %d order(s) left\n", result.Dropped, result.Remaining)
				return nil
			})
		},
	}

	cmd.Flags().Uint32Var(&shipID, "ship", 0, "Ship ID (required)")
	cmd.Flags().IntVar(&index, "index", 0, "Queue position to drop")
	_ = cmd.MarkFlagRequired("ship")

	return cmd
}

// newShipSettleCommand creates the ship settle subcommand
func newShipSettleCommand() *cobra.Command {
	var (
		shipID uint32
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Settle a ship, or every ship with --all",
		Long: `Apply recharge and queued orders up to the current tick and store the result.
Settling twice at the same tick changes nothing the second time.

Examples:
  rareships ship settle --ship 1
  rareships ship settle --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == cmd.Flags().Changed("ship") {
				return fmt.Errorf("specify exactly one of --ship or --all")
			}

			return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
				if all {
					response, err := rt.Mediator.Send(ctx, &shipCommands.SettleFleetCommand{})
					if err != nil {
						return fmt.Errorf("failed to settle fleet: %w", err)
					}
					result := response.(*shipCommands.SettleFleetResponse)
					fmt.Printf("✓ Settled %d ship(s), %d changed\n", result.Settled, result.Changed)
					for _, f := range result.Failures {
						fmt.Printf("  ✗ ship %d: %v\n", f.ShipID, f.Err)
					}
					return nil
				}

				response, err := rt.Mediator.Send(ctx, &shipCommands.SettleShipCommand{ShipID: shipID})
				if err != nil {
					return fmt.Errorf("failed to settle ship: %w", err)
				}
				printSettlement(response.(*shipCommands.SettleShipResponse))
				return nil
			})
		},
	}

	cmd.Flags().Uint32Var(&shipID, "ship", 0, "Ship ID")
	cmd.Flags().BoolVar(&all, "all", false, "Settle every ship")

	return cmd
}

// newShipRechargeCommand creates the ship recharge subcommand
func newShipRechargeCommand() *cobra.Command {
	var shipID uint32

	cmd := &cobra.Command{
		Use:   "recharge",
		Short: "Apply recharge only, leaving orders untouched",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
				response, err := rt.Mediator.Send(ctx, &shipCommands.SettleRechargeCommand{ShipID: shipID})
				if err != nil {
					return fmt.Errorf("failed to recharge ship: %w", err)
				}
				printSettlement(response.(*shipCommands.SettleShipResponse))
				return nil
			})
		},
	}

	cmd.Flags().Uint32Var(&shipID, "ship", 0, "Ship ID (required)")
	_ = cmd.MarkFlagRequired("ship")

	return cmd
}

func printSettlement(result *shipCommands.SettleShipResponse) {
	s := result.Ship
	if !result.Outcome.Changed() {
		fmt.Printf("Ship %d unchanged at tick %d\n", s.ID(), result.Outcome.Tick)
		return
	}
	fmt.Printf("✓ Ship %d settled at tick %d\n", s.ID(), result.Outcome.Tick)
	fmt.Printf("  Position: %s\n", s.Position())
	fmt.Printf("  Energy:   %d / %d\n", s.Energy(), s.MaxEnergy())
	fmt.Printf("  Cargo:    %s\n", formatStacks(s.Cargo()))
	fmt.Printf("  Orders:   %d left\n", s.Orders().Len())
	printOutcome(result.Outcome)
}

func printOutcome(outcome *settlement.Outcome) {
	if outcome.Recharged > 0 {
		fmt.Printf("  Recharged %d energy\n", outcome.Recharged)
	}
	if outcome.Moved > 0 {
		fmt.Printf("  Moved %d tile(s) %s from %s\n", outcome.Moved, outcome.Direction, outcome.From)
	}
	if outcome.EnergyUsed > 0 {
		fmt.Printf("  Spent %d energy on %s\n", outcome.EnergyUsed, outcome.UsedBy)
	}
	if outcome.Mined != nil {
		fmt.Printf("  Mined %s at site %d\n", outcome.Mined, outcome.SiteID)
	}
	if outcome.Completed != nil {
		fmt.Printf("  Completed %s\n", outcome.Completed)
	}
	if outcome.Deferred {
		fmt.Printf("  Mining is waiting for energy\n")
	}
}
