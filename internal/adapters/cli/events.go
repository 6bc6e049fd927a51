package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	shipQueries "github.com/andrescamacho/rareships-go/internal/application/ship/queries"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/bootstrap"
)

type eventsFlags struct {
	Type  string `validate:"omitempty,oneof=SHIP_SPAWNED SHIP_MOVED ENERGY_RECHARGED ENERGY_USED ORDER_CREATED ORDER_UPDATED ORDER_COMPLETED ORDER_DROPPED RESOURCE_MINED SITE_MINTED"`
	Limit int    `validate:"min=0"`
}

// NewEventsCommand lists the persisted event log
func NewEventsCommand() *cobra.Command {
	var (
		flags  eventsFlags
		shipID uint32
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recorded ship events",
		Long: `List events recorded by settlements and commands, oldest first.
With --limit only the most recent events are shown.

Examples:
  rareships events --ship 1 --limit 20
  rareships events --type RESOURCE_MINED`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Struct(flags); err != nil {
				return validationError(err)
			}

			query := &shipQueries.ListEventsQuery{Type: flags.Type, Limit: flags.Limit}
			if cmd.Flags().Changed("ship") {
				query.ShipID = &shipID
			}

			return withRuntime(func(ctx context.Context, rt *bootstrap.Runtime) error {
				response, err := rt.Mediator.Send(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to list events: %w", err)
				}

				events := response.(*shipQueries.ListEventsResponse).Events
				if len(events) == 0 {
					fmt.Println("No events found.")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TICK\tSHIP\tTYPE\tPAYLOAD")
				fmt.Fprintln(w, "----\t----\t----\t-------")
				for _, e := range events {
					ship := "-"
					if e.ShipID != nil {
						ship = fmt.Sprint(*e.ShipID)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Tick, ship, e.Type, e.Payload)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().Uint32Var(&shipID, "ship", 0, "Only events of this ship")
	cmd.Flags().StringVar(&flags.Type, "type", "", "Only events of this type")
	cmd.Flags().IntVar(&flags.Limit, "limit", 50, "Most recent N events (0 for all)")

	return cmd
}
