package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/rareships-go/internal/application/auth"
	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
	"github.com/andrescamacho/rareships-go/internal/domain/navigation"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/config"
)

// validate checks flag structs before anything touches the database
var validate = validator.New()

// loadConfig reads the --config file, or the default search paths
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// withRuntime wires a runtime for the duration of one command
func withRuntime(fn func(ctx context.Context, rt *bootstrap.Runtime) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rt, err := bootstrap.New(cfg, bootstrap.Options{})
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(rt.Context(context.Background()), rt)
}

// resolveCaller resolves the acting identity.
// Priority: --as flag > user config default.
func resolveCaller() (shared.Identity, error) {
	if callerID != "" {
		return shared.NewIdentity(callerID)
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return shared.Identity{}, fmt.Errorf("no identity specified and failed to load user config: %w", err)
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return shared.Identity{}, fmt.Errorf("no identity specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultIdentity != "" {
		return shared.NewIdentity(userCfg.DefaultIdentity)
	}

	return shared.Identity{}, fmt.Errorf("no identity specified: use --as, or set a default with 'rareships config set-identity'")
}

// asCaller returns ctx acting as the resolved identity
func asCaller(ctx context.Context) (context.Context, error) {
	caller, err := resolveCaller()
	if err != nil {
		return nil, err
	}
	return auth.WithCaller(ctx, caller), nil
}

// validationError flattens validator output into one line per field
func validationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("--%s: failed %q (got %v)", flagName(e.Field()), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid flags: %s", strings.Join(msgs, "; "))
}

func flagName(field string) string {
	switch field {
	case "ShipID":
		return "ship"
	case "SiteID":
		return "site"
	default:
		return strings.ToLower(field)
	}
}

// formatStacks renders inventory contents as "IRON x12, GOLD x3"
func formatStacks(inv *inventory.Inventory) string {
	items := inv.Items()
	if len(items) == 0 {
		return "(empty)"
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case *inventory.Resource:
			parts = append(parts, it.String())
		case *inventory.Weapon:
			parts = append(parts, fmt.Sprintf("weapon #%d", it.ItemID))
		case *inventory.Armor:
			parts = append(parts, fmt.Sprintf("armor #%d", it.ItemID))
		}
	}
	return strings.Join(parts, ", ")
}

// printShip writes the detailed ship view
func printShip(w io.Writer, s *navigation.Ship, digest string) {
	fmt.Fprintf(w, "Ship Information\n")
	fmt.Fprintf(w, "================\n\n")
	fmt.Fprintf(w, "Ship ID:        %d\n", s.ID())
	if s.Name() != "" {
		fmt.Fprintf(w, "Name:           %s\n", s.Name())
	}
	fmt.Fprintf(w, "Owner:          %s\n", s.Owner())
	fmt.Fprintf(w, "Position:       %s\n", s.Position())
	fmt.Fprintf(w, "Energy:         %d / %d (+%d per tick)\n", s.Energy(), s.MaxEnergy(), s.RechargeRate())
	fmt.Fprintf(w, "Health:         %d / %d\n", s.Health(), s.Spec().MaxHealth)
	fmt.Fprintf(w, "Max Speed:      %d\n", s.MaxSpeed())
	fmt.Fprintf(w, "Last Recharge:  tick %d\n", s.LastRecharge())
	fmt.Fprintf(w, "Cargo:          %d / %d slots: %s\n", s.Cargo().Len(), s.Cargo().MaxSize(), formatStacks(s.Cargo()))
	fmt.Fprintf(w, "Inventory:      %d / %d slots: %s\n", s.Inventory().Len(), s.Inventory().MaxSize(), formatStacks(s.Inventory()))
	if digest != "" {
		fmt.Fprintf(w, "State Digest:   %s\n", digest)
	}

	orders := s.Orders().Orders()
	if len(orders) == 0 {
		fmt.Fprintf(w, "\nNo queued orders\n")
		return
	}
	fmt.Fprintf(w, "\nQueued Orders:\n")
	for i, q := range orders {
		start := "waiting"
		if q.Started() {
			start = fmt.Sprintf("started at tick %d", *q.Start)
		}
		fmt.Fprintf(w, "  %d. %s (%s)\n", i, q.Order, start)
	}
}
