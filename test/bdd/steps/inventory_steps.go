package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/rareships-go/internal/domain/inventory"
)

type inventoryContext struct {
	inv     *inventory.Inventory
	lastErr error
}

func (ic *inventoryContext) reset() {
	ic.inv = nil
	ic.lastErr = nil
}

func (ic *inventoryContext) anInventoryWithSlots(slots int) error {
	ic.inv = inventory.New(slots)
	return nil
}

func (ic *inventoryContext) iAdd(quantity int, resource string) error {
	rt, err := inventory.ParseResourceType(resource)
	if err != nil {
		return err
	}
	ic.lastErr = ic.inv.AddItem(inventory.NewResource(rt, quantity))
	return nil
}

func (ic *inventoryContext) theStacksShouldBe(table *godog.Table) error {
	return assertStacks(ic.inv, table)
}

func (ic *inventoryContext) theLastAddShouldFailWith(kind string) error {
	expected, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !errors.Is(ic.lastErr, expected) {
		return fmt.Errorf("expected %s, got %v", kind, ic.lastErr)
	}
	return nil
}

func InitializeInventoryScenario(ctx *godog.ScenarioContext) {
	ic := &inventoryContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ic.reset()
		return ctx, nil
	})

	ctx.Step(`^an inventory with (\d+) slots$`, ic.anInventoryWithSlots)
	ctx.Step(`^I add (\d+) (\w+)$`, ic.iAdd)
	ctx.Step(`^the stacks should be:$`, ic.theStacksShouldBe)
	ctx.Step(`^the last add should fail with "([^"]*)"$`, ic.theLastAddShouldFailWith)
}
