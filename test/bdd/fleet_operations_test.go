package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/rareships-go/test/bdd/steps"
)

func TestFleetOperations(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			steps.InitializeFleetOperationsScenario(sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/application/fleet_operations.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run fleet operation tests")
	}
}
