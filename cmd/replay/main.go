package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	verbose := flag.Bool("v", false, "print the per-turn trajectory")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [-v]")
		os.Exit(2)
	}

	fixture, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(1)
	}

	config := fixture.Config.ToEngineConfig()
	interactions := fixture.ToInteractions()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if fixture.Description != "" {
		fmt.Printf("Fixture: %s\n", fixture.Description)
	}
	fmt.Printf("Turns: %d\n\n", len(interactions))

	// Run twice; identical inputs and timestamps must yield identical
	// trajectories.
	first := replay.Replay(config, start, interactions)
	second := replay.Replay(config, start, interactions)

	if *verbose {
		for _, step := range first {
			fmt.Printf("  %-12s value=%.6f phase=%s\n", step.TurnID, step.Value, step.Phase)
		}
		fmt.Println()
	}

	summary := replay.Summarize(first)
	fmt.Printf("Final: value=%.6f phase=%s\n", summary.FinalValue, summary.FinalPhase)

	if diff := cmp.Diff(first, second); diff != "" {
		fmt.Fprintf(os.Stderr, "NON-DETERMINISTIC: trajectories diverged (-first +second):\n%s\n", diff)
		os.Exit(1)
	}
	fmt.Println("Deterministic: second run matched turn for turn.")
}

// #endregion main
