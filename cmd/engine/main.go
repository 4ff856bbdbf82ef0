package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/archive"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/config"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/engine"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/field"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/signal"
)

// #region input
// inputLine is one observation fed on stdin as a JSON object.
type inputLine struct {
	Identity string                `json:"identity"`
	Catalyst string                `json:"catalyst"`
	Response signal.ResponseRecord `json:"response"`
}

// #endregion input

// #region main
func main() {
	engineConfig, err := config.FromEnv("ENGINE_CONFIG")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	registryConfig := field.DefaultRegistryConfig()
	registryConfig.Engine = engineConfig
	registry := field.NewRegistry(registryConfig, nil)

	var arch *archive.Archive
	if dbPath := os.Getenv("FIELD_DB"); dbPath != "" {
		arch, err = archive.NewArchive(dbPath)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		defer arch.Close()
		fmt.Printf("Archiving samples to %s\n", dbPath)
	}

	fmt.Println("Uncertainty field engine ready.")
	fmt.Println(`Feed observations as JSON lines: {"identity":"a","catalyst":"probe","response":{"coherence":0.8}}`)
	fmt.Println("Commands: status <identity> | analysis <identity> | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if handled := runCommand(registry, line); handled {
			continue
		}

		var in inputLine
		if err := json.Unmarshal([]byte(line), &in); err != nil {
			log.Printf("[ENGINE] bad input: %v", err)
			continue
		}
		if in.Identity == "" {
			in.Identity = "default"
		}

		eng := registry.Acquire(in.Identity)
		eng.ReceiveCatalyst(in.Catalyst)
		eng.ProcessResponse(in.Catalyst, in.Response)

		value := eng.CurrentUncertainty()
		phase := eng.Phase()
		fmt.Printf("%s: uncertainty=%.4f phase=%s\n", in.Identity, value, phase)

		if arch != nil {
			status := eng.SovereigntyStatus()
			err := arch.RecordSample(archive.SampleRow{
				Identity:   in.Identity,
				Seq:        status.ObservationCount,
				Value:      value,
				Phase:      string(phase),
				Components: eng.Components(),
			})
			if err != nil {
				log.Printf("[ENGINE] archive sample: %v", err)
			}
			err = arch.RecordObservation(archive.ObservationRow{
				Identity:     in.Identity,
				CatalystKind: in.Catalyst,
				Decision:     decisionFor(phase),
				Reason:       fmt.Sprintf("observation %d", status.ObservationCount),
			})
			if err != nil {
				log.Printf("[ENGINE] archive observation: %v", err)
			}
		}

		registry.EvictIdle()
	}
}

// #endregion main

// decisionFor maps the engine phase to the archived decision label.
func decisionFor(phase engine.Phase) string {
	if phase == engine.PhaseActive {
		return "aggregated"
	}
	return "warming"
}

// #region commands
func runCommand(registry *field.Registry, line string) bool {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return false
	}
	eng, ok := registry.Lookup(parts[1])

	switch parts[0] {
	case "status":
		if !ok {
			fmt.Printf("unknown identity %q\n", parts[1])
			return true
		}
		printJSON(eng.SovereigntyStatus())
		return true
	case "analysis":
		if !ok {
			fmt.Printf("unknown identity %q\n", parts[1])
			return true
		}
		printJSON(eng.Analysis())
		return true
	}
	return false
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("[ENGINE] marshal: %v", err)
		return
	}
	fmt.Println(string(data))
}

// #endregion commands
