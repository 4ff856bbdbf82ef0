package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/archive"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the field archive database")
	identity := flag.String("identity", "", "show samples for one identity")
	last := flag.Int("last", 20, "show N most recent samples")
	observations := flag.Bool("observations", false, "show the observation log instead of samples")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/field.db [--identity id] [--last N] [--observations] [--json]")
		os.Exit(2)
	}

	arch, err := archive.NewArchive(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open archive: %v\n", err)
		os.Exit(1)
	}
	defer arch.Close()

	if *identity == "" {
		if err := runIdentityList(arch, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *observations {
		err = runObservationList(arch, *identity, *last, *jsonOut)
	} else {
		err = runSampleList(arch, *identity, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region identity-list

func runIdentityList(arch *archive.Archive, jsonOut bool) error {
	identities, err := arch.Identities()
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(identities)
	}
	if len(identities) == 0 {
		fmt.Println("no archived identities")
		return nil
	}
	fmt.Printf("%d archived identities:\n", len(identities))
	for _, id := range identities {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

// #endregion identity-list

// #region sample-list

func runSampleList(arch *archive.Archive, identity string, last int, jsonOut bool) error {
	samples, err := arch.ListSamples(identity, last)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(samples)
	}
	if len(samples) == 0 {
		fmt.Printf("no samples for %s\n", identity)
		return nil
	}
	fmt.Printf("%-6s %-10s %-8s %s\n", "SEQ", "VALUE", "PHASE", "CREATED")
	for _, s := range samples {
		fmt.Printf("%-6d %-10.4f %-8s %s\n", s.Seq, s.Value, s.Phase, s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// #endregion sample-list

// #region observation-list

func runObservationList(arch *archive.Archive, identity string, last int, jsonOut bool) error {
	rows, err := arch.ListObservations(identity, last)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(rows)
	}
	if len(rows) == 0 {
		fmt.Printf("no observations for %s\n", identity)
		return nil
	}
	fmt.Printf("%-16s %-12s %s\n", "CATALYST", "DECISION", "CREATED")
	for _, r := range rows {
		fmt.Printf("%-16s %-12s %s\n", r.CatalystKind, r.Decision, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// #endregion observation-list

// #region helpers

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// #endregion helpers
