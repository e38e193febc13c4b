package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rohanjoshi-fynd/maze-game/api"
	"github.com/rohanjoshi-fynd/maze-game/maze"
	"github.com/rohanjoshi-fynd/maze-game/store"
)

// Offline companion to the server: reads the run database directly and
// dumps recorded history without going through the REST surface.
//
//	run_export                     recent runs plus all-time totals
//	run_export <runID>             cleared levels of one run
//	run_export <runID> <level>     ASCII render of a stored level grid
//	run_export <runID> <level> <out.json>  also export the snapshot JSON

func main() {
	_ = godotenv.Load()
	cfg := api.LoadConfig()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: open %s: %v\n", cfg.DBPath, err)
		os.Exit(1)
	}
	defer st.Close()

	args := os.Args[1:]
	switch len(args) {
	case 0:
		listRuns(st)
	case 1:
		listLevels(st, args[0])
	case 2, 3:
		var level int
		if _, err := fmt.Sscanf(args[1], "%d", &level); err != nil || level < 1 {
			fmt.Fprintf(os.Stderr, "error: level must be a positive integer, got %q\n", args[1])
			os.Exit(1)
		}
		out := ""
		if len(args) == 3 {
			out = args[2]
		}
		dumpGrid(st, args[0], level, out)
	default:
		fmt.Fprintln(os.Stderr, "usage: run_export [runID [level [out.json]]]")
		os.Exit(1)
	}
}

func listRuns(st *store.Store) {
	totals, err := st.Totals(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: totals: %v\n", err)
		os.Exit(1)
	}
	runs, err := st.RecentRuns(context.Background(), 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: list runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("%d run(s), %d level(s) completed, best level %d\n\n",
		totals.Runs, totals.LevelsCompleted, totals.BestLevel)
	for _, r := range runs {
		state := "live"
		if r.EndedAt != nil {
			state = "ended " + r.EndedAt.Format(time.RFC3339)
		}
		fmt.Printf("%s  started %s  levels done %d  (%s)\n",
			r.RunID, r.StartedAt.Format(time.RFC3339), r.LevelsDone, state)
	}
}

func listLevels(st *store.Store, runID string) {
	levels, err := st.LevelCompletions(context.Background(), runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: list levels: %v\n", err)
		os.Exit(1)
	}
	if len(levels) == 0 {
		fmt.Printf("Run %s has no completed levels.\n", runID)
		return
	}
	for _, l := range levels {
		fmt.Printf("level %d  %dx%d  seed %d  cleared in %s  at %s\n",
			l.Level, l.Width, l.Height, l.Seed,
			time.Duration(l.DurationMs)*time.Millisecond,
			l.CompletedAt.Format(time.RFC3339))
	}
}

func dumpGrid(st *store.Store, runID string, level int, out string) {
	snap, err := st.GridSnapshot(context.Background(), runID, level)
	if err == store.ErrNotFound {
		fmt.Fprintf(os.Stderr, "error: run %s has no stored grid for level %d\n", runID, level)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: load grid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s level %d  %dx%d  seed %d\n",
		runID, level, snap.Width, snap.Height, snap.Seed)
	for z := 0; z < snap.Height; z++ {
		for x := 0; x < snap.Width; x++ {
			c := maze.Cell{X: x, Z: z}
			switch {
			case c == snap.Start:
				fmt.Print("S ")
			case c == snap.Exit:
				fmt.Print("E ")
			case snap.Cells[z][x] == maze.Wall:
				fmt.Print("● ")
			default:
				fmt.Print(". ")
			}
		}
		fmt.Println()
	}

	if out == "" {
		return
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: marshal snapshot: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, raw, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: write %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote grid snapshot JSON to %s\n", out)
}
