// Command cli renders a generated maze in the terminal, animates the
// shortest corridor path from start to exit, and marks the respawn ring
// around the exit. Handy for eyeballing generator and search behavior
// without booting the server.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rohanjoshi-fynd/maze-game/config"
	"github.com/rohanjoshi-fynd/maze-game/maze"
	"github.com/rohanjoshi-fynd/maze-game/pathfinding"
)

func usage() {
	fmt.Println("Usage: cli [width] [height] [seed]")
	fmt.Println("  width/height default to 21, seed defaults to the clock")
	os.Exit(1)
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		fmt.Printf("Invalid arg: %s\n", s)
		usage()
	}
	return v
}

func printGrid(g *maze.Grid, walked map[maze.Cell]bool, ring map[maze.Cell]bool, current maze.Cell, step, total int) {
	// ANSI escape codes to clear the screen and move the cursor home.
	fmt.Print("\033[2J\033[H")

	fmt.Println("--------------------------------------------------")
	fmt.Printf("Walking shortest path... step %d of %d\n", step, total)
	fmt.Printf("Seed: %d  Size: %dx%d\n", g.Seed(), g.Width(), g.Height())
	fmt.Println("--------------------------------------------------")

	for z := 0; z < g.Height(); z++ {
		for x := 0; x < g.Width(); x++ {
			c := maze.Cell{X: x, Z: z}
			switch {
			case c == current:
				fmt.Print("X ")
			case c == g.Start():
				fmt.Print("S ")
			case c == g.Exit():
				fmt.Print("E ")
			case walked[c]:
				fmt.Print("+ ")
			case ring[c]:
				fmt.Print("o ")
			case g.CellAt(x, z) == maze.Wall:
				fmt.Print("● ")
			default:
				fmt.Print(". ")
			}
		}
		fmt.Println()
	}
	time.Sleep(30 * time.Millisecond)
}

func main() {
	width, height := 21, 21
	var seed int64

	args := os.Args[1:]
	if len(args) > 3 {
		usage()
	}
	if len(args) >= 1 {
		width = parseInt(args[0])
		height = width
	}
	if len(args) >= 2 {
		height = parseInt(args[1])
	}
	if len(args) == 3 {
		seed = int64(parseInt(args[2]))
	}

	g := maze.Generate(maze.Config{Width: width, Height: height, Seed: seed})

	path := pathfinding.ShortestPath(g, g.Start(), g.Exit())
	if path == nil {
		fmt.Println("No path from start to exit. The generator is broken.")
		os.Exit(1)
	}

	ring := make(map[maze.Cell]bool)
	for _, c := range pathfinding.RingCandidates(g, g.Exit(), config.TeleportRingMin, config.TeleportRingMax) {
		ring[c] = true
	}

	walked := make(map[maze.Cell]bool, len(path))
	for i, c := range path {
		walked[c] = true
		printGrid(g, walked, ring, c, i+1, len(path))
	}

	fmt.Println("--------------------------------------------------")
	fmt.Printf("Done. Path length: %d cells, respawn ring: %d candidates.\n", len(path), len(ring))
}
