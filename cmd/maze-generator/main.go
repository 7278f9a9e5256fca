package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/maze-chase/maze"
	"github.com/lixenwraith/maze-chase/navigation"
)

var (
	batchFlag  = flag.Bool("batch", false, "Generate once from flags, no prompts")
	widthFlag  = flag.Int("w", 29, "Width (batch mode)")
	heightFlag = flag.Int("h", 31, "Height (batch mode)")
	braidFlag  = flag.Float64("braid", 0.3, "Braiding factor 0.0-1.0 (batch mode)")
	openFlag   = flag.Bool("open", false, "Open the outer border (batch mode)")
	seedFlag   = flag.Int64("seed", 0, "Random seed, 0 picks one")
	outFlag    = flag.String("out", "", "Save the level to this file")
)

// Distance shading, nearest to farthest from the start
var shades = []rune{'·', '░', '▒', '▓'}

func main() {
	flag.Parse()

	if *batchFlag {
		res := generate(os.Stdout, maze.GenConfig{
			Width:       *widthFlag,
			Height:      *heightFlag,
			Braiding:    clampUnit(*braidFlag),
			OpenBorders: *openFlag,
			Seed:        *seedFlag,
		})
		if *outFlag != "" {
			if err := saveLevel(*outFlag, res.Grid); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Printf("Saved to %s\n", *outFlag)
		}
		return
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("\n=== MAZE LEVEL GENERATOR ===")

		w := getInt(reader, "Width [Odd prefered] (default 29): ", 29)
		h := getInt(reader, "Height [Odd prefered] (default 31): ", 31)
		braid := getFloat(reader, "Braiding Factor [0.0 - 1.0] (default 0.3): ", 0.3)

		fmt.Print("Open borders? [y/N]: ")
		openStr, _ := reader.ReadString('\n')
		open := strings.ToLower(strings.TrimSpace(openStr)) == "y"

		res := generate(os.Stdout, maze.GenConfig{
			Width:       w,
			Height:      h,
			Braiding:    braid,
			OpenBorders: open,
			Seed:        *seedFlag,
		})

		fmt.Print("\nSave to file (empty skips): ")
		path, _ := reader.ReadString('\n')
		if path = strings.TrimSpace(path); path != "" {
			if err := saveLevel(path, res.Grid); err != nil {
				fmt.Println(err)
			} else {
				fmt.Printf("Saved to %s\n", path)
			}
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// generate builds a level, prints its stats and shaded map to w
func generate(w io.Writer, cfg maze.GenConfig) maze.GenResult {
	fmt.Fprintln(w, "\nGenerating...")
	startT := time.Now()
	res := maze.Generate(cfg)
	field := newField(res)
	dur := time.Since(startT)

	fmt.Fprintf(w, "Done in %v\n", dur)
	fmt.Fprintf(w, "Grid Dimensions: %dx%d\n", res.Grid.Width(), res.Grid.Height())
	if d, ok := field.Distance(res.End); ok {
		fmt.Fprintf(w, "Start to End: %d steps\n", d)
	} else {
		fmt.Fprintln(w, "Status: Unsolvable (Isolated Start/End)")
	}

	fmt.Fprint(w, draw(res, field))
	return res
}

// newField measures every cell's distance from the start
func newField(res maze.GenResult) *navigation.DistanceField {
	field := navigation.NewDistanceField(res.Grid)
	field.Recompute(res.Start)
	return field
}

// draw shades open cells by their distance from the start
func draw(res maze.GenResult, field *navigation.DistanceField) string {
	maxD := 0
	for y := 0; y < res.Grid.Height(); y++ {
		for x := 0; x < res.Grid.RowLen(y); x++ {
			if d, ok := field.Distance(maze.Cell{X: x, Y: y}); ok {
				maxD = max(maxD, d)
			}
		}
	}

	var sb strings.Builder
	for y := 0; y < res.Grid.Height(); y++ {
		for x := 0; x < res.Grid.RowLen(y); x++ {
			c := maze.Cell{X: x, Y: y}
			d, reached := field.Distance(c)
			switch {
			case c == res.Start:
				sb.WriteRune('S')
			case c == res.End:
				sb.WriteRune('E')
			case res.Grid.IsWall(c):
				sb.WriteRune('█')
			case !reached:
				sb.WriteRune('?')
			default:
				sb.WriteRune(shades[d*(len(shades)-1)/max(maxD, 1)])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// saveLevel writes grid in the level file format
func saveLevel(path string, grid *maze.Grid) error {
	data := strings.Join(grid.Lines(), "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("saving level %s: %w", path, err)
	}
	return nil
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return clampUnit(v)
}

func clampUnit(v float64) float64 {
	return max(0.0, min(v, 1.0))
}
