package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"text/tabwriter"

	"github.com/milk9111/blocklevel/config"
	"github.com/milk9111/blocklevel/levels"
	"github.com/milk9111/blocklevel/obj"
	"github.com/milk9111/blocklevel/tile"
	xdraw "golang.org/x/image/draw"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("levelinfo", flag.ContinueOnError)
	levelName := fs.String("level", "", "level name in levels/")
	levelFile := fs.String("file", "", "level file path; overrides -level")
	configPath := fs.String("config", "", "build config YAML laid over the defaults")
	height := fs.Float64("height", 0, "target height in world units; overrides the config")
	showGroups := fs.Bool("groups", false, "list the blocks of every collision group")
	preview := fs.String("preview", "", "write a PNG of the merged blocks to this path")
	cell := fs.Int("cell", 16, "preview pixels per grid cell")
	list := fs.Bool("list", false, "list the embedded levels and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		for _, name := range levels.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *height > 0 {
		cfg.TargetHeight = *height
	}

	var grid *tile.Grid
	switch {
	case *levelFile != "":
		grid, err = levels.LoadFile(*levelFile)
	case *levelName != "":
		grid, err = levels.Load(*levelName)
	default:
		return fmt.Errorf("levelinfo: -level or -file is required")
	}
	if err != nil {
		return err
	}

	l, err := obj.Build(grid, cfg.TargetHeight, cfg.BuildOptions(nil))
	if err != nil {
		return err
	}

	printSummary(stdout, l)
	if *showGroups {
		printGroups(stdout, l)
	}

	if *preview != "" {
		if err := writePreview(*preview, l, *cell); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "preview: %s\n", *preview)
	}
	return nil
}

func printSummary(w io.Writer, l *obj.Level) {
	gw, gh := l.GridSize()
	ww, wh := l.Size()
	spawn, _ := l.SpawnPoint()
	fmt.Fprintf(w, "grid: %dx%d cells  scale: %g  size: %gx%g\n", gw, gh, l.Scale(), ww, wh)
	fmt.Fprintf(w, "spawn: %g,%g\n", spawn.X, spawn.Y)
	fmt.Fprintf(w, "blocks: %d  breakable: %d  groups: %d\n", len(l.Blocks()), len(l.Breakables()), len(l.CollisionGroups()))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tX\tY\tW\tH")
	for _, b := range l.Blocks() {
		r := b.Rect()
		fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%g\t%g\n", b.ID(), b.Type(), r.X, r.Y, r.Width, r.Height)
	}
	tw.Flush()
}

func printGroups(w io.Writer, l *obj.Level) {
	fmt.Fprintf(w, "groups: %d  strip width: %g\n", l.Groups().Len(), l.Groups().StripWidth())
	for i, g := range l.CollisionGroups() {
		ids := make([]int, 0, len(g.Blocks()))
		for _, b := range g.Blocks() {
			ids = append(ids, b.ID())
		}
		fmt.Fprintf(w, "group %d [%g, %g): %v\n", i, g.Bounds.X, g.Bounds.Right(), ids)
	}
}

func writePreview(path string, l *obj.Level, cell int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, renderPreview(l, cell)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var outlineColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// renderPreview paints one pixel per cell, scales it up to cell pixels per
// cell and outlines every merged block.
func renderPreview(l *obj.Level, cell int) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	gw, gh := l.GridSize()
	small := image.NewRGBA(image.Rect(0, 0, gw, gh))
	draw.Draw(small, small.Bounds(), &image.Uniform{tile.Color(tile.Clear)}, image.Point{}, draw.Src)

	toCells := func(b *obj.Block) image.Rectangle {
		r := b.Rect()
		s := l.Scale()
		return image.Rect(
			int(math.Round(r.X/s)), int(math.Round(r.Y/s)),
			int(math.Round(r.Right()/s)), int(math.Round(r.Bottom()/s)),
		)
	}
	for _, b := range l.Blocks() {
		draw.Draw(small, toCells(b), &image.Uniform{tile.Color(b.Type())}, image.Point{}, draw.Src)
	}
	if spawn, ok := l.SpawnPoint(); ok {
		x, y := int(math.Round(spawn.X/l.Scale())), int(math.Round(spawn.Y/l.Scale()))
		small.SetRGBA(x, y, tile.Color(tile.Spawn))
	}

	out := image.NewRGBA(image.Rect(0, 0, gw*cell, gh*cell))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), small, small.Bounds(), xdraw.Src, nil)

	if cell >= 3 {
		for _, b := range l.Blocks() {
			c := toCells(b)
			strokeRect(out, image.Rect(c.Min.X*cell, c.Min.Y*cell, c.Max.X*cell, c.Max.Y*cell), outlineColor)
		}
	}
	return out
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}
