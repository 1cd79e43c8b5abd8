package tile

import (
	"fmt"
	"image"
	"strings"
)

// ScanOrder is the order the merger visits seed cells in.
type ScanOrder int

const (
	// ColumnMajor walks x in the outer loop and y in the inner loop. Existing
	// level bitmaps were authored against this order.
	ColumnMajor ScanOrder = iota
	RowMajor
)

func (o ScanOrder) String() string {
	if o == RowMajor {
		return "row"
	}
	return "column"
}

// ParseScanOrder accepts "column" or "row", case-insensitively. An empty
// string is ColumnMajor.
func ParseScanOrder(s string) (ScanOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "column":
		return ColumnMajor, nil
	case "row":
		return RowMajor, nil
	default:
		return ColumnMajor, fmt.Errorf("tile: unknown scan order %q", s)
	}
}

// Run is a merged rectangle of a single tile type in cell units.
type Run struct {
	X, Y int
	W, H int
	Type Type
}

// Rect returns the run as an image rectangle.
func (r Run) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Cells is the number of grid cells the run covers.
func (r Run) Cells() int {
	return r.W * r.H
}

type MergeOptions struct {
	Order ScanOrder
	// SplitBreakables emits every breakable cell as its own 1x1 run.
	SplitBreakables bool
}

type MergeResult struct {
	Runs []Run
	// Spawn is the spawn cell; only meaningful when HasSpawn is set. With
	// several spawn cells the last one visited wins.
	Spawn      image.Point
	HasSpawn   bool
	SpawnCount int
}

// Merge greedily covers every non-clear cell of g with rectangles of a single
// type. Each seed first grows right along its row to fix the width, then
// grows down one full row at a time; the height is never traded back for
// width, so the cover is deterministic for a given order but not minimal.
// g itself is not modified.
func Merge(g *Grid, opts MergeOptions) MergeResult {
	var res MergeResult
	if g.Empty() {
		return res
	}
	work := g.Clone()

	visit := func(x, y int) {
		t := work.At(x, y)
		switch t {
		case Clear:
			return
		case Spawn:
			res.Spawn = image.Point{X: x, Y: y}
			res.HasSpawn = true
			res.SpawnCount++
			work.Set(x, y, Clear)
			return
		case Breakable:
			if opts.SplitBreakables {
				work.Set(x, y, Clear)
				res.Runs = append(res.Runs, Run{X: x, Y: y, W: 1, H: 1, Type: t})
				return
			}
		}
		res.Runs = append(res.Runs, growRun(work, x, y, t))
	}

	if opts.Order == RowMajor {
		for y := 0; y < work.height; y++ {
			for x := 0; x < work.width; x++ {
				visit(x, y)
			}
		}
	} else {
		for x := 0; x < work.width; x++ {
			for y := 0; y < work.height; y++ {
				visit(x, y)
			}
		}
	}
	return res
}

// growRun claims the maximal rectangle of type t whose top-left is x,y and
// clears it in work.
func growRun(work *Grid, x, y int, t Type) Run {
	w := 1
	for x+w < work.width && work.At(x+w, y) == t {
		w++
	}

	h := 1
heightLoop:
	for y+h < work.height {
		for xi := x; xi < x+w; xi++ {
			if work.At(xi, y+h) != t {
				break heightLoop
			}
		}
		h++
	}

	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			work.Set(xx, yy, Clear)
		}
	}
	return Run{X: x, Y: y, W: w, H: h, Type: t}
}
