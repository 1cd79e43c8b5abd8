package tile

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	_ "image/png"

	_ "golang.org/x/image/bmp"
)

var (
	ErrEmptyGrid         = errors.New("tile: grid has no cells")
	ErrUnsupportedFormat = errors.New("tile: unsupported image format")
)

// Grid is a width x height field of tile types stored row-major.
type Grid struct {
	width  int
	height int
	cells  []Type
}

// NewGrid returns an all-Clear grid. Non-positive sizes give an empty grid.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		return &Grid{}
	}
	return &Grid{width: width, height: height, cells: make([]Type, width*height)}
}

func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.height
}

// Empty reports whether the grid has zero width or height.
func (g *Grid) Empty() bool {
	return g.Width() == 0 || g.Height() == 0
}

func (g *Grid) inBounds(x, y int) bool {
	return g != nil && x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the type at x,y. Out-of-range cells read as Clear.
func (g *Grid) At(x, y int) Type {
	if !g.inBounds(x, y) {
		return Clear
	}
	return g.cells[y*g.width+x]
}

// Set writes t at x,y; out-of-range writes are dropped.
func (g *Grid) Set(x, y int, t Type) {
	if !g.inBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = t
}

func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := &Grid{width: g.width, height: g.height, cells: make([]Type, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Type) int {
	if g == nil {
		return 0
	}
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// Image renders the grid back into its encoding colors, one pixel per cell.
func (g *Grid) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			img.SetRGBA(x, y, Color(g.At(x, y)))
		}
	}
	return img
}

// GridFromImage classifies every pixel of img.
func GridFromImage(img image.Image) *Grid {
	if img == nil {
		return &Grid{}
	}
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.cells[y*g.width+x] = Classify(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return g
}

// DecodeGrid decodes a PNG or BMP level bitmap.
func DecodeGrid(r io.Reader) (*Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("tile: decode level image: %w", err)
	}
	g := GridFromImage(img)
	if g.Empty() {
		return nil, ErrEmptyGrid
	}
	return g, nil
}

var asciiTypes = map[rune]Type{
	'.': Clear,
	'#': Obstacle,
	'x': Breakable,
	'o': Hole,
	'g': Goal,
	's': Spawn,
}

// ParseGrid builds a grid from rows of text. Blank lines and surrounding
// spaces are ignored. Legend: . clear, # obstacle, x breakable, o hole,
// g goal, s spawn.
func ParseGrid(src string) (*Grid, error) {
	var rows []string
	sc := bufio.NewScanner(strings.NewReader(src))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}

	width := len([]rune(rows[0]))
	g := NewGrid(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("tile: row %d has %d cells, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			t, ok := asciiTypes[r]
			if !ok {
				return nil, fmt.Errorf("tile: unknown cell %q at %d,%d", r, x, y)
			}
			g.cells[y*width+x] = t
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures known to be valid.
func MustParseGrid(src string) *Grid {
	g, err := ParseGrid(src)
	if err != nil {
		panic(err)
	}
	return g
}

// String renders the grid in the ParseGrid legend.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			for r, t := range asciiTypes {
				if t == g.At(x, y) {
					sb.WriteRune(r)
					break
				}
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
