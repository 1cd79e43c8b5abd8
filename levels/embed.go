package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/milk9111/blocklevel/tile"
)

// Dir is the on-disk directory checked before the embedded levels.
const Dir = "levels"

//go:embed *.png *.tmx *.txt
var LevelsFS embed.FS

// Load returns the grid of the named level. A file under Dir wins over the
// embedded copy so levels can be edited without a rebuild.
func Load(name string) (*tile.Grid, error) {
	clean := cleanLevelPath(name)
	if _, err := os.Stat(diskLevelPath(clean)); err == nil {
		return LoadFS(os.DirFS(Dir), clean)
	}
	return LoadFS(LevelsFS, clean)
}

// LoadFile reads a level from an arbitrary path on disk.
func LoadFile(p string) (*tile.Grid, error) {
	return LoadFS(os.DirFS(filepath.Dir(p)), filepath.ToSlash(filepath.Base(p)))
}

// LoadFS decodes name from fsys, picking the decoder from the extension:
// .png and .bmp bitmaps, .tmx Tiled maps, .txt ASCII grids.
func LoadFS(fsys fs.FS, name string) (*tile.Grid, error) {
	switch ext(name) {
	case ".png", ".bmp":
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("levels: open %s: %w", name, err)
		}
		defer f.Close()
		g, err := tile.DecodeGrid(f)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", name, err)
		}
		return g, nil
	case ".tmx":
		return tile.GridFromTMX(fsys, name, "")
	case ".txt":
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
		g, err := tile.ParseGrid(string(data))
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", name, err)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("levels: %s: %w", name, tile.ErrUnsupportedFormat)
	}
}

// Names lists the embedded levels in lexical order.
func Names() []string {
	var out []string
	_ = fs.WalkDir(LevelsFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if IsLevelFile(p) {
			out = append(out, p)
		}
		return nil
	})
	sort.Strings(out)
	return out
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskLevelPath(cleanLevelPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// IsLevelFile reports whether p has an extension LoadFS understands.
func IsLevelFile(p string) bool {
	switch ext(p) {
	case ".png", ".bmp", ".tmx", ".txt":
		return true
	}
	return false
}

func ext(p string) string {
	return strings.ToLower(path.Ext(filepath.ToSlash(p)))
}

func cleanLevelPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func diskLevelPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
