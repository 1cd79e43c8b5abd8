package main

import (
	"path/filepath"
	"slices"

	"github.com/milk9111/blocklevel/levels"
	"github.com/milk9111/blocklevel/tile"
)

// levelSource names the level being played: an entry of the levels package,
// or a file on disk when path is set.
type levelSource struct {
	name string
	path string
}

func (s levelSource) load() (*tile.Grid, error) {
	if s.path != "" {
		return levels.LoadFile(s.path)
	}
	return levels.Load(s.name)
}

func (s levelSource) String() string {
	if s.path != "" {
		return s.path
	}
	return s.name
}

func (s levelSource) dir() string {
	return filepath.Dir(s.path)
}

// matches reports whether a changed file is this level.
func (s levelSource) matches(changed string) bool {
	if s.path != "" {
		a, errA := filepath.Abs(changed)
		b, errB := filepath.Abs(s.path)
		return errA == nil && errB == nil && a == b
	}
	return filepath.Base(changed) == filepath.Base(s.name)
}

// next cycles through the embedded levels. Disk files have no successor.
func (s levelSource) next() levelSource {
	if s.path != "" {
		return s
	}
	names := levels.Names()
	if len(names) == 0 {
		return s
	}
	i := slices.Index(names, filepath.Base(s.name))
	return levelSource{name: names[(i+1)%len(names)]}
}
