package tile

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
)

// Tiled property and object group names understood by GridFromTMX.
const (
	TMXTypeProperty = "type"
	TMXSpawnGroup   = "PlayerSpawn"
)

// GridFromTMX reads a tile layer of a Tiled map into a grid. layerName picks
// the layer; empty selects the first tile layer. Each tile's type comes from
// its tileset "type" property and defaults to Obstacle. The first object of
// the PlayerSpawn object group, if any, marks the spawn cell.
func GridFromTMX(fsys fs.FS, tmxPath, layerName string) (*Grid, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("tile: load TMX %s: %w", tmxPath, err)
	}
	if levelMap.Width <= 0 || levelMap.Height <= 0 {
		return nil, ErrEmptyGrid
	}

	var layer *tiled.Layer
	for _, l := range levelMap.Layers {
		if layerName == "" || l.Name == layerName {
			layer = l
			break
		}
	}
	if layer == nil {
		return nil, fmt.Errorf("tile: TMX %s has no layer %q", tmxPath, layerName)
	}

	g := NewGrid(levelMap.Width, levelMap.Height)
	for y := 0; y < levelMap.Height; y++ {
		for x := 0; x < levelMap.Width; x++ {
			idx := y*levelMap.Width + x
			if idx >= len(layer.Tiles) {
				continue
			}
			lt := layer.Tiles[idx]
			if lt == nil || lt.IsNil() {
				continue
			}
			t := Obstacle
			if lt.Tileset != nil {
				if tilesetTile, err := lt.Tileset.GetTilesetTile(lt.ID); err == nil {
					if name := tilesetTile.Properties.GetString(TMXTypeProperty); name != "" {
						parsed, err := ParseType(name)
						if err != nil {
							return nil, fmt.Errorf("tile: TMX %s cell %d,%d: %w", tmxPath, x, y, err)
						}
						t = parsed
					}
				}
			}
			g.Set(x, y, t)
		}
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != TMXSpawnGroup || len(og.Objects) == 0 {
			continue
		}
		o := og.Objects[0]
		if levelMap.TileWidth > 0 && levelMap.TileHeight > 0 {
			g.Set(int(o.X)/levelMap.TileWidth, int(o.Y)/levelMap.TileHeight, Spawn)
		}
		break
	}

	return g, nil
}
