package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blocklevel/obj"
	"github.com/milk9111/blocklevel/tile"
)

// Textures maps tile types to images and serves as the level's texture
// lookup.
type Textures map[tile.Type]*ebiten.Image

// LoadTextures loads every path through LoadImage.
func LoadTextures(paths map[tile.Type]string) (Textures, error) {
	out := make(Textures, len(paths))
	for t, p := range paths {
		img, err := LoadImage(p)
		if err != nil {
			return nil, fmt.Errorf("render: texture for %s: %w", t, err)
		}
		out[t] = img
	}
	return out, nil
}

func (t Textures) Lookup(typ tile.Type) obj.Texture {
	img, ok := t[typ]
	if !ok || img == nil {
		return nil
	}
	return img
}
