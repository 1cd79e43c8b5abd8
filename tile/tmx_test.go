package tile

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="2">
 <tileset firstgid="1" name="blocks" tilewidth="16" tileheight="16" tilecount="4" columns="4">
  <tile id="0">
   <properties>
    <property name="type" value="obstacle"/>
   </properties>
  </tile>
  <tile id="1">
   <properties>
    <property name="type" value="breakable"/>
   </properties>
  </tile>
  <tile id="2">
   <properties>
    <property name="type" value="goal"/>
   </properties>
  </tile>
 </tileset>
 <layer id="1" name="level" width="4" height="3">
  <data encoding="csv">
1,1,1,1,
0,2,0,3,
4,0,0,1
</data>
 </layer>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="1" x="8" y="20"/>
 </objectgroup>
</map>
`

func TestGridFromTMX(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/sample.tmx": &fstest.MapFile{Data: []byte(sampleTMX)},
	}

	g, err := GridFromTMX(fsys, "levels/sample.tmx", "")
	require.NoError(t, err)

	want := MustParseGrid(`
		####
		sx.g
		#..#
	`)
	assert.Equal(t, want, g)
}

func TestGridFromTMXMissingLayer(t *testing.T) {
	fsys := fstest.MapFS{
		"sample.tmx": &fstest.MapFile{Data: []byte(sampleTMX)},
	}
	_, err := GridFromTMX(fsys, "sample.tmx", "walls")
	assert.Error(t, err)
}

func TestGridFromTMXMissingFile(t *testing.T) {
	_, err := GridFromTMX(fstest.MapFS{}, "nope.tmx", "")
	assert.Error(t, err)
}
