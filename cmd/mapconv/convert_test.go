package main

import (
	"testing"

	"github.com/l1jgo/platformer/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConvertSketch(t *testing.T) {
	sketch := []string{
		"#        #",
		"# 1  E  2#",
		"#@  ^  ~ #",
		"#====#####",
		"",
	}
	m, err := convert(sketch, 10)
	require.NoError(t, err)

	assert.Equal(t, 10, m.Width)
	assert.Equal(t, 4, m.Height, "trailing blank lines are dropped")
	require.Len(t, m.Layers, 2)
	ground, decor := m.Layers[0], m.Layers[1]
	assert.Equal(t, "ground", ground.Name)
	require.Len(t, ground.Properties, 1)
	assert.Equal(t, data.PropertyEntry{Name: "collidable", Type: "bool", Value: "true"}, ground.Properties[0])
	assert.Equal(t, "1,2,2,2,2,1,1,1,1,1", ground.Data[3])
	assert.Equal(t, "1,0,0,0,0,0,0,0,0,1", ground.Data[2], "objects and decoration leave the ground empty")
	assert.Equal(t, "decor", decor.Name)
	assert.Empty(t, decor.Properties)
	assert.Equal(t, "0,0,0,0,0,0,0,3,0,0", decor.Data[2])

	names := map[string]data.ObjectEntry{}
	for _, o := range m.Objects {
		names[o.Name] = o
	}
	require.Contains(t, names, "player")
	assert.Equal(t, 10.0, names["player"].X)
	assert.Equal(t, 20.0, names["player"].Y)
	assert.Equal(t, playerComponents, names["player"].Components)

	require.Contains(t, names, "enemy1")
	assert.Contains(t, names["enemy1"].Components, "path=node1|node2")
	assert.Contains(t, names, "spikes_4_2")
	assert.Contains(t, names, "node1")
	assert.Empty(t, names["node1"].Glyph, "nodes are invisible")
}

func TestConvertedMapLoads(t *testing.T) {
	m, err := convert([]string{"@ ~", "###"}, 16)
	require.NoError(t, err)

	raw, err := yaml.Marshal(m)
	require.NoError(t, err)

	tm, err := data.ParseMap(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, tm.Width)
	assert.Equal(t, 2, tm.Height)
	assert.Equal(t, 3, tm.CollidableCount())
	assert.True(t, tm.IsTileCollidable(1, 1))
	assert.False(t, tm.IsTileCollidable(1, 0))
	assert.False(t, tm.IsTileCollidable(2, 0), "decoration does not collide")
	require.Len(t, tm.Objects, 1)
	assert.Equal(t, '@', tm.Objects[0].Glyph)
}

func TestConvertErrors(t *testing.T) {
	_, err := convert([]string{"", "  "}, 16)
	assert.Error(t, err)

	_, err = convert([]string{"E  ", "###"}, 16)
	assert.Error(t, err, "enemy without nodes")

	_, err = convert([]string{"1 1", "###"}, 16)
	assert.Error(t, err, "duplicate node")
}
