package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/l1jgo/platformer/internal/data"
)

const (
	playerComponents = "bounding_rectangle;box_collider;character_controller;player;character(health=3,respawn=true)"
	enemyComponents  = "bounding_rectangle;box_collider;character_controller;ai_character(path=%s,loop=true);hazard(damage=1)"
	spikeComponents  = "bounding_rectangle;box_collider;hazard(damage=1,grace=1.5)"
)

// Global ids of the generated tileset. Solid tiles go to the collidable
// ground layer, the rest to the decor layer.
var (
	solidGIDs = map[rune]int{'#': 1, '=': 2}
	decorGIDs = map[rune]int{'~': 3}
)

func tileset() data.TilesetEntry {
	return data.TilesetEntry{
		Name:     "sketch",
		FirstGID: 1,
		Tiles: []data.TileEntry{
			{ID: 0, Glyph: "#"},
			{ID: 1, Glyph: "="},
			{ID: 2, Glyph: "~"},
		},
	}
}

// convert turns sketch lines into a map document. Short lines are padded
// with empty space.
func convert(lines []string, tile float64) (*data.MapFile, error) {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty sketch")
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	m := &data.MapFile{
		TileWidth:  tile,
		TileHeight: tile,
		Width:      width,
		Height:     len(lines),
		Background: "#000000",
		Tilesets:   []data.TilesetEntry{tileset()},
	}

	ground := make([]string, len(lines))
	decor := make([]string, len(lines))
	hasDecor := false
	nodes := map[int]string{}
	var enemies []data.ObjectEntry
	players := 0

	for y, line := range lines {
		solid := make([]string, width)
		deco := make([]string, width)
		runes := []rune(line)
		for x := range width {
			solid[x], deco[x] = "0", "0"
			if x >= len(runes) {
				continue
			}
			r := runes[x]
			if gid, ok := solidGIDs[r]; ok {
				solid[x] = strconv.Itoa(gid)
				continue
			}
			if gid, ok := decorGIDs[r]; ok {
				deco[x] = strconv.Itoa(gid)
				hasDecor = true
				continue
			}

			obj := data.ObjectEntry{X: float64(x) * tile, Y: float64(y) * tile, Width: tile, Height: tile}
			switch {
			case r == '@':
				players++
				obj.Name = "player"
				if players > 1 {
					obj.Name = fmt.Sprintf("player%d", players)
				}
				obj.Glyph = "@"
				obj.Components = playerComponents
				m.Objects = append(m.Objects, obj)
			case r == 'E':
				obj.Name = fmt.Sprintf("enemy%d", len(enemies)+1)
				obj.Glyph = "E"
				enemies = append(enemies, obj)
			case r == '^':
				obj.Name = fmt.Sprintf("spikes_%d_%d", x, y)
				obj.Glyph = "^"
				obj.Components = spikeComponents
				m.Objects = append(m.Objects, obj)
			case r >= '1' && r <= '9':
				n := int(r - '0')
				if _, dup := nodes[n]; dup {
					return nil, fmt.Errorf("line %d: node %d placed twice", y+1, n)
				}
				obj.Name = "node" + string(r)
				nodes[n] = obj.Name
				m.Objects = append(m.Objects, obj)
			}
		}
		ground[y] = strings.Join(solid, ",")
		decor[y] = strings.Join(deco, ",")
	}

	if len(enemies) > 0 {
		if len(nodes) == 0 {
			return nil, fmt.Errorf("enemies need at least one numbered patrol node")
		}
		order := make([]int, 0, len(nodes))
		for n := range nodes {
			order = append(order, n)
		}
		sort.Ints(order)
		path := make([]string, len(order))
		for i, n := range order {
			path[i] = nodes[n]
		}
		for _, e := range enemies {
			e.Components = fmt.Sprintf(enemyComponents, strings.Join(path, "|"))
			m.Objects = append(m.Objects, e)
		}
	}

	m.Layers = []data.LayerEntry{{
		Name:       "ground",
		Properties: []data.PropertyEntry{{Name: "collidable", Type: "bool", Value: "true"}},
		Data:       ground,
	}}
	if hasDecor {
		m.Layers = append(m.Layers, data.LayerEntry{Name: "decor", Data: decor})
	}
	return m, nil
}
