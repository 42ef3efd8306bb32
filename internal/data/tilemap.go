package data

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/l1jgo/platformer/internal/tilemap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// PropertyEntry is one typed property as written in a map file.
type PropertyEntry struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type,omitempty"`
	Value string `yaml:"value"`
}

// TileEntry describes one tile of a tileset.
type TileEntry struct {
	ID         int             `yaml:"id"`
	Glyph      string          `yaml:"glyph,omitempty"`
	Properties []PropertyEntry `yaml:"properties,omitempty"`
}

// TilesetEntry is a tileset; global ids of its tiles start at FirstGID.
type TilesetEntry struct {
	Name     string      `yaml:"name"`
	FirstGID int         `yaml:"first_gid"`
	Tiles    []TileEntry `yaml:"tiles"`
}

// LayerEntry is a tile layer. Data holds one comma-separated row of global
// ids per line; 0 is empty.
type LayerEntry struct {
	Name       string          `yaml:"name"`
	Visible    *bool           `yaml:"visible,omitempty"`
	Properties []PropertyEntry `yaml:"properties,omitempty"`
	Data       []string        `yaml:"data"`
}

// ObjectEntry is an object-layer entry. Components is the directive string
// that attaches components when the level is populated.
type ObjectEntry struct {
	Name       string          `yaml:"name,omitempty"`
	X          float64         `yaml:"x"`
	Y          float64         `yaml:"y"`
	Width      float64         `yaml:"width,omitempty"`
	Height     float64         `yaml:"height,omitempty"`
	Sprite     string          `yaml:"sprite,omitempty"`
	Glyph      string          `yaml:"glyph,omitempty"`
	Components string          `yaml:"components,omitempty"`
	Properties []PropertyEntry `yaml:"properties,omitempty"`
}

// MapFile is the on-disk map document.
type MapFile struct {
	TileWidth  float64        `yaml:"tile_width"`
	TileHeight float64        `yaml:"tile_height"`
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	Background string         `yaml:"background,omitempty"`
	Tilesets   []TilesetEntry `yaml:"tilesets"`
	Layers     []LayerEntry   `yaml:"layers"`
	Objects    []ObjectEntry  `yaml:"objects,omitempty"`
}

// LoadMap reads a YAML map file.
func LoadMap(path string, log *zap.Logger) (*tilemap.Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	m, err := ParseMap(raw, log)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", path, err)
	}
	return m, nil
}

// ParseMap decodes a YAML map document. Property values that fail their
// declared type keep the raw string and are logged.
func ParseMap(raw []byte, log *zap.Logger) (*tilemap.Map, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var file MapFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	return file.Build(log)
}

// Build converts the document into a tile map.
func (f *MapFile) Build(log *zap.Logger) (*tilemap.Map, error) {
	m, err := tilemap.New(f.TileWidth, f.TileHeight, f.Width, f.Height)
	if err != nil {
		return nil, err
	}
	m.Background = f.Background

	for _, ts := range f.Tilesets {
		set := tilemap.Tileset{
			Name:     ts.Name,
			FirstGID: ts.FirstGID,
			Tiles:    make(map[int]tilemap.TileDef, len(ts.Tiles)),
		}
		for _, t := range ts.Tiles {
			set.Tiles[t.ID] = tilemap.TileDef{
				Glyph:      glyphOf(t.Glyph),
				Properties: convertProperties(t.Properties, log.With(zap.String("tileset", ts.Name), zap.Int("tile", t.ID))),
			}
		}
		m.AddTileset(set)
	}

	for _, l := range f.Layers {
		tiles, err := parseRows(l.Data)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Name, err)
		}
		visible := true
		if l.Visible != nil {
			visible = *l.Visible
		}
		m.AddLayer(tilemap.Layer{
			Name:       l.Name,
			Visible:    visible,
			Properties: convertProperties(l.Properties, log.With(zap.String("layer", l.Name))),
			Tiles:      tiles,
		})
	}

	for _, o := range f.Objects {
		m.Objects = append(m.Objects, tilemap.Object{
			Name:       o.Name,
			X:          o.X,
			Y:          o.Y,
			Width:      o.Width,
			Height:     o.Height,
			Sprite:     o.Sprite,
			Glyph:      glyphOf(o.Glyph),
			Components: o.Components,
			Properties: convertProperties(o.Properties, log.With(zap.String("object", o.Name))),
		})
	}
	return m, nil
}

func convertProperties(entries []PropertyEntry, log *zap.Logger) tilemap.Properties {
	if len(entries) == 0 {
		return nil
	}
	props := make(tilemap.Properties, len(entries))
	for _, p := range entries {
		v, err := tilemap.ConvertProperty(p.Type, p.Value)
		if err != nil {
			log.Warn("malformed property, keeping raw value",
				zap.String("property", p.Name),
				zap.Error(err),
			)
		}
		props[p.Name] = v
	}
	return props
}

// parseRows reads comma-separated rows of global ids. Blank cells are empty.
func parseRows(rows []string) ([][]int, error) {
	out := make([][]int, 0, len(rows))
	for y, line := range rows {
		fields := strings.Split(line, ",")
		row := make([]int, len(fields))
		for x, field := range fields {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			row[x] = v
		}
		out = append(out, row)
	}
	return out, nil
}

func glyphOf(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
