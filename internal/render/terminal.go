package render

import (
	"math"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/platformer/internal/geom"
	"github.com/l1jgo/platformer/internal/input"
)

const defaultCell = 16

// Terminal draws frames on a tcell screen, one cell per tile. The cell size
// is taken from the first map in the frame; the camera sits at the screen
// center.
type Terminal struct {
	screen tcell.Screen
	width  int
	height int
	tile   tcell.Style
	sprite tcell.Style
	status tcell.Style
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		tile:   tcell.StyleDefault.Foreground(tcell.ColorGray),
		sprite: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		status: tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true),
	}
}

// SetViewport limits drawing to the top-left w x h cells. Zero means the
// whole screen.
func (t *Terminal) SetViewport(w, h int) {
	t.width, t.height = max(w, 0), max(h, 0)
}

func (t *Terminal) size() (int, int) {
	w, h := t.screen.Size()
	if t.width > 0 {
		w = min(w, t.width)
	}
	if t.height > 0 {
		h = min(h, t.height)
	}
	return w, h
}

func (t *Terminal) Render(f Frame) error {
	base := tcell.StyleDefault
	if f.Background != "" {
		if c := tcell.GetColor(f.Background); c != tcell.ColorDefault {
			base = base.Background(c)
		}
	}
	t.screen.SetStyle(base)
	t.screen.Clear()

	w, h := t.size()
	cellW, cellH := float64(defaultCell), float64(defaultCell)
	if len(f.Maps) > 0 {
		cellW, cellH = f.Maps[0].Map.TileWidth, f.Maps[0].Map.TileHeight
	}
	var cam geom.Vector2
	if f.HasCamera {
		cam = f.Camera.Position
	}
	toCell := func(p geom.Vector2) (int, int) {
		return int(math.Floor((p.X-cam.X)/cellW)) + w/2,
			int(math.Floor((p.Y-cam.Y)/cellH)) + h/2
	}

	for _, mv := range f.Maps {
		if !mv.Visible {
			continue
		}
		m := mv.Map
		for _, layer := range m.Layers {
			if !layer.Visible {
				continue
			}
			for y, row := range layer.Tiles {
				for x, gid := range row {
					if gid == 0 {
						continue
					}
					glyph := '#'
					if def, ok := m.TileDef(gid); ok && def.Glyph != 0 {
						glyph = def.Glyph
					}
					cx, cy := toCell(m.TileCenter(x, y).Add(mv.Origin))
					t.set(cx, cy, glyph, t.tile.Background(bg(base)), w, h)
				}
			}
		}
	}

	for _, s := range f.Sprites {
		if !s.Visible {
			continue
		}
		glyph := s.Glyph
		if glyph == 0 {
			glyph = '@'
		}
		if s.FlipH {
			glyph = mirror(glyph)
		}
		cx, cy := toCell(s.Position)
		t.set(cx, cy, glyph, t.sprite.Background(bg(base)), w, h)
	}

	if f.Status != "" {
		for i, r := range []rune(f.Status) {
			t.set(i, 0, r, t.status, w, h)
		}
	}

	t.screen.Show()
	return nil
}

func (t *Terminal) set(x, y int, r rune, style tcell.Style, w, h int) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

func bg(s tcell.Style) tcell.Color {
	_, b, _ := s.Decompose()
	return b
}

// mirror swaps direction-bearing glyphs for horizontally flipped sprites.
func mirror(r rune) rune {
	switch r {
	case '<':
		return '>'
	case '>':
		return '<'
	case '(':
		return ')'
	case ')':
		return '('
	case '/':
		return '\\'
	case '\\':
		return '/'
	}
	return r
}

// ParseKey names a terminal key the way bindings refer to it: letters are
// lowercased, the space bar is "space" and special keys use their lowercased
// tcell names ("left", "enter", "esc").
func ParseKey(k tcell.Key, r rune, _ tcell.ModMask) input.Key {
	if k == tcell.KeyRune {
		if r == ' ' {
			return "space"
		}
		return input.Key(string(unicode.ToLower(r)))
	}
	if name, ok := tcell.KeyNames[k]; ok {
		return input.Key(strings.ToLower(name))
	}
	return ""
}

// KeyFromEvent is ParseKey for a tcell key event.
func KeyFromEvent(ev *tcell.EventKey) input.Key {
	return ParseKey(ev.Key(), ev.Rune(), ev.Modifiers())
}

// IsQuit reports whether a key event asks to leave the game.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return true
	}
	return false
}
