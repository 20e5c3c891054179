package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// ParseColor resolves a CSS hex value ("#a000f0") or a W3C color name
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return RGB{}, false
		}
		return fromColorful(c), true
	}
	c, ok := tcell.ColorNames[strings.ToLower(s)]
	if !ok {
		return RGB{}, false
	}
	r, g, b := c.RGB()
	return RGB{uint8(r), uint8(g), uint8(b)}, true
}

// MustParseColor panics on an unknown color, for compile-time constants only
func MustParseColor(s string) RGB {
	c, ok := ParseColor(s)
	if !ok {
		panic("render: invalid color " + s)
	}
	return c
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes src into dst in Lab space, alpha 0 keeps dst and 1 returns src
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	return fromColorful(dst.toColorful().BlendLab(src.toColorful(), alpha))
}

// Hex returns the CSS notation
func (c RGB) Hex() string {
	return c.toColorful().Hex()
}

// Palette converts RGB values to tcell colors for a color mode
type Palette struct {
	mode  string
	cache map[RGB]tcell.Color
	ansi  []tcell.Color
}

// NewPalette creates a palette for mode ("auto", "256" or "truecolor")
func NewPalette(mode string) *Palette {
	p := &Palette{mode: mode, cache: make(map[RGB]tcell.Color)}
	if mode == "256" {
		p.ansi = make([]tcell.Color, 0, 240)
		for i := 16; i < 256; i++ {
			p.ansi = append(p.ansi, tcell.PaletteColor(i))
		}
	}
	return p
}

// Color returns the tcell color of c
// In 256 mode the nearest palette entry is used, results are cached
func (p *Palette) Color(c RGB) tcell.Color {
	rgb := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	if p.ansi == nil {
		return rgb
	}
	if cached, ok := p.cache[c]; ok {
		return cached
	}
	fit := tcell.FindColor(rgb, p.ansi)
	p.cache[c] = fit
	return fit
}

// Style builds a tcell style from a foreground and background
func (p *Palette) Style(fg, bg RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(p.Color(fg)).Background(p.Color(bg))
}
