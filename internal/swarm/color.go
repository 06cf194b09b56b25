package swarm

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParticleAlpha is the fixed opacity of every particle disc.
const ParticleAlpha = 0.1

// Scheme selects the hue assignment of a trail set.
type Scheme int

const (
	Rainbow Scheme = iota
	Red
	Blue
	Green
	Monochrome
)

var schemeNames = map[Scheme]string{
	Rainbow:    "rainbow",
	Red:        "red",
	Blue:       "blue",
	Green:      "green",
	Monochrome: "monochrome",
}

// SchemeNames lists the selectable schemes in cycle order.
var SchemeNames = []string{"rainbow", "red", "blue", "green", "monochrome"}

// ParseScheme maps a scheme name to a Scheme. Unknown names select Rainbow.
func ParseScheme(name string) Scheme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "red":
		return Red
	case "blue":
		return Blue
	case "green":
		return Green
	case "monochrome":
		return Monochrome
	default:
		return Rainbow
	}
}

func (s Scheme) String() string {
	if n, ok := schemeNames[s]; ok {
		return n
	}
	return "rainbow"
}

// NextScheme returns the scheme name following name in SchemeNames.
func NextScheme(name string) string {
	cur := ParseScheme(name).String()
	for i, n := range SchemeNames {
		if n == cur {
			return SchemeNames[(i+1)%len(SchemeNames)]
		}
	}
	return SchemeNames[0]
}

// HSLA is a particle color. H in degrees (may exceed 360), S and L in
// percent, A in [0, 1].
type HSLA struct {
	H, S, L, A float64
}

// NRGBA converts to a non-premultiplied 8-bit color.
func (c HSLA) NRGBA() color.NRGBA {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, c.S/100, c.L/100).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(c.A) * 255))}
}

// CSS renders the color as a css hsla() value.
func (c HSLA) CSS() string {
	return "hsla(" + ftoa(c.H) + "," + ftoa(c.S) + "%," + ftoa(c.L) + "%," + ftoa(c.A) + ")"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
