package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells, each with the color of its brightest
// lit dot.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.NRGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.NRGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.NRGBA, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas size in
// sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, col color.NRGBA) {
	if x < 0 || y < 0 {
		return
	}

	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}

	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	if brightness(col) > brightness(c.Colors[cy][cx]) {
		c.Colors[cy][cx] = col
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.NRGBA{}
		}
	}
}

// FromImage lights every dot whose pixel has a channel above threshold.
// Pixel (x, y) of img maps to sub-pixel (x, y).
func (c *Canvas) FromImage(img *image.RGBA, threshold uint8) {
	c.Clear()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && y-b.Min.Y < c.Height*4; y++ {
		for x := b.Min.X; x < b.Max.X && x-b.Min.X < c.Width*2; x++ {
			px := img.RGBAAt(x, y)
			col := color.NRGBA{px.R, px.G, px.B, 255}
			if brightness(col) > threshold {
				c.Set(x-b.Min.X, y-b.Min.Y, col)
			}
		}
	}
}

// String returns the bare braille grid.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the grid with each run of equally colored cells wrapped in
// a lipgloss foreground style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			b.WriteString(styleFor(c.Colors[i][start]).Render(string(row[start:j])))
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func styleFor(col color.NRGBA) lipgloss.Style {
	if col.A == 0 {
		return lipgloss.NewStyle()
	}
	cf, _ := colorful.MakeColor(col)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(cf.Hex()))
}

func brightness(c color.NRGBA) uint8 {
	return max(c.R, c.G, c.B)
}
