package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/heartswarm/internal/render"
	"github.com/san-kum/heartswarm/internal/sim"
	"golang.org/x/image/draw"
)

// GIFRecorder captures every n-th frame of a raster as an animation frame.
type GIFRecorder struct {
	src       *render.Raster
	width     int
	every     int
	delay     int
	maxFrames int
	anim      gif.GIF
}

// NewGIFRecorder samples src every `every` frames, scaling to width pixels
// wide (0 keeps the raster size). delay is in hundredths of a second.
func NewGIFRecorder(src *render.Raster, width, every, delay, maxFrames int) *GIFRecorder {
	if every < 1 {
		every = 1
	}
	return &GIFRecorder{
		src:       src,
		width:     width,
		every:     every,
		delay:     delay,
		maxFrames: maxFrames,
		anim:      gif.GIF{LoopCount: 0},
	}
}

func (g *GIFRecorder) OnFrame(f sim.Frame) {
	if f.Index%uint64(g.every) != 0 {
		return
	}
	if g.maxFrames > 0 && len(g.anim.Image) >= g.maxFrames {
		return
	}
	g.capture()
}

func (g *GIFRecorder) capture() {
	src := g.src.Snapshot()
	sb := src.Bounds()
	dst := sb
	if g.width > 0 && g.width != sb.Dx() {
		h := sb.Dy() * g.width / sb.Dx()
		if h < 1 {
			h = 1
		}
		dst = image.Rect(0, 0, g.width, h)
	}

	frame := image.NewPaletted(dst, palette.Plan9)
	if dst == sb {
		draw.FloydSteinberg.Draw(frame, dst, src, sb.Min)
	} else {
		scaled := image.NewRGBA(dst)
		draw.BiLinear.Scale(scaled, dst, src, sb, draw.Src, nil)
		draw.FloydSteinberg.Draw(frame, dst, scaled, image.Point{})
	}

	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

func (g *GIFRecorder) Len() int { return len(g.anim.Image) }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.anim.Image) == 0 {
		return fmt.Errorf("gif: no frames captured")
	}
	return gif.EncodeAll(w, &g.anim)
}

func (g *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
