package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// minPixelRadius keeps sub-pixel discs visible on downscaled rasters.
const minPixelRadius = 0.5

// Raster is a software Surface over an RGBA image. Logical coordinates are
// multiplied by Scale to get pixel coordinates.
type Raster struct {
	img   *image.RGBA
	scale float64
	z     *vector.Rasterizer
}

// NewRaster allocates a w×h pixel raster filled with opaque black.
func NewRaster(w, h int, scale float64) *Raster {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if scale <= 0 {
		scale = 1
	}
	r := &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
		z:     vector.NewRasterizer(1, 1),
	}
	r.Clear(color.NRGBA{0, 0, 0, 255})
	return r
}

// FitScale returns the largest scale that maps a logical w×h canvas into a
// pw×ph pixel raster.
func FitScale(pw, ph int, w, h float64) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return math.Min(float64(pw)/w, float64(ph)/h)
}

func (r *Raster) Image() *image.RGBA { return r.img }
func (r *Raster) Scale() float64     { return r.scale }

// Bounds returns the pixel rectangle.
func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

// Clear overwrites every pixel with c.
func (r *Raster) Clear(c color.NRGBA) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) Fade(c color.NRGBA) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Raster) FillCircle(x, y, radius float64, c color.NRGBA) {
	if c.A == 0 || radius <= 0 {
		return
	}
	cx, cy := x*r.scale, y*r.scale
	pr := math.Max(radius*r.scale, minPixelRadius)

	box := image.Rect(
		int(math.Floor(cx-pr))-1, int(math.Floor(cy-pr))-1,
		int(math.Ceil(cx+pr))+1, int(math.Ceil(cy+pr))+1,
	).Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}

	r.z.Reset(box.Dx(), box.Dy())
	r.z.DrawOp = draw.Over

	ox, oy := float32(cx-float64(box.Min.X)), float32(cy-float64(box.Min.Y))
	rr := float32(pr)
	k := float32(kappa) * rr
	r.z.MoveTo(ox+rr, oy)
	r.z.CubeTo(ox+rr, oy+k, ox+k, oy+rr, ox, oy+rr)
	r.z.CubeTo(ox-k, oy+rr, ox-rr, oy+k, ox-rr, oy)
	r.z.CubeTo(ox-rr, oy-k, ox-k, oy-rr, ox, oy-rr)
	r.z.CubeTo(ox+k, oy-rr, ox+rr, oy-k, ox+rr, oy)
	r.z.ClosePath()

	r.z.Draw(r.img, box, image.NewUniform(c), image.Point{})
}

// Snapshot returns a copy of the current frame.
func (r *Raster) Snapshot() *image.RGBA {
	c := image.NewRGBA(r.img.Bounds())
	copy(c.Pix, r.img.Pix)
	return c
}

// Resize reallocates the raster at w×h pixels and clears it to black.
func (r *Raster) Resize(w, h int, scale float64) {
	*r = *NewRaster(w, h, scale)
}
