package gui

import (
	"errors"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/control"
	"github.com/san-kum/heartswarm/internal/sim"
)

// imageSurface paints onto an offscreen ebiten image that is never cleared,
// so faded frames accumulate into trails.
type imageSurface struct {
	img *ebiten.Image
}

func (s *imageSurface) Fade(c color.NRGBA) {
	b := s.img.Bounds()
	vector.DrawFilledRect(s.img, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

func (s *imageSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

// Game is the ebiten window host.
type Game struct {
	host    *control.Host
	surface *imageSurface
	logger  *log.Logger
}

func newCanvas(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(color.Black)
	return img
}

// RunEbiten opens a window and runs the loop until it is closed or q is
// pressed.
func RunEbiten(cfg config.Config, logger *log.Logger, opts ...sim.Option) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("heartswarm")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	surface := &imageSurface{img: newCanvas(cfg.Width, cfg.Height)}
	loop := sim.New(cfg, surface, append(opts, sim.WithLogger(logger))...)
	sched := &sim.FrameScheduler{}
	if err := loop.Start(sched); err != nil {
		return err
	}
	defer loop.Stop()

	g := &Game{
		host:    control.NewHost(loop, sched, control.NewPanel(loop, logger)),
		surface: surface,
		logger:  logger,
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	var keys []string
	for _, r := range ebiten.AppendInputChars(nil) {
		keys = append(keys, string(r))
	}
	if g.host.Keys(keys) {
		return ebiten.Termination
	}

	if g.host.Panel.Fullscreen != ebiten.IsFullscreen() {
		ebiten.SetFullscreen(g.host.Panel.Fullscreen)
	}

	x, y := ebiten.CursorPosition()
	b := g.surface.img.Bounds()
	inside := x >= 0 && y >= 0 && x < b.Dx() && y < b.Dy() && ebiten.IsFocused()
	g.host.Pointer(float64(x), float64(y), inside)

	g.host.Frame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.surface.img, nil)
	if g.host.Panel.ShowPanel {
		ebitenutil.DebugPrint(screen, "heartswarm\n\n"+strings.Join(g.host.Panel.Lines(), "\n"))
	}
}

// Layout follows the window size, reallocating the canvas when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.host.Resize(outsideWidth, outsideHeight) {
		g.surface.img.Deallocate()
		g.surface.img = newCanvas(outsideWidth, outsideHeight)
		g.logger.Debug("window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return outsideWidth, outsideHeight
}
