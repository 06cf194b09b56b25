package gui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/control"
	"github.com/san-kum/heartswarm/internal/sim"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColPanel   = rl.NewColor(10, 10, 10, 200)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
)

// rlSurface paints with raylib immediate-mode calls. It must be used between
// BeginTextureMode and EndTextureMode so the trails persist across frames.
type rlSurface struct {
	width, height int32
}

func (s *rlSurface) Fade(c color.NRGBA) {
	rl.DrawRectangle(0, 0, s.width, s.height, rl.NewColor(c.R, c.G, c.B, c.A))
}

func (s *rlSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), rl.NewColor(c.R, c.G, c.B, c.A))
}

// App is the raylib window host.
type App struct {
	host    *control.Host
	surface *rlSurface
	target  rl.RenderTexture2D
	logger  *log.Logger
}

func initWindow(cfg config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "heartswarm")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// RunRaylib opens a window, runs the loop until it is closed or q is pressed.
func RunRaylib(cfg config.Config, logger *log.Logger, opts ...sim.Option) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	surface := &rlSurface{width: int32(cfg.Width), height: int32(cfg.Height)}
	loop := sim.New(cfg, surface, append(opts, sim.WithLogger(logger))...)
	sched := &sim.FrameScheduler{}
	if err := loop.Start(sched); err != nil {
		return err
	}
	defer loop.Stop()

	app := &App{
		host:    control.NewHost(loop, sched, control.NewPanel(loop, logger)),
		surface: surface,
		logger:  logger,
	}
	app.loadTarget(surface.width, surface.height)
	defer func() { rl.UnloadRenderTexture(app.target) }()

	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) loadTarget(w, h int32) {
	a.target = rl.LoadRenderTexture(w, h)
	rl.BeginTextureMode(a.target)
	rl.ClearBackground(ColBg)
	rl.EndTextureMode()
}

// Update feeds input into the host and paints the next frame into the
// persistent render texture. It reports whether the app should quit.
func (a *App) Update() bool {
	var keys []string
	for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
		keys = append(keys, string(rune(c)))
	}
	if a.host.Keys(keys) {
		return true
	}

	if a.host.Panel.Fullscreen != rl.IsWindowFullscreen() {
		rl.ToggleFullscreen()
	}

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if a.host.Resize(w, h) {
		rl.UnloadRenderTexture(a.target)
		a.surface.width, a.surface.height = int32(w), int32(h)
		a.loadTarget(a.surface.width, a.surface.height)
		a.logger.Debug("window resized", "width", w, "height", h)
	}

	mouse := rl.GetMousePosition()
	a.host.Pointer(float64(mouse.X), float64(mouse.Y), rl.IsCursorOnScreen())

	rl.BeginTextureMode(a.target)
	a.host.Frame()
	rl.EndTextureMode()
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(a.target.Texture.Width), -float32(a.target.Texture.Height))
	rl.DrawTextureRec(a.target.Texture, src, rl.NewVector2(0, 0), rl.White)

	if a.host.Panel.ShowPanel {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	lines := a.host.Panel.Lines()
	rl.DrawRectangle(16, 16, 300, int32(len(lines))*20+44, ColPanel)
	rl.DrawText("heartswarm", 28, 24, 20, ColText)
	for i, line := range lines {
		rl.DrawText(line, 28, int32(52+i*20), 16, ColText)
	}
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 28, int32(60+len(lines)*20), 14, ColTextDim)
}
