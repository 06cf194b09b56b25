package control

import (
	"strings"
	"testing"

	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/render"
	"github.com/san-kum/heartswarm/internal/sim"
)

func testPanel(t *testing.T) *Panel {
	t.Helper()
	cfg := *config.DefaultConfig()
	cfg.Seed = 3
	loop := sim.New(cfg, render.Discard{})
	if err := loop.Start(&sim.FrameScheduler{}); err != nil {
		t.Fatal(err)
	}
	return NewPanel(loop, nil)
}

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"+", MoreParticles},
		{"=", MoreParticles},
		{"-", FewerParticles},
		{"s", SmallerParticles},
		{"S", BiggerParticles},
		{"c", NextScheme},
		{"[", Slower},
		{"]", Faster},
		{" ", TogglePause},
		{"q", Quit},
		{"x", None},
	}
	for _, tt := range tests {
		if got := ActionForKey(tt.key); got != tt.want {
			t.Errorf("key %q: got %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestPanel_Counts(t *testing.T) {
	p := testPanel(t)

	p.Handle(MoreParticles)
	if got := p.loop.Config().ParticleCount; got != 37 {
		t.Errorf("expected 37, got %d", got)
	}
	if got := len(p.loop.State().Trails); got != 37 {
		t.Errorf("expected 37 trails, got %d", got)
	}

	for i := 0; i < 30; i++ {
		p.Handle(FewerParticles)
	}
	if got := p.loop.Config().ParticleCount; got != config.MinParticleCount {
		t.Errorf("expected clamp to %d, got %d", config.MinParticleCount, got)
	}
}

func TestPanel_Tunables(t *testing.T) {
	p := testPanel(t)

	p.Handle(Faster)
	p.Handle(Faster)
	if got := p.loop.Config().Speed; got != 1.2 {
		t.Errorf("expected speed 1.2, got %v", got)
	}
	for i := 0; i < 20; i++ {
		p.Handle(Slower)
	}
	if got := p.loop.Config().Speed; got != 0 {
		t.Errorf("expected speed 0, got %v", got)
	}

	for i := 0; i < 10; i++ {
		p.Handle(LessInfluence)
	}
	if got := p.loop.Config().MouseInfluence; got != 0 {
		t.Errorf("expected influence 0, got %d", got)
	}

	p.Handle(SmallerParticles)
	if got := p.loop.Config().ParticleSize; got != 9 {
		t.Errorf("expected size 9, got %d", got)
	}

	p.Handle(NextScheme)
	if got := p.loop.Config().ColorScheme; got != "red" {
		t.Errorf("expected red, got %s", got)
	}

	p.Handle(ToggleOutline)
	if !p.loop.Config().ShowHeartOutline {
		t.Error("outline should be on")
	}
}

func TestPanel_Toggles(t *testing.T) {
	p := testPanel(t)

	if p.Handle(TogglePause) || !p.Paused {
		t.Error("pause not toggled")
	}
	if p.Handle(ToggleFullscreen) || !p.Fullscreen {
		t.Error("fullscreen not toggled")
	}
	if p.Handle(TogglePanel) || p.ShowPanel {
		t.Error("panel not hidden")
	}
	if !p.HandleKey("q") {
		t.Error("q should quit")
	}
	if p.HandleKey("x") {
		t.Error("unbound key should not quit")
	}
}

func TestPanel_Lines(t *testing.T) {
	p := testPanel(t)
	p.Handle(TogglePause)

	out := strings.Join(p.Lines(), "\n")
	for _, want := range []string{"particles  32", "scheme     rainbow", "outline    off", "paused"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}
}
