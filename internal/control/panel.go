package control

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/heartswarm/internal/sim"
	"github.com/san-kum/heartswarm/internal/swarm"
)

type Action int

const (
	None Action = iota
	MoreParticles
	FewerParticles
	BiggerParticles
	SmallerParticles
	NextScheme
	Faster
	Slower
	MoreInfluence
	LessInfluence
	ToggleOutline
	ToggleFullscreen
	TogglePause
	TogglePanel
	Quit
)

const (
	CountStep     = 5
	SizeStep      = 1
	SpeedStep     = 0.1
	InfluenceStep = 10
	MaxSpeed      = 5.0
	MaxInfluence  = 300
)

var keyActions = map[string]Action{
	"+":      MoreParticles,
	"=":      MoreParticles,
	"-":      FewerParticles,
	"S":      BiggerParticles,
	"s":      SmallerParticles,
	"c":      NextScheme,
	"]":      Faster,
	"[":      Slower,
	"M":      MoreInfluence,
	"m":      LessInfluence,
	"o":      ToggleOutline,
	"f":      ToggleFullscreen,
	" ":      TogglePause,
	"space":  TogglePause,
	"h":      TogglePanel,
	"q":      Quit,
	"ctrl+c": Quit,
}

// ActionForKey maps a key string to its action, or None.
func ActionForKey(key string) Action {
	return keyActions[key]
}

// Panel holds the host-side toggles and pushes tunable changes into a loop.
type Panel struct {
	loop       *sim.Loop
	logger     *log.Logger
	Paused     bool
	ShowPanel  bool
	Fullscreen bool
}

func NewPanel(loop *sim.Loop, logger *log.Logger) *Panel {
	return &Panel{loop: loop, logger: logger, ShowPanel: true}
}

// Handle applies a. It reports whether the host should quit.
func (p *Panel) Handle(a Action) bool {
	cfg := p.loop.Config()

	switch a {
	case None:
		return false
	case Quit:
		return true
	case TogglePause:
		p.Paused = !p.Paused
		return false
	case TogglePanel:
		p.ShowPanel = !p.ShowPanel
		return false
	case ToggleFullscreen:
		p.Fullscreen = !p.Fullscreen
		return false
	case MoreParticles:
		cfg.ParticleCount += CountStep
	case FewerParticles:
		cfg.ParticleCount -= CountStep
	case BiggerParticles:
		cfg.ParticleSize += SizeStep
	case SmallerParticles:
		cfg.ParticleSize -= SizeStep
	case NextScheme:
		cfg.ColorScheme = swarm.NextScheme(cfg.ColorScheme)
	case Faster:
		cfg.Speed = math.Min(MaxSpeed, round1(cfg.Speed+SpeedStep))
	case Slower:
		cfg.Speed = math.Max(0, round1(cfg.Speed-SpeedStep))
	case MoreInfluence:
		cfg.MouseInfluence = min(MaxInfluence, cfg.MouseInfluence+InfluenceStep)
	case LessInfluence:
		cfg.MouseInfluence = max(0, cfg.MouseInfluence-InfluenceStep)
	case ToggleOutline:
		cfg.ShowHeartOutline = !cfg.ShowHeartOutline
	}

	p.loop.Configure(cfg)
	if p.logger != nil {
		p.logger.Debug("control", "action", a, "config", p.loop.Config())
	}
	return false
}

// HandleKey is ActionForKey followed by Handle.
func (p *Panel) HandleKey(key string) bool {
	return p.Handle(ActionForKey(key))
}

// Lines renders the controls panel, one entry per line.
func (p *Panel) Lines() []string {
	cfg := p.loop.Config()
	state := "running"
	if p.Paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("particles  %d  (+/-)", cfg.ParticleCount),
		fmt.Sprintf("size       %d  (s/S)", cfg.ParticleSize),
		fmt.Sprintf("speed      %.1f  ([/])", cfg.Speed),
		fmt.Sprintf("scheme     %s  (c)", cfg.ColorScheme),
		fmt.Sprintf("influence  %d  (m/M)", cfg.MouseInfluence),
		fmt.Sprintf("outline    %s  (o)", onOff(cfg.ShowHeartOutline)),
		fmt.Sprintf("state      %s  (space)", state),
		"h panel   q quit",
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (a Action) String() string {
	switch a {
	case MoreParticles:
		return "more-particles"
	case FewerParticles:
		return "fewer-particles"
	case BiggerParticles:
		return "bigger-particles"
	case SmallerParticles:
		return "smaller-particles"
	case NextScheme:
		return "next-scheme"
	case Faster:
		return "faster"
	case Slower:
		return "slower"
	case MoreInfluence:
		return "more-influence"
	case LessInfluence:
		return "less-influence"
	case ToggleOutline:
		return "toggle-outline"
	case ToggleFullscreen:
		return "toggle-fullscreen"
	case TogglePause:
		return "toggle-pause"
	case TogglePanel:
		return "toggle-panel"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}
