package sim

import (
	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/dynamo"
	"github.com/san-kum/heartswarm/internal/integrators"
	"github.com/san-kum/heartswarm/internal/physics"
	"github.com/san-kum/heartswarm/internal/swarm"
)

// State is everything one tick reads and writes. It is owned by a Loop and
// touched only from the host's goroutine.
type State struct {
	Trails  []swarm.Trail
	Path    physics.Path
	Pointer physics.Pointer
	Width   float64
	Height  float64
	Config  config.Config
}

// Center returns the middle of the canvas, where the curve is anchored.
func (s *State) Center() dynamo.Vec2 {
	return dynamo.Vec2{X: s.Width / 2, Y: s.Height / 2}
}

// Frame is handed to observers after every completed tick.
type Frame struct {
	Index   uint64
	State   *State
	Results []integrators.Result
}

type Observer interface {
	OnFrame(f Frame)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

// Stats counts trail outcomes and recovered faults since the loop was built.
type Stats struct {
	Frames   uint64
	Advanced uint64
	Skipped  uint64
	Faulted  uint64
	Panics   uint64
}
