package control

import "github.com/san-kum/heartswarm/internal/sim"

// Host is the per-refresh routine shared by the window backends: feed keys
// and the pointer, follow window size changes, fire the pending frame.
type Host struct {
	Loop  *sim.Loop
	Sched *sim.FrameScheduler
	Panel *Panel

	width, height int
}

func NewHost(loop *sim.Loop, sched *sim.FrameScheduler, panel *Panel) *Host {
	st := loop.State()
	return &Host{
		Loop:   loop,
		Sched:  sched,
		Panel:  panel,
		width:  int(st.Width),
		height: int(st.Height),
	}
}

// Keys handles the keys typed since the last refresh and reports whether the
// host should quit.
func (h *Host) Keys(keys []string) bool {
	for _, k := range keys {
		if h.Panel.HandleKey(k) {
			h.Loop.Stop()
			return true
		}
	}
	return false
}

// Pointer forwards a pointer position, or a leave when it is outside the
// window.
func (h *Host) Pointer(x, y float64, inside bool) {
	if !inside {
		h.Loop.PointerLeave()
		return
	}
	h.Loop.SetPointer(x, y)
}

// Resize reports whether the window size changed and, if so, resizes the
// loop.
func (h *Host) Resize(w, hgt int) bool {
	if w <= 0 || hgt <= 0 || (w == h.width && hgt == h.height) {
		return false
	}
	h.width, h.height = w, hgt
	h.Loop.Resize(float64(w), float64(hgt))
	return true
}

// Frame fires the pending frame unless paused.
func (h *Host) Frame() bool {
	if h.Panel.Paused {
		return false
	}
	return h.Sched.Fire()
}
