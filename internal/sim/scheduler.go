package sim

import "context"

// Scheduler is the host's frame-callback mechanism: fn runs once, on the next
// display refresh.
type Scheduler interface {
	RequestFrame(fn func())
}

// FrameScheduler holds at most one pending frame callback. Hosts call Fire
// once per refresh.
type FrameScheduler struct {
	pending func()
}

func (s *FrameScheduler) RequestFrame(fn func()) { s.pending = fn }

func (s *FrameScheduler) Pending() bool { return s.pending != nil }

// Fire runs the pending callback and reports whether there was one.
func (s *FrameScheduler) Fire() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}

// RunFrames fires up to n frames, stopping early when no frame is pending or
// ctx is done. It returns the number of frames fired.
func RunFrames(ctx context.Context, s *FrameScheduler, n int) (int, error) {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return i, ctx.Err()
		default:
		}
		if !s.Fire() {
			return i, nil
		}
	}
	return n, nil
}
