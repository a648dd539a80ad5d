package animation

// Listener receives timeline lifecycle notifications. All callbacks run
// synchronously on the drawing thread, inside the operation that caused
// them.
type Listener interface {
	// OnAnimationStart is called when the timeline starts running.
	OnAnimationStart(t *Timeline)

	// OnAnimationStop is called when the timeline stops, either
	// explicitly or because a finite animation played all its loops.
	OnAnimationStop(t *Timeline)

	// OnAnimationRepeat is called whenever a render tick lands on frame
	// 0: on a loop wrap and on the first frame of a fresh run.
	OnAnimationRepeat(t *Timeline)

	// OnAnimationFrame is called before each frame is rendered.
	OnAnimationFrame(t *Timeline, frameNumber int)
}

// BaseListener is a no-op Listener. Embed it to implement only the
// callbacks you care about.
type BaseListener struct{}

func (BaseListener) OnAnimationStart(*Timeline)      {}
func (BaseListener) OnAnimationStop(*Timeline)       {}
func (BaseListener) OnAnimationRepeat(*Timeline)     {}
func (BaseListener) OnAnimationFrame(*Timeline, int) {}

// noOpListener is the default listener, so timelines never branch on
// listener presence.
var noOpListener Listener = BaseListener{}
