package peripheral

import (
	"strings"
	"sync"
	"time"

	"github.com/sarchlab/lifeboard/grid"
)

const (
	litGlyph   = "■ "
	unlitGlyph = "· "
)

// Render formats a pattern the way the terminal draws it.
func Render(p grid.Pattern) string {
	var sb strings.Builder

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			if p[row*grid.Cols+col] {
				sb.WriteString(litGlyph)
			} else {
				sb.WriteString(unlitGlyph)
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// HeadlessDisplay shows nothing but still holds each frame, so the tick
// cadence is kept.
type HeadlessDisplay struct{}

// Show sleeps for the hold duration.
func (HeadlessDisplay) Show(_ grid.Pattern, hold time.Duration) {
	time.Sleep(hold)
}

// FrameRecorder keeps every frame it is shown and never blocks. It is meant
// for virtual-time runs where the engine provides the cadence.
type FrameRecorder struct {
	lock   sync.Mutex
	frames []grid.Pattern
	limit  int
}

// NewFrameRecorder creates a recorder that keeps at most limit frames, the
// most recent ones. A zero limit keeps everything.
func NewFrameRecorder(limit int) *FrameRecorder {
	return &FrameRecorder{limit: limit}
}

// Show records the pattern.
func (r *FrameRecorder) Show(p grid.Pattern, _ time.Duration) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.frames = append(r.frames, p)
	if r.limit > 0 && len(r.frames) > r.limit {
		r.frames = r.frames[len(r.frames)-r.limit:]
	}
}

// Frames returns a copy of the recorded frames, oldest first.
func (r *FrameRecorder) Frames() []grid.Pattern {
	r.lock.Lock()
	defer r.lock.Unlock()

	frames := make([]grid.Pattern, len(r.frames))
	copy(frames, r.frames)

	return frames
}

// Last returns the most recent frame, if any.
func (r *FrameRecorder) Last() (grid.Pattern, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if len(r.frames) == 0 {
		return grid.Pattern{}, false
	}

	return r.frames[len(r.frames)-1], true
}
