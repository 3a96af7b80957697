package widget

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// FrameInterval is the tick period Animate expects.
const FrameInterval = time.Second / 60

// critically damped, settles in roughly a third of a second
var scrollSpring = harmonica.NewSpring(harmonica.FPS(60), 12.0, 1.0)

const settleEpsilon = 0.05

// Animate advances every smooth scroll by one frame and reports whether any
// is still moving.
func (t *Tree) Animate() bool {
	for id, l := range t.animating {
		l.scroll, l.velocity = scrollSpring.Update(l.scroll, l.velocity, l.target)
		if math.Abs(l.scroll-l.target) < settleEpsilon && math.Abs(l.velocity) < settleEpsilon {
			l.scroll = l.target
			l.velocity = 0
			l.moving = false
			delete(t.animating, id)
		}
	}
	return len(t.animating) > 0
}

// Animating reports whether any list is scrolling.
func (t *Tree) Animating() bool { return len(t.animating) > 0 }
