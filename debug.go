package grove

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame timing. Only populated when the engine is in
// debug mode.
type frameStats struct {
	inputTime   time.Duration
	processTime time.Duration
	drawTime    time.Duration
	events      int
	nodes       int
}

// SetDebugMode enables panics on disposed-node use, tree shape warnings and
// per-frame timing logs.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// DebugMode reports whether debug mode is on.
func (e *Engine) DebugMode() bool {
	return e.debug
}

// debugLog writes the frame's timing at debug level.
func (e *Engine) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	e.log.Debug("frame",
		zap.Duration("input", stats.inputTime),
		zap.Duration("process", stats.processTime),
		zap.Duration("draw", stats.drawTime),
		zap.Duration("total", stats.inputTime+stats.processTime+stats.drawTime),
		zap.Int("events", stats.events),
		zap.Int("nodes", stats.nodes),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("grove debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if n sits deeper than debugMaxTreeDepth.
func (e *Engine) debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		e.log.Warn("tree depth exceeds threshold",
			zap.String("node", n.Name), zap.Int("depth", depth), zap.Int("threshold", debugMaxTreeDepth))
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns if n has more than debugMaxChildCount children.
func (e *Engine) debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		e.log.Warn("child count exceeds threshold",
			zap.String("node", n.Name), zap.Int("children", len(n.children)), zap.Int("threshold", debugMaxChildCount))
	}
}
