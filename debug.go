package bloom

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	submitTime    time.Duration
	commandCount  int
	drawCallCount int
}

// debugLog reports timing and draw-call stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		"traverse", stats.traverseTime,
		"submit", stats.submitTime,
		"total", stats.traverseTime+stats.submitTime,
		"commands", stats.commandCount,
		"drawCalls", stats.drawCallCount,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("bloom debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth and debugMaxChildCount are the thresholds of the mount
// sanity checks.
const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugCheckTree walks a freshly mounted subtree and logs nodes that sit
// deeper than debugMaxTreeDepth or hold more than debugMaxChildCount children.
func (s *Scene) debugCheckTree(n *Node) {
	if !s.debug {
		return
	}
	n.Walk(func(c *Node) bool {
		depth := 0
		for p := c; p != nil; p = p.Parent {
			depth++
		}
		if depth > debugMaxTreeDepth {
			s.logger.Warn("tree too deep", "node", c.Name, "depth", depth, "max", debugMaxTreeDepth)
			return false
		}
		if len(c.children) > debugMaxChildCount {
			s.logger.Warn("too many children", "node", c.Name, "children", len(c.children), "max", debugMaxChildCount)
		}
		return true
	})
}

// countDrawCalls counts individual draw calls from the command list.
// Meshes and labels count as 1, particle commands as one batched call.
// Labels with a glow count the extra passes.
func countDrawCalls(commands []RenderCommand) int {
	count := 0
	for i := range commands {
		cmd := &commands[i]
		switch cmd.Type {
		case CommandText:
			count++
			if cmd.label != nil && cmd.label.Glow.A > 0 {
				count += 4
			}
		default:
			count++
		}
	}
	return count
}
