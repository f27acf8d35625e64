package timeline

import (
	"strconv"

	"github.com/phanxgames/bloom/layout"
)

// Group names beyond the per-kind element groups (see layout.Kind.String).
const (
	GroupContainer = "container"
	GroupMessage   = "message"
	GroupButton    = "button"
)

// Head returns the group of a flower kind's heads, e.g. "sunflower-head".
func Head(k layout.Kind) string { return k.String() + "-head" }

// Petals returns the group of a flower kind's petals.
func Petals(k layout.Kind) string { return k.String() + "-petal" }

// Leaves returns the group of a flower kind's stem leaves.
func Leaves(k layout.Kind) string { return k.String() + "-leaf" }

// Message returns the group of the n-th message line, counting from 1.
func Message(n int) string { return GroupMessage + "-" + strconv.Itoa(n) }
