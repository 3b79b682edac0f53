package collision

import (
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/skeleton"
)

// Contact is a geometric narrow-phase record, per spec §3: a world-space
// contact point, a normal pointing from body2 toward body1, a penetration
// depth, and the two participating body nodes.
type Contact struct {
	Point    r3.Vector
	Normal   r3.Vector
	Depth    float64
	Body1    *skeleton.BodyNode
	Body2    *skeleton.BodyNode
}
