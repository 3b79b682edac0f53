package constraint

import (
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/skeleton"
)

// RelativePointVelocity returns the world-frame velocity of body1's material
// point at worldPoint minus body2's, for callers (e.g. the world package)
// choosing a physically motivated initial friction direction.
func RelativePointVelocity(body1, body2 *skeleton.BodyNode, worldPoint r3.Vector) r3.Vector {
	return pointVelocity(body1, worldPoint).Sub(pointVelocity(body2, worldPoint))
}
