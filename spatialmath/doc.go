// Package spatialmath provides the Lie-group and spatial-vector math kernel
// used throughout the engine: rigid transforms on SE(3), orientation
// representations, the spatial adjoint/bracket operators used by the
// articulated-body algorithms, and the collision geometries consumed by the
// collision package.
package spatialmath
