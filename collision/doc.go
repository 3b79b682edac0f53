// Package collision implements the narrow-phase dispatch table of spec §4.4:
// closed-form sphere-sphere, separating-axis box-box, and MPR for every
// other primitive pair, all driving the shared support/center functions in
// spatialmath. Grounded on the teacher's motionplan.collisionEntities/
// collisionGraph dispatch pattern (named pairwise entities, deduplicated
// pair iteration), generalized from "any two geometries" to the specific
// primitive-pair table the spec requires.
package collision
