// Package world orchestrates one simulation step across a collection of
// skeletons, per spec §2's per-step control flow: kinematics refresh,
// external force gather, collision detection, constraint assembly, LCP
// solve, impulse application, and integration.
package world
