package control

import "go.rigidcore.dev/engine/skeleton"

// JointController drives a single generalized coordinate's actuator force
// toward a target position via a PID loop, writing the result into the
// coordinate's Tau field each step.
type JointController struct {
	Coord  *skeleton.GenCoord
	PID    *PIDController
	Target float64
}

// NewJointController returns a controller holding coord at target via pid.
func NewJointController(coord *skeleton.GenCoord, pid *PIDController, target float64) *JointController {
	return &JointController{Coord: coord, PID: pid, Target: target}
}

// Update computes the position error against Target and writes the PID
// output into the coordinate's generalized force.
func (jc *JointController) Update(dt float64) {
	err := jc.Target - jc.Coord.Q
	jc.Coord.Tau = jc.PID.Next(err, dt)
}
