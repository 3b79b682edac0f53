// Package control houses the actuator-side PID control loop the core's
// ambient stack carries alongside the physics kernel: a per-DOF controller
// that turns a target position into the generalized force a joint's motor
// applies, grounded on the teacher's control.basicPID block.
package control
