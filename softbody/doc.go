// Package softbody implements the supplementary point-mass network named in
// spec.md's Non-goals: a deformable path that sits outside the rigid-body
// core (skeleton/constraint/lcp) and never feeds it forces or read state.
// A PointMassSystem is a plain mass-spring network integrated with symplectic
// Euler, grounded on the damped-spring force law in
// other_examples/jakecoffman-cp__dampedspring.go and the explicit chain
// integration in other_examples/san-kum-dynsim__spring_mass.go.
package softbody
