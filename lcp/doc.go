// Package lcp implements the boxed Projected-Gauss-Seidel solver of spec
// §4.6: it drives the mixed linear complementarity problem A·x = b + w,
// lo <= x <= hi, assembled implicitly from a list of constraint.Constraint
// rows, without ever materializing A. Friction rows rescale their bounds
// against the coupled normal row's current impulse (Findex) every sweep.
package lcp
