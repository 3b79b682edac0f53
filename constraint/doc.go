// Package constraint implements the polymorphic constraint layer of spec
// §4.5: contact, joint-limit, and weld constraints, each exposing the
// {dim, get_information, apply_unit_impulse, get_velocity_change,
// apply_impulse} capability set the LCP engine drives, plus the union-find
// grouping of skeletons sharing active contacts.
package constraint
