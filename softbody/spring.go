package softbody

// Spring connects two point masses by index into a PointMassSystem's Masses
// slice. Its force law follows DefaultSpringForce from the corpus's damped-
// spring constraint: a stiffness term proportional to stretch past
// RestLength, plus a damping term proportional to the closing velocity along
// the spring's axis.
type Spring struct {
	I, J                           int
	RestLength, Stiffness, Damping float64
}
