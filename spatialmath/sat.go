package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// BoxSATResult is the outcome of a box-box separating-axis test.
type BoxSATResult struct {
	Colliding bool
	// Depth is the penetration depth along the minimum-gap axis (positive
	// when colliding).
	Depth float64
	// Axis is the separating/penetration axis, in world space, pointing
	// from box A toward box B.
	Axis r3.Vector
}

// BoxBoxSAT runs the 15-axis separating-axis test between two oriented
// boxes, grounded on Ericson's precomputed R-matrix formulation ("Real-Time
// Collision Detection" ch. 4.4). poseA/poseB place each box in world space.
func BoxBoxSAT(a *Box, poseA *Pose, b *Box, poseB *Pose) BoxSATResult {
	rmA := poseA.Orientation().RotationMatrix()
	rmB := poseB.Orientation().RotationMatrix()
	centerA, centerB := poseA.Point(), poseB.Point()
	centerDist := centerB.Sub(centerA)

	// R[i][j] = rmA.Row(i) . rmB.Row(j) -- relative rotation.
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = rmA[i*3]*rmB[j*3] + rmA[i*3+1]*rmB[j*3+1] + rmA[i*3+2]*rmB[j*3+2]
		}
	}
	const eps = 1e-10
	var absR [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			absR[i][j] = math.Abs(r[i][j]) + eps
		}
	}

	// t[i] = rmA.Row(i) . centerDist -- center distance in A's frame.
	var t [3]float64
	for i := 0; i < 3; i++ {
		t[i] = rmA[i*3]*centerDist.X + rmA[i*3+1]*centerDist.Y + rmA[i*3+2]*centerDist.Z
	}

	hA := [3]float64{a.HalfSize.X, a.HalfSize.Y, a.HalfSize.Z}
	hB := [3]float64{b.HalfSize.X, b.HalfSize.Y, b.HalfSize.Z}

	best := math.Inf(-1)
	var bestAxis r3.Vector
	rowOf := func(m RotationMatrix, i int) r3.Vector {
		return r3.Vector{X: m[i*3], Y: m[i*3+1], Z: m[i*3+2]}
	}

	consider := func(gap float64, axis r3.Vector) {
		if gap > best {
			best = gap
			bestAxis = axis
		}
	}

	// 3 face axes from A.
	for i := 0; i < 3; i++ {
		proj := hB[0]*absR[i][0] + hB[1]*absR[i][1] + hB[2]*absR[i][2]
		gap := math.Abs(t[i]) - hA[i] - proj
		axis := rowOf(rmA, i)
		if t[i] < 0 {
			axis = axis.Mul(-1)
		}
		consider(gap, axis)
	}

	// 3 face axes from B.
	for j := 0; j < 3; j++ {
		tb := t[0]*r[0][j] + t[1]*r[1][j] + t[2]*r[2][j]
		proj := hA[0]*absR[0][j] + hA[1]*absR[1][j] + hA[2]*absR[2][j]
		gap := math.Abs(tb) - hB[j] - proj
		axis := rowOf(rmB, j)
		if tb < 0 {
			axis = axis.Mul(-1)
		}
		consider(gap, axis)
	}

	// 9 edge axes (a_i x b_j), skipping near-parallel (degenerate) pairs.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			l2 := 1 - r[i][j]*r[i][j]
			if l2 <= eps {
				continue
			}
			i1, i2 := (i+1)%3, (i+2)%3
			raw := math.Abs(t[i2]*r[i1][j]-t[i1]*r[i2][j]) - (hA[i1]*absR[i2][j] + hA[i2]*absR[i1][j]) -
				(hB[(j+1)%3]*absR[i][(j+2)%3] + hB[(j+2)%3]*absR[i][(j+1)%3])
			gap := raw / math.Sqrt(l2)
			axis := rowOf(rmA, i).Cross(rowOf(rmB, j))
			if axis.Dot(centerDist) < 0 {
				axis = axis.Mul(-1)
			}
			consider(gap, axis)
		}
	}

	if n := bestAxis.Norm(); n > 1e-12 {
		bestAxis = bestAxis.Mul(1 / n)
	}
	// absR carries an eps padding, so exactly touching boxes come out with a
	// gap a few eps below zero; that much is still treated as touching.
	slack := eps * (hA[0] + hA[1] + hA[2] + hB[0] + hB[1] + hB[2])
	return BoxSATResult{Colliding: best < -slack, Depth: -best, Axis: bestAxis}
}
