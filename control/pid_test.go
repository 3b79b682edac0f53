package control_test

import (
	"testing"

	"go.viam.com/test"

	"go.rigidcore.dev/engine/control"
)

func TestPIDProportionalOnly(t *testing.T) {
	p := control.NewPIDController(2.0, 0, 0)
	out := p.Next(3.0, 0.01)
	test.That(t, out, test.ShouldAlmostEqual, 6.0, 1e-9)
}

func TestPIDGainSettersAreIndependent(t *testing.T) {
	p := control.NewPIDController(1, 1, 1)
	p.SetKp(5)
	test.That(t, p.Kp, test.ShouldEqual, 5.0)
	test.That(t, p.Kd, test.ShouldEqual, 1.0)
	test.That(t, p.Ki, test.ShouldEqual, 1.0)

	p.SetKd(9)
	test.That(t, p.Kd, test.ShouldEqual, 9.0)
	test.That(t, p.Kp, test.ShouldEqual, 5.0)
}

func TestPIDOutputSaturates(t *testing.T) {
	p := control.NewPIDController(10, 0, 0)
	p.SetOutputLimits(-1, 1)
	out := p.Next(5.0, 0.01)
	test.That(t, out, test.ShouldEqual, 1.0)
}

func TestPIDAntiWindupStopsIntegralWhenSaturated(t *testing.T) {
	p := control.NewPIDController(0, 1, 0)
	p.SetOutputLimits(-1, 1)
	for i := 0; i < 50; i++ {
		p.Next(10.0, 0.1)
	}
	saturatedOutput := p.Next(10.0, 0.1)
	test.That(t, saturatedOutput, test.ShouldEqual, 1.0)

	// A large opposing error must be able to bring the output down
	// immediately rather than fight a wound-up integral term.
	recovered := p.Next(-1000.0, 0.1)
	test.That(t, recovered, test.ShouldEqual, -1.0)
}

func TestPIDResetClearsHistory(t *testing.T) {
	p := control.NewPIDController(0, 1, 1)
	p.Next(5.0, 0.1)
	p.Reset()
	out := p.Next(0.0, 0.1)
	test.That(t, out, test.ShouldAlmostEqual, 0.0, 1e-9)
}
