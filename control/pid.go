package control

// PIDController is a discrete PID loop over a scalar error signal, grounded
// on the teacher's control.basicPID: integral accumulation with windup
// clamping, derivative-on-error, and an output saturation band.
//
// Per spec §9's design note, Kp and Kd are independent gains; earlier
// sources had a setter that wrote both from a single call, which this
// implementation does not reproduce.
type PIDController struct {
	Kp, Ki, Kd float64

	// OutputMin, OutputMax saturate the controller's output. A zero value
	// for both disables saturation.
	OutputMin, OutputMax float64

	integral  float64
	prevError float64
	sat       int // +1 saturated high, -1 saturated low, 0 not saturated
}

// NewPIDController returns a controller with the given gains and no output
// saturation.
func NewPIDController(kp, ki, kd float64) *PIDController {
	return &PIDController{Kp: kp, Ki: ki, Kd: kd}
}

// SetKp sets the proportional gain only.
func (p *PIDController) SetKp(kp float64) { p.Kp = kp }

// SetKd sets the derivative gain only.
func (p *PIDController) SetKd(kd float64) { p.Kd = kd }

// SetKi sets the integral gain only.
func (p *PIDController) SetKi(ki float64) { p.Ki = ki }

// SetOutputLimits enables output saturation at [min, max].
func (p *PIDController) SetOutputLimits(min, max float64) {
	p.OutputMin, p.OutputMax = min, max
}

// Reset clears the controller's integral and derivative history.
func (p *PIDController) Reset() {
	p.integral = 0
	p.prevError = 0
	p.sat = 0
}

// Next advances the controller by dt given the current error (setpoint
// minus measured value) and returns the control output. Anti-windup: the
// integral term stops accumulating in the direction that would increase an
// already-saturated output.
func (p *PIDController) Next(errVal, dt float64) float64 {
	if dt <= 0 {
		return p.Kp*errVal + p.integral
	}
	if !((p.sat > 0 && errVal > 0) || (p.sat < 0 && errVal < 0)) {
		p.integral += p.Ki * errVal * dt
	}

	deriv := (errVal - p.prevError) / dt
	output := p.Kp*errVal + p.integral + p.Kd*deriv
	p.prevError = errVal

	p.sat = 0
	if p.OutputMin != p.OutputMax {
		if output > p.OutputMax {
			output = p.OutputMax
			p.sat = 1
		} else if output < p.OutputMin {
			output = p.OutputMin
			p.sat = -1
		}
	}
	return output
}
