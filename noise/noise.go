package noise

import "math"

// NISQ-typical calibration figures for superconducting qubits.
const (
	// TypicalT1 is a generic NISQ T1 relaxation time (µs).
	TypicalT1 = 100.0
	// TypicalT2 is a generic NISQ T2 dephasing time (µs).
	TypicalT2 = 80.0
	// TypicalGateError1Q is a typical single-qubit gate error rate.
	TypicalGateError1Q = 0.001
	// TypicalGateError2Q is a typical two-qubit gate error rate.
	TypicalGateError2Q = 0.01
	// TypicalReadoutError is a typical measurement error rate.
	TypicalReadoutError = 0.01
)

// Vector is the noise profile of a single qubit.
//
// T1 and T2 are in microseconds; error rates are probabilities in [0,1].
// The zero value is a noiseless qubit with zero coherence time; prefer
// the Ideal or Typical constructors.
type Vector struct {
	T1           float64 `json:"t1"`
	T2           float64 `json:"t2"`
	GateError1Q  float64 `json:"gate_error_1q"`
	GateError2Q  float64 `json:"gate_error_2q"`
	ReadoutError float64 `json:"readout_error"`
}

// NewVector builds a Vector with the given coherence times and error
// rates. Construction never fails; use IsValid to check the physical
// constraint.
func NewVector(t1, t2, err1q, err2q, readout float64) Vector {
	return Vector{T1: t1, T2: t2, GateError1Q: err1q, GateError2Q: err2q, ReadoutError: readout}
}

// IdealVector is a zero-error, infinite-coherence qubit profile.
func IdealVector() Vector {
	return Vector{T1: math.Inf(1), T2: math.Inf(1)}
}

// TypicalVector carries generic NISQ calibration figures.
func TypicalVector() Vector {
	return NewVector(TypicalT1, TypicalT2, TypicalGateError1Q, TypicalGateError2Q, TypicalReadoutError)
}

// IsValid reports whether the profile satisfies the physical constraint
// T2 ≤ 2·T1. A violation flags implausible calibration data; it does not
// prevent use (the estimator clamps T2 internally).
func (v Vector) IsValid() bool {
	if math.IsInf(v.T1, 1) {
		return true
	}
	return v.T2 <= 2*v.T1
}

// ClampedT2 returns T2 clamped to the physical limit 2·T1.
func (v Vector) ClampedT2() float64 {
	if !v.IsValid() {
		return 2 * v.T1
	}
	return v.T2
}

// IsIdeal reports whether the profile carries no error at all.
func (v Vector) IsIdeal() bool {
	return v.GateError1Q == 0 && v.GateError2Q == 0 && v.ReadoutError == 0 &&
		math.IsInf(v.T1, 1) && math.IsInf(v.T2, 1)
}

// Model applies one noise Vector uniformly across all qubits. Used as
// optimizer input when no per-qubit calibration exists.
type Model struct {
	vec Vector
}

// Ideal returns the zero-error baseline model.
func Ideal() Model { return Model{vec: IdealVector()} }

// Uniform returns a model applying v to every qubit.
func Uniform(v Vector) Model { return Model{vec: v} }

// Typical returns a model with generic NISQ figures.
func Typical() Model { return Uniform(TypicalVector()) }

// QubitVector returns the noise parameters for qubit q. The uniform
// model ignores q; the signature leaves room for per-qubit calibration
// injected by external collaborators.
func (m Model) QubitVector(q int) Vector { return m.vec }

// IsIdeal reports whether the model is the zero-error baseline.
func (m Model) IsIdeal() bool { return m.vec.IsIdeal() }
