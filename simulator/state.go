// Package simulator - the state-vector kernel.
package simulator

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/sadpig70/QNS/circuit"
)

// stateVector holds 2^n complex amplitudes. Index bit q is the value of
// qubit q.
type stateVector struct {
	amps      []complex128
	numQubits int
}

func newStateVector(numQubits int) *stateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &stateVector{amps: amps, numQubits: numQubits}
}

// applyGate dispatches one gate onto the state. MEASURE is a no-op
// marker here; sampling happens after the full sequence.
func (s *stateVector) applyGate(g circuit.Gate) {
	switch g.Tag {
	case circuit.H:
		h := complex(1/math.Sqrt2, 0)
		s.apply1Q(g.Qubits[0], [2][2]complex128{{h, h}, {h, -h}})
	case circuit.X:
		s.applyX(g.Qubits[0])
	case circuit.Y:
		s.apply1Q(g.Qubits[0], [2][2]complex128{{0, -1i}, {1i, 0}})
	case circuit.Z:
		s.phase(g.Qubits[0], -1)
	case circuit.S:
		s.phase(g.Qubits[0], 1i)
	case circuit.T:
		s.phase(g.Qubits[0], cmplx.Exp(complex(0, math.Pi/4)))
	case circuit.RX:
		c, sn := rotHalves(g.Angle)
		s.apply1Q(g.Qubits[0], [2][2]complex128{{c, -1i * sn}, {-1i * sn, c}})
	case circuit.RY:
		c, sn := rotHalves(g.Angle)
		s.apply1Q(g.Qubits[0], [2][2]complex128{{c, -sn}, {sn, c}})
	case circuit.RZ:
		e := cmplx.Exp(complex(0, g.Angle/2))
		s.apply1Q(g.Qubits[0], [2][2]complex128{{cmplx.Conj(e), 0}, {0, e}})
	case circuit.CNOT:
		s.applyCNOT(g.Qubits[0], g.Qubits[1])
	case circuit.CZ:
		s.applyCZ(g.Qubits[0], g.Qubits[1])
	case circuit.SWAP:
		s.applySWAP(g.Qubits[0], g.Qubits[1])
	case circuit.MEASURE:
		// sampled at end of sequence
	}
}

func rotHalves(theta float64) (complex128, complex128) {
	return complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
}

// apply1Q applies a 2x2 unitary to qubit q.
func (s *stateVector) apply1Q(q int, m [2][2]complex128) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.amps[i], s.amps[j]
			s.amps[i] = m[0][0]*a0 + m[0][1]*a1
			s.amps[j] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}

func (s *stateVector) applyX(q int) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

// phase multiplies the |1⟩ component of qubit q by p.
func (s *stateVector) phase(q int, p complex128) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit != 0 {
			s.amps[i] *= p
		}
	}
}

func (s *stateVector) applyCNOT(ctrl, tgt int) {
	cb, tb := 1<<ctrl, 1<<tgt
	for i := range s.amps {
		if i&cb != 0 && i&tb == 0 {
			j := i | tb
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

func (s *stateVector) applyCZ(a, b int) {
	ab, bb := 1<<a, 1<<b
	for i := range s.amps {
		if i&ab != 0 && i&bb != 0 {
			s.amps[i] = -s.amps[i]
		}
	}
}

func (s *stateVector) applySWAP(a, b int) {
	ab, bb := 1<<a, 1<<b
	for i := range s.amps {
		if i&ab != 0 && i&bb == 0 {
			j := (i &^ ab) | bb
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

// probabilities returns |amp|² per basis state.
func (s *stateVector) probabilities() []float64 {
	out := make([]float64, len(s.amps))
	for i, a := range s.amps {
		out[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return out
}

// sample draws one basis-state index from the distribution using rng.
func sample(probs []float64, rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return i
		}
	}
	// Float drift can leave r just above the accumulated total.
	return len(probs) - 1
}

// innerProduct returns ⟨a|b⟩ for two equal-length states.
func innerProduct(a, b *stateVector) complex128 {
	var sum complex128
	for i := range a.amps {
		sum += cmplx.Conj(a.amps[i]) * b.amps[i]
	}
	return sum
}
