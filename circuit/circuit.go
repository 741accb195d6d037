// Package circuit - the Circuit container and its append/derive operations.
package circuit

import "fmt"

// Circuit is an ordered gate sequence over a fixed qubit count.
//
// Append operations validate eagerly and keep the circuit consistent at
// all times; consumers treat a built circuit as immutable and derive new
// circuits instead of mutating.
type Circuit struct {
	numQubits int
	gates     []Gate
}

// New returns an empty circuit over n qubits. n must be positive.
func New(n int) *Circuit {
	if n < 1 {
		n = 1
	}
	return &Circuit{numQubits: n}
}

// FromGates builds a circuit over n qubits from a prepared gate slice,
// validating every gate. The slice is copied.
func FromGates(n int, gates []Gate) (*Circuit, error) {
	c := New(n)
	for _, g := range gates {
		if err := c.AppendGate(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NumQubits returns the fixed qubit count.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Len returns the number of gates.
func (c *Circuit) Len() int { return len(c.gates) }

// Gate returns the gate at position i.
func (c *Circuit) Gate(i int) Gate { return c.gates[i] }

// Gates returns a copy of the gate sequence.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	copy(out, c.gates)
	return out
}

// Clone returns an independent deep copy.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{numQubits: c.numQubits, gates: c.Gates()}
}

// Equal reports whether two circuits have identical qubit counts and
// gate sequences (tags, operands, and angles compared exactly).
func (c *Circuit) Equal(other *Circuit) bool {
	if other == nil || c.numQubits != other.numQubits || len(c.gates) != len(other.gates) {
		return false
	}
	for i := range c.gates {
		if c.gates[i] != other.gates[i] {
			return false
		}
	}
	return true
}

// AppendGate validates g against the circuit and appends it.
// Returns ErrInvalidQubit or ErrMissingAngle on bad input.
func (c *Circuit) AppendGate(g Gate) error {
	for _, q := range g.Operands() {
		if q < 0 || q >= c.numQubits {
			return fmt.Errorf("%w: %d (num_qubits=%d)", ErrInvalidQubit, q, c.numQubits)
		}
	}
	if g.Tag.IsTwoQubit() && g.Qubits[0] == g.Qubits[1] {
		return fmt.Errorf("%w: two-qubit gate with repeated operand %d", ErrInvalidQubit, g.Qubits[0])
	}
	if !g.Tag.IsTwoQubit() {
		g.Qubits[1] = -1
	}
	c.gates = append(c.gates, g)
	return nil
}

// AppendSingle appends a non-parametric single-qubit gate.
func (c *Circuit) AppendSingle(t Tag, q int) error {
	if t.IsRotation() {
		return fmt.Errorf("%w: %s", ErrMissingAngle, t)
	}
	if t.IsTwoQubit() {
		return fmt.Errorf("%w: %s is not single-qubit", ErrUnknownTag, t)
	}
	return c.AppendGate(NewGate(t, q))
}

// AppendRotation appends a parametric rotation gate.
func (c *Circuit) AppendRotation(t Tag, q int, angle float64) error {
	if !t.IsRotation() {
		return fmt.Errorf("%w: %s is not a rotation", ErrUnknownTag, t)
	}
	return c.AppendGate(NewRotation(t, q, angle))
}

// AppendTwoQubit appends a two-qubit gate.
func (c *Circuit) AppendTwoQubit(t Tag, a, b int) error {
	if !t.IsTwoQubit() {
		return fmt.Errorf("%w: %s is not two-qubit", ErrUnknownTag, t)
	}
	return c.AppendGate(NewTwoQubit(t, a, b))
}

// AppendMeasure appends a computational-basis measurement.
func (c *Circuit) AppendMeasure(q int) error { return c.AppendGate(NewGate(MEASURE, q)) }

// Convenience appenders in the tag's spelling.

func (c *Circuit) H(q int) error              { return c.AppendSingle(H, q) }
func (c *Circuit) X(q int) error              { return c.AppendSingle(X, q) }
func (c *Circuit) Y(q int) error              { return c.AppendSingle(Y, q) }
func (c *Circuit) Z(q int) error              { return c.AppendSingle(Z, q) }
func (c *Circuit) S(q int) error              { return c.AppendSingle(S, q) }
func (c *Circuit) T(q int) error              { return c.AppendSingle(T, q) }
func (c *Circuit) RX(q int, th float64) error { return c.AppendRotation(RX, q, th) }
func (c *Circuit) RY(q int, th float64) error { return c.AppendRotation(RY, q, th) }
func (c *Circuit) RZ(q int, th float64) error { return c.AppendRotation(RZ, q, th) }
func (c *Circuit) CNOT(ctrl, tgt int) error   { return c.AppendTwoQubit(CNOT, ctrl, tgt) }
func (c *Circuit) CZ(a, b int) error          { return c.AppendTwoQubit(CZ, a, b) }
func (c *Circuit) SWAP(a, b int) error        { return c.AppendTwoQubit(SWAP, a, b) }
func (c *Circuit) Measure(q int) error        { return c.AppendMeasure(q) }

// Depth returns the longest per-qubit dependency chain: each gate sits
// one level above the deepest level previously reached by any of its
// operands.
//
// Complexity: O(gates).
func (c *Circuit) Depth() int {
	level := make([]int, c.numQubits)
	depth := 0
	for _, g := range c.gates {
		d := 0
		for _, q := range g.Operands() {
			if level[q] > d {
				d = level[q]
			}
		}
		d++
		for _, q := range g.Operands() {
			level[q] = d
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}

// TwoQubitCount returns the number of two-qubit gates.
func (c *Circuit) TwoQubitCount() int {
	n := 0
	for _, g := range c.gates {
		if g.IsTwoQubit() {
			n++
		}
	}
	return n
}

// MeasureCount returns the number of measurement operations.
func (c *Circuit) MeasureCount() int {
	n := 0
	for _, g := range c.gates {
		if g.IsMeasurement() {
			n++
		}
	}
	return n
}

// AdjacentCommutingPairs returns every index i where gates i and i+1
// commute and may legally be swapped.
func (c *Circuit) AdjacentCommutingPairs() []int {
	var idx []int
	for i := 0; i+1 < len(c.gates); i++ {
		if c.gates[i].Commutes(c.gates[i+1]) {
			idx = append(idx, i)
		}
	}
	return idx
}

// SwapAdjacent returns a new circuit with gates i and i+1 exchanged.
// The caller is responsible for checking commutation first.
func (c *Circuit) SwapAdjacent(i int) *Circuit {
	out := c.Clone()
	out.gates[i], out.gates[i+1] = out.gates[i+1], out.gates[i]
	return out
}

// String renders the circuit one gate per line, for debugging.
func (c *Circuit) String() string {
	s := fmt.Sprintf("Circuit(%d qubits, %d gates)", c.numQubits, len(c.gates))
	for _, g := range c.gates {
		s += "\n  " + g.String()
	}
	return s
}
