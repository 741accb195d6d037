// Package circuit - gate taxonomy, sentinel errors, and the Gate value type.
package circuit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for circuit construction and decoding.
var (
	// ErrInvalidQubit is returned when a gate operand is outside
	// [0, NumQubits) or a two-qubit gate repeats an operand.
	ErrInvalidQubit = errors.New("circuit: qubit index out of range")

	// ErrMissingAngle is returned when a rotation tag is appended
	// without an angle.
	ErrMissingAngle = errors.New("circuit: rotation gate requires an angle")

	// ErrUnknownTag is returned when decoding meets an unrecognized gate name.
	ErrUnknownTag = errors.New("circuit: unknown gate tag")

	// ErrDecode is returned when text or JSON input is malformed.
	ErrDecode = errors.New("circuit: malformed circuit encoding")
)

// Tag identifies a gate kind.
type Tag uint8

// Gate tags, in canonical order.
const (
	H Tag = iota
	X
	Y
	Z
	S
	T
	RX
	RY
	RZ
	CNOT
	CZ
	SWAP
	MEASURE
)

var tagNames = [...]string{"H", "X", "Y", "Z", "S", "T", "RX", "RY", "RZ", "CNOT", "CZ", "SWAP", "MEASURE"}

// String returns the canonical upper-case tag name.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// ParseTag resolves a tag name (any case). Returns ErrUnknownTag otherwise.
func ParseTag(name string) (Tag, error) {
	up := strings.ToUpper(name)
	// "CX" is the OPENQASM spelling of CNOT.
	if up == "CX" {
		return CNOT, nil
	}
	for i, n := range tagNames {
		if n == up {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// IsRotation reports whether the tag carries a required angle.
func (t Tag) IsRotation() bool { return t == RX || t == RY || t == RZ }

// IsTwoQubit reports whether the tag operates on two qubits.
func (t Tag) IsTwoQubit() bool { return t == CNOT || t == CZ || t == SWAP }

// Arity returns the number of qubit operands for the tag.
func (t Tag) Arity() int {
	if t.IsTwoQubit() {
		return 2
	}
	return 1
}

// axis classifies tags for the commutation predicate.
type axis uint8

const (
	axisDiagonal axis = iota // Z, S, T, RZ, CZ: diagonal in the computational basis
	axisX                    // X, RX
	axisY                    // Y, RY
	axisHadamard             // H
	axisEntangle             // CNOT, SWAP
	axisMeasure              // MEASURE
)

func (t Tag) axis() axis {
	switch t {
	case Z, S, T, RZ, CZ:
		return axisDiagonal
	case X, RX:
		return axisX
	case Y, RY:
		return axisY
	case H:
		return axisHadamard
	case MEASURE:
		return axisMeasure
	default:
		return axisEntangle
	}
}

// Gate is one operation on one or two qubits. The zero value is H on
// qubit 0. Gates are plain values; copying is cheap and safe.
type Gate struct {
	Tag    Tag
	Qubits [2]int // Qubits[1] unused for single-qubit tags
	Angle  float64
}

// NewGate builds a single-qubit, non-parametric gate.
func NewGate(t Tag, q int) Gate { return Gate{Tag: t, Qubits: [2]int{q, -1}} }

// NewRotation builds a parametric rotation gate.
func NewRotation(t Tag, q int, angle float64) Gate {
	return Gate{Tag: t, Qubits: [2]int{q, -1}, Angle: angle}
}

// NewTwoQubit builds a two-qubit gate. For CNOT the first operand is the
// control.
func NewTwoQubit(t Tag, a, b int) Gate { return Gate{Tag: t, Qubits: [2]int{a, b}} }

// Operands returns the qubit indices the gate touches.
func (g Gate) Operands() []int {
	if g.Tag.IsTwoQubit() {
		return []int{g.Qubits[0], g.Qubits[1]}
	}
	return []int{g.Qubits[0]}
}

// Touches reports whether the gate acts on qubit q.
func (g Gate) Touches(q int) bool {
	if g.Qubits[0] == q {
		return true
	}
	return g.Tag.IsTwoQubit() && g.Qubits[1] == q
}

// IsSingleQubit reports whether the gate acts on exactly one qubit and is
// not a measurement.
func (g Gate) IsSingleQubit() bool { return !g.Tag.IsTwoQubit() && g.Tag != MEASURE }

// IsTwoQubit reports whether the gate acts on two qubits.
func (g Gate) IsTwoQubit() bool { return g.Tag.IsTwoQubit() }

// IsMeasurement reports whether the gate is a measurement.
func (g Gate) IsMeasurement() bool { return g.Tag == MEASURE }

// MapQubits returns a copy of the gate with operands relabeled through
// mapping (mapping[logical] = physical). The mapping must cover every
// operand; routing code guarantees this.
func (g Gate) MapQubits(mapping []int) Gate {
	out := g
	out.Qubits[0] = mapping[g.Qubits[0]]
	if g.Tag.IsTwoQubit() {
		out.Qubits[1] = mapping[g.Qubits[1]]
	}
	return out
}

// Commutes reports whether swapping g with other in an adjacent position
// preserves circuit semantics. See the package doc for the rule.
func (g Gate) Commutes(other Gate) bool {
	if disjoint(g, other) {
		return true
	}
	if g.Tag == MEASURE || other.Tag == MEASURE {
		return false
	}
	a, b := g.Tag.axis(), other.Tag.axis()
	if a == axisDiagonal && b == axisDiagonal {
		return true
	}
	// Same-axis single-qubit rotations commute on a shared qubit.
	if a == b && (a == axisX || a == axisY) {
		return true
	}
	return false
}

func disjoint(a, b Gate) bool {
	for _, q := range a.Operands() {
		if b.Touches(q) {
			return false
		}
	}
	return true
}

// String renders the gate in the canonical debug form, e.g. "CNOT(0,1)"
// or "RX(1, 0.5000)".
func (g Gate) String() string {
	switch {
	case g.Tag.IsRotation():
		return fmt.Sprintf("%s(%d, %.4f)", g.Tag, g.Qubits[0], g.Angle)
	case g.Tag.IsTwoQubit():
		return fmt.Sprintf("%s(%d,%d)", g.Tag, g.Qubits[0], g.Qubits[1])
	default:
		return g.Tag.String() + "(" + strconv.Itoa(g.Qubits[0]) + ")"
	}
}
