// Package circuit - lossless text (OPENQASM-2.0 subset) and JSON forms.
package circuit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// textHeader opens every encoded circuit.
const textHeader = "OPENQASM 2.0;"

// qasm spellings that differ from the canonical tag names.
var qasmNames = map[Tag]string{CNOT: "cx"}

func qasmName(t Tag) string {
	if n, ok := qasmNames[t]; ok {
		return n
	}
	return strings.ToLower(t.String())
}

// EncodeText renders the circuit in an OPENQASM-2.0-like text form.
// The encoding is lossless for gate tag, operands, and angle; DecodeText
// inverts it exactly.
//
// Example output:
//
//	OPENQASM 2.0;
//	qreg q[3];
//	h q[0];
//	rx(0.5) q[1];
//	cx q[0],q[2];
//	measure q[0] -> c[0];
func EncodeText(c *Circuit) string {
	var b strings.Builder
	b.WriteString(textHeader)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "qreg q[%d];\n", c.NumQubits())
	for _, g := range c.gates {
		switch {
		case g.Tag == MEASURE:
			fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", g.Qubits[0], g.Qubits[0])
		case g.Tag.IsRotation():
			// 'g' verb keeps the float exact on round-trip.
			fmt.Fprintf(&b, "%s(%s) q[%d];\n", qasmName(g.Tag),
				strconv.FormatFloat(g.Angle, 'g', -1, 64), g.Qubits[0])
		case g.Tag.IsTwoQubit():
			fmt.Fprintf(&b, "%s q[%d],q[%d];\n", qasmName(g.Tag), g.Qubits[0], g.Qubits[1])
		default:
			fmt.Fprintf(&b, "%s q[%d];\n", qasmName(g.Tag), g.Qubits[0])
		}
	}
	return b.String()
}

// DecodeText parses the text form produced by EncodeText. Unknown gate
// names yield ErrUnknownTag; any other malformed line yields ErrDecode.
func DecodeText(src string) (*Circuit, error) {
	var c *Circuit
	for ln, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") || strings.HasPrefix(line, "creg") {
			continue
		}
		line = strings.TrimSuffix(line, ";")
		switch {
		case strings.HasPrefix(line, "qreg"):
			n, err := bracketIndex(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrDecode, ln+1, err)
			}
			c = New(n)
		default:
			if c == nil {
				return nil, fmt.Errorf("%w: gate before qreg declaration", ErrDecode)
			}
			if err := decodeGateLine(c, line); err != nil {
				return nil, fmt.Errorf("%w (line %d)", err, ln+1)
			}
		}
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no qreg declaration", ErrDecode)
	}
	return c, nil
}

func decodeGateLine(c *Circuit, line string) error {
	// measure q[i] -> c[i]
	if strings.HasPrefix(line, "measure") {
		q, err := bracketIndex(strings.SplitN(line, "->", 2)[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return c.AppendMeasure(q)
	}

	head, rest, ok := strings.Cut(line, " ")
	if !ok {
		return fmt.Errorf("%w: %q", ErrDecode, line)
	}

	// Optional parameter list on the head: rx(0.5)
	angle := 0.0
	hasAngle := false
	if i := strings.IndexByte(head, '('); i >= 0 {
		j := strings.IndexByte(head, ')')
		if j < i {
			return fmt.Errorf("%w: %q", ErrDecode, line)
		}
		v, err := strconv.ParseFloat(head[i+1:j], 64)
		if err != nil {
			return fmt.Errorf("%w: bad angle in %q", ErrDecode, line)
		}
		angle, hasAngle = v, true
		head = head[:i]
	}

	tag, err := ParseTag(head)
	if err != nil {
		return err
	}

	args := strings.Split(rest, ",")
	qubits := make([]int, 0, 2)
	for _, a := range args {
		q, err := bracketIndex(a)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
		qubits = append(qubits, q)
	}

	switch {
	case tag.IsRotation():
		if !hasAngle {
			return fmt.Errorf("%w: %s", ErrMissingAngle, tag)
		}
		if len(qubits) != 1 {
			return fmt.Errorf("%w: %s wants 1 operand", ErrDecode, tag)
		}
		return c.AppendRotation(tag, qubits[0], angle)
	case tag.IsTwoQubit():
		if len(qubits) != 2 {
			return fmt.Errorf("%w: %s wants 2 operands", ErrDecode, tag)
		}
		return c.AppendTwoQubit(tag, qubits[0], qubits[1])
	default:
		if len(qubits) != 1 {
			return fmt.Errorf("%w: %s wants 1 operand", ErrDecode, tag)
		}
		return c.AppendSingle(tag, qubits[0])
	}
}

// bracketIndex extracts the integer between the first '[' and ']' of s.
func bracketIndex(s string) (int, error) {
	i := strings.IndexByte(s, '[')
	j := strings.IndexByte(s, ']')
	if i < 0 || j < i {
		return 0, fmt.Errorf("missing index in %q", strings.TrimSpace(s))
	}
	return strconv.Atoi(s[i+1 : j])
}

// gateJSON is the structured wire form of one gate. Angle is omitted for
// non-parametric tags so the form stays minimal.
type gateJSON struct {
	Tag    string   `json:"tag"`
	Qubits []int    `json:"qubits"`
	Angle  *float64 `json:"angle,omitempty"`
}

type circuitJSON struct {
	NumQubits int        `json:"num_qubits"`
	Gates     []gateJSON `json:"gates"`
}

// MarshalJSON encodes the circuit in the structured interchange form.
func (c *Circuit) MarshalJSON() ([]byte, error) {
	out := circuitJSON{NumQubits: c.numQubits, Gates: make([]gateJSON, 0, len(c.gates))}
	for _, g := range c.gates {
		gj := gateJSON{Tag: g.Tag.String(), Qubits: append([]int(nil), g.Operands()...)}
		if g.Tag.IsRotation() {
			a := g.Angle
			gj.Angle = &a
		}
		out.Gates = append(out.Gates, gj)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the structured form, validating every gate.
func (c *Circuit) UnmarshalJSON(data []byte) error {
	var in circuitJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if in.NumQubits < 1 {
		return fmt.Errorf("%w: num_qubits must be positive", ErrDecode)
	}
	dec := New(in.NumQubits)
	for _, gj := range in.Gates {
		tag, err := ParseTag(gj.Tag)
		if err != nil {
			return err
		}
		switch {
		case tag.IsRotation():
			if gj.Angle == nil {
				return fmt.Errorf("%w: %s", ErrMissingAngle, tag)
			}
			if len(gj.Qubits) != 1 {
				return fmt.Errorf("%w: %s wants 1 operand", ErrDecode, tag)
			}
			err = dec.AppendRotation(tag, gj.Qubits[0], *gj.Angle)
		case tag.IsTwoQubit():
			if len(gj.Qubits) != 2 {
				return fmt.Errorf("%w: %s wants 2 operands", ErrDecode, tag)
			}
			err = dec.AppendTwoQubit(tag, gj.Qubits[0], gj.Qubits[1])
		case tag == MEASURE:
			if len(gj.Qubits) != 1 {
				return fmt.Errorf("%w: MEASURE wants 1 operand", ErrDecode)
			}
			err = dec.AppendMeasure(gj.Qubits[0])
		default:
			if len(gj.Qubits) != 1 {
				return fmt.Errorf("%w: %s wants 1 operand", ErrDecode, tag)
			}
			err = dec.AppendSingle(tag, gj.Qubits[0])
		}
		if err != nil {
			return err
		}
	}
	*c = *dec
	return nil
}
