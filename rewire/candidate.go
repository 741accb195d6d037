// Package rewire - search candidates and successor generation.
package rewire

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/sadpig70/QNS/circuit"
	"github.com/sadpig70/QNS/hardware"
)

// scoreScale stabilizes candidate scores to 1e-9 before comparison so
// floating-point drift cannot perturb the tie-break order.
const scoreScale = 1e9

func stabilize(s float64) float64 { return math.Round(s*scoreScale) / scoreScale }

// candidate is one circuit variant in the search space. Gates are on
// physical qubit labels; swaps counts routing insertions. order is the
// discovery sequence number closing the tie-break total order.
type candidate struct {
	gates []circuit.Gate
	swaps int
	depth int
	order uint64
	score float64
}

// newCandidate snapshots gates into a candidate and caches its depth.
func newCandidate(n int, gates []circuit.Gate, swaps int, order uint64) candidate {
	c := candidate{gates: gates, swaps: swaps, order: order}
	c.depth = depthOf(n, gates)
	return c
}

func depthOf(n int, gates []circuit.Gate) int {
	level := make([]int, n)
	depth := 0
	for _, g := range gates {
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

// better implements the deterministic total order: higher stabilized
// score, then fewer inserted SWAPs, then lower depth, then earlier
// discovery.
func (c candidate) better(o candidate) bool {
	if c.score != o.score {
		return c.score > o.score
	}
	if c.swaps != o.swaps {
		return c.swaps < o.swaps
	}
	if c.depth != o.depth {
		return c.depth < o.depth
	}
	return c.order < o.order
}

// hash fingerprints the gate sequence for deduplication.
func (c candidate) hash() uint64 {
	h := fnv.New64a()
	var buf [8 + 2*8]byte
	for _, g := range c.gates {
		buf[0] = byte(g.Tag)
		binary.LittleEndian.PutUint64(buf[1:], uint64(int64(g.Qubits[0])))
		binary.LittleEndian.PutUint64(buf[9:], uint64(int64(g.Qubits[1])))
		binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(g.Angle))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// toCircuit materializes the candidate over n physical qubits.
func (c candidate) toCircuit(n int) *circuit.Circuit {
	out, _ := circuit.FromGates(n, c.gates)
	return out
}

// firstUnrouted returns the index of the first two-qubit gate whose
// operands are not coupled on the profile, or -1 when the candidate is
// fully routed.
func firstUnrouted(gates []circuit.Gate, p *hardware.Profile) int {
	for i, g := range gates {
		if g.IsTwoQubit() && !p.AreConnected(g.Qubits[0], g.Qubits[1]) {
			return i
		}
	}
	return -1
}

// expander generates legal successors and tracks visited fingerprints.
type expander struct {
	profile   *hardware.Profile
	numQubits int // physical qubit count
	visited   map[uint64]struct{}
	nextOrder uint64
}

func newExpander(p *hardware.Profile) *expander {
	return &expander{
		profile:   p,
		numQubits: p.NumQubits(),
		visited:   make(map[uint64]struct{}),
	}
}

// admit registers a candidate's fingerprint, reporting whether it was
// unseen.
func (e *expander) admit(c candidate) bool {
	h := c.hash()
	if _, dup := e.visited[h]; dup {
		return false
	}
	e.visited[h] = struct{}{}
	return true
}

// successors returns every unseen legal successor of c:
// adjacent commuting swaps, placement transpositions (only while no
// SWAP has been inserted), and one-edge SWAP insertion toward routing
// the first unroutable two-qubit gate. The boolean reports whether the
// candidate required a path the hardware graph cannot provide.
func (e *expander) successors(c candidate) (out []candidate, infeasible bool) {
	// (a) adjacent commuting swaps.
	for i := 0; i+1 < len(c.gates); i++ {
		if !c.gates[i].Commutes(c.gates[i+1]) {
			continue
		}
		gates := append([]circuit.Gate(nil), c.gates...)
		gates[i], gates[i+1] = gates[i+1], gates[i]
		e.push(&out, gates, c.swaps)
	}

	// (b) placement transpositions, before routing commits the layout.
	if c.swaps == 0 {
		used := usedQubits(c.gates, e.numQubits)
		for a := 0; a < e.numQubits; a++ {
			if !used[a] {
				continue
			}
			for b := 0; b < e.numQubits; b++ {
				if a == b {
					continue
				}
				e.push(&out, transpose(c.gates, a, b), c.swaps)
			}
		}
	}

	// (c) single SWAP insertion along the shortest path for the first
	// unrouted two-qubit gate.
	if k := firstUnrouted(c.gates, e.profile); k >= 0 {
		pa, pb := c.gates[k].Qubits[0], c.gates[k].Qubits[1]
		path, ok := e.profile.ShortestPath(pa, pb)
		if !ok {
			return out, true
		}
		// Move pa one edge toward pb; the symmetric move from pb's side
		// is reachable through the path computed for the relabeled gate.
		step := path[1]
		gates := make([]circuit.Gate, 0, len(c.gates)+1)
		gates = append(gates, c.gates[:k]...)
		gates = append(gates, circuit.NewTwoQubit(circuit.SWAP, pa, step))
		for _, g := range c.gates[k:] {
			gates = append(gates, relabel(g, pa, step))
		}
		e.push(&out, gates, c.swaps+1)
	}

	return out, false
}

func (e *expander) push(out *[]candidate, gates []circuit.Gate, swaps int) {
	cand := newCandidate(e.numQubits, gates, swaps, e.nextOrder)
	if !e.admit(cand) {
		return
	}
	e.nextOrder++
	*out = append(*out, cand)
}

// transpose exchanges physical labels a and b across the whole sequence.
func transpose(gates []circuit.Gate, a, b int) []circuit.Gate {
	out := make([]circuit.Gate, len(gates))
	for i, g := range gates {
		out[i] = relabel(g, a, b)
	}
	return out
}

// relabel swaps occurrences of labels a and b in one gate.
func relabel(g circuit.Gate, a, b int) circuit.Gate {
	swap := func(q int) int {
		switch q {
		case a:
			return b
		case b:
			return a
		default:
			return q
		}
	}
	g.Qubits[0] = swap(g.Qubits[0])
	if g.Tag.IsTwoQubit() {
		g.Qubits[1] = swap(g.Qubits[1])
	}
	return g
}

func usedQubits(gates []circuit.Gate, n int) []bool {
	used := make([]bool, n)
	for _, g := range gates {
		for _, q := range g.Operands() {
			if q < n {
				used[q] = true
			}
		}
	}
	return used
}
