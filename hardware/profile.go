package hardware

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultCrosstalkWeight is the per-edge crosstalk weight assumed when
// calibration supplies nothing better.
const DefaultCrosstalkWeight = 0.01

// Sentinel errors for profile construction and queries.
var (
	// ErrBadEdge is returned for an edge with an out-of-range or repeated
	// endpoint.
	ErrBadEdge = errors.New("hardware: invalid edge")

	// ErrBadQubit is returned for a qubit index outside the profile.
	ErrBadQubit = errors.New("hardware: qubit index out of range")
)

// Edge is an undirected coupling between two physical qubits, stored in
// canonical (A < B) order.
type Edge struct {
	A, B int
}

// canonical returns e with endpoints ordered A < B.
func canonical(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Touches reports whether q is an endpoint of e.
func (e Edge) Touches(q int) bool { return e.A == q || e.B == q }

// SharesQubit reports whether two edges have a common endpoint.
func (e Edge) SharesQubit(o Edge) bool {
	return e.Touches(o.A) || e.Touches(o.B)
}

// Profile is an immutable-after-construction hardware connectivity
// description: qubit count, coupling map, per-edge crosstalk weights,
// and optional per-edge two-qubit error rates.
type Profile struct {
	numQubits int
	adj       [][]int          // adj[q] = sorted neighbor list
	weights   map[Edge]float64 // crosstalk weight per edge
	errors2q  map[Edge]float64 // per-edge 2q error rate, when calibrated
}

// Linear returns a chain profile: i↔i+1 for i < n−1.
func Linear(n int) *Profile {
	p := empty(n)
	for i := 0; i+1 < n; i++ {
		p.addEdge(i, i+1)
	}
	return p
}

// Ring returns a cycle profile: a chain plus the closing edge n−1↔0.
func Ring(n int) *Profile {
	p := Linear(n)
	if n > 2 {
		p.addEdge(n-1, 0)
	}
	return p
}

// FullyConnected returns an all-to-all profile.
func FullyConnected(n int) *Profile {
	p := empty(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p.addEdge(i, j)
		}
	}
	return p
}

// Grid returns a rows×cols lattice profile with nearest-neighbor
// coupling. Qubit (r,c) has index r·cols+c.
func Grid(rows, cols int) *Profile {
	p := empty(rows * cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			q := r*cols + c
			if c+1 < cols {
				p.addEdge(q, q+1)
			}
			if r+1 < rows {
				p.addEdge(q, q+cols)
			}
		}
	}
	return p
}

// FromEdges builds a profile over n qubits from an explicit edge list.
// Self-loops and out-of-range endpoints yield ErrBadEdge; duplicate
// edges collapse.
func FromEdges(n int, edges []Edge) (*Profile, error) {
	p := empty(n)
	for _, e := range edges {
		if e.A == e.B || e.A < 0 || e.B < 0 || e.A >= n || e.B >= n {
			return nil, fmt.Errorf("%w: (%d,%d) on %d qubits", ErrBadEdge, e.A, e.B, n)
		}
		p.addEdge(e.A, e.B)
	}
	return p, nil
}

func empty(n int) *Profile {
	if n < 1 {
		n = 1
	}
	return &Profile{
		numQubits: n,
		adj:       make([][]int, n),
		weights:   make(map[Edge]float64),
		errors2q:  make(map[Edge]float64),
	}
}

func (p *Profile) addEdge(a, b int) {
	e := canonical(a, b)
	if _, dup := p.weights[e]; dup {
		return
	}
	p.weights[e] = DefaultCrosstalkWeight
	p.adj[e.A] = insertSorted(p.adj[e.A], e.B)
	p.adj[e.B] = insertSorted(p.adj[e.B], e.A)
}

func insertSorted(s []int, v int) []int {
	i := sort.SearchInts(s, v)
	if i < len(s) && s[i] == v {
		return s
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// NumQubits returns the physical qubit count.
func (p *Profile) NumQubits() int { return p.numQubits }

// NumEdges returns the coupling-map size.
func (p *Profile) NumEdges() int { return len(p.weights) }

// AreConnected reports whether a two-qubit gate can execute directly on
// (a,b). Symmetric; false for out-of-range input.
func (p *Profile) AreConnected(a, b int) bool {
	if a < 0 || b < 0 || a >= p.numQubits || b >= p.numQubits {
		return false
	}
	_, ok := p.weights[canonical(a, b)]
	return ok
}

// Neighbors returns the sorted physical neighbors of q (empty for
// out-of-range input).
func (p *Profile) Neighbors(q int) []int {
	if q < 0 || q >= p.numQubits {
		return nil
	}
	out := make([]int, len(p.adj[q]))
	copy(out, p.adj[q])
	return out
}

// Degree returns the coupling degree of q.
func (p *Profile) Degree(q int) int {
	if q < 0 || q >= p.numQubits {
		return 0
	}
	return len(p.adj[q])
}

// Edges returns the coupling map sorted by (A, B).
func (p *Profile) Edges() []Edge {
	out := make([]Edge, 0, len(p.weights))
	for e := range p.weights {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// EdgeWeight returns the crosstalk weight of edge (a,b), or 0 when the
// qubits are not coupled.
func (p *Profile) EdgeWeight(a, b int) float64 {
	return p.weights[canonical(a, b)]
}

// SetEdgeWeight overrides the crosstalk weight of an existing edge
// (e.g. injected from calibration). Unknown edges yield ErrBadEdge.
func (p *Profile) SetEdgeWeight(a, b int, w float64) error {
	e := canonical(a, b)
	if _, ok := p.weights[e]; !ok {
		return fmt.Errorf("%w: (%d,%d) not in coupling map", ErrBadEdge, a, b)
	}
	p.weights[e] = w
	return nil
}

// EdgeError returns the calibrated two-qubit error rate of edge (a,b)
// and whether one was set.
func (p *Profile) EdgeError(a, b int) (float64, bool) {
	v, ok := p.errors2q[canonical(a, b)]
	return v, ok
}

// SetEdgeError records a calibrated two-qubit error rate for an existing
// edge. Unknown edges yield ErrBadEdge.
func (p *Profile) SetEdgeError(a, b int, errRate float64) error {
	e := canonical(a, b)
	if _, ok := p.weights[e]; !ok {
		return fmt.Errorf("%w: (%d,%d) not in coupling map", ErrBadEdge, a, b)
	}
	p.errors2q[e] = errRate
	return nil
}

// Clone returns an independent copy of the profile, including weight and
// error overrides.
func (p *Profile) Clone() *Profile {
	out := empty(p.numQubits)
	for e, w := range p.weights {
		out.addEdge(e.A, e.B)
		out.weights[e] = w
	}
	for e, v := range p.errors2q {
		out.errors2q[e] = v
	}
	return out
}
