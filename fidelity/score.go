package fidelity

import (
	"math"

	"github.com/sadpig70/QNS/circuit"
	"github.com/sadpig70/QNS/hardware"
	"github.com/sadpig70/QNS/noise"
)

// ScoreCircuit estimates the execution fidelity of c under the given
// noise model and hardware profile, clamped to [0,1]. This is the value
// the optimizer maximizes. profile may be nil, in which case adjacency
// penalties and crosstalk are skipped (pure reorder scoring).
//
// Complexity: O(gates + k²) where k is the two-qubit gate count bounded
// by the crosstalk window.
func ScoreCircuit(c *circuit.Circuit, model noise.Model, profile *hardware.Profile, cfg Config) float64 {
	f := EstimateCircuitFidelity(c, model, profile, cfg)
	return math.Max(0, math.Min(1, f))
}

// EstimateCircuitFidelity is the unnormalized variant of ScoreCircuit:
// the raw product of the depolarizing, decoherence, and crosstalk
// factors, without clamping.
func EstimateCircuitFidelity(c *circuit.Circuit, model noise.Model, profile *hardware.Profile, cfg Config) float64 {
	if c.Len() == 0 {
		return 1.0
	}
	f := depolarizingFactor(c, model, profile)
	f *= decoherenceFactor(c, model, cfg)
	f *= crosstalkFactor(c, profile, cfg)
	return f
}

// depolarizingFactor multiplies (1 − ε) over the gate sequence.
func depolarizingFactor(c *circuit.Circuit, model noise.Model, profile *hardware.Profile) float64 {
	f := 1.0
	for i := 0; i < c.Len(); i++ {
		g := c.Gate(i)
		f *= 1.0 - gateError(g, model, profile)
	}
	return f
}

// gateError resolves the depolarizing error rate of a single gate.
func gateError(g circuit.Gate, model noise.Model, profile *hardware.Profile) float64 {
	v := model.QubitVector(g.Qubits[0])
	switch {
	case g.IsMeasurement():
		return v.ReadoutError
	case !g.IsTwoQubit():
		return v.GateError1Q
	}

	a, b := g.Qubits[0], g.Qubits[1]
	if profile == nil {
		return v.GateError2Q
	}
	if !profile.AreConnected(a, b) {
		// Non-adjacent operands would need SWAP routing; charge the
		// penalty so routed circuits genuinely outscore unrouted ones.
		return math.Max(routedPenaltyFactor*v.GateError2Q, routedPenaltyFloor)
	}
	if e, ok := profile.EdgeError(a, b); ok {
		return e
	}
	return v.GateError2Q
}

// decoherenceFactor multiplies exp(−elapsed/T2) over every qubit that
// participates in the circuit. Elapsed time per qubit comes from the
// gate-duration table via Schedule; T2 is clamped to 2·T1.
func decoherenceFactor(c *circuit.Circuit, model noise.Model, cfg Config) float64 {
	schedules, _ := Schedule(c, cfg)
	f := 1.0
	for q, s := range schedules {
		if len(s.Spans) == 0 {
			continue
		}
		t2 := model.QubitVector(q).ClampedT2()
		if math.IsInf(t2, 1) {
			continue
		}
		if t2 <= 0 {
			return 0
		}
		elapsedUs := s.EndTime / 1000.0 // ns → µs, matching T2 units
		f *= math.Exp(-elapsedUs / t2)
	}
	return f
}

// crosstalkFactor multiplies (1 − weight·edgeWeight) for each pair of
// two-qubit gates within the scheduling window whose physical edges are
// coupled on the profile.
func crosstalkFactor(c *circuit.Circuit, profile *hardware.Profile, cfg Config) float64 {
	if profile == nil || cfg.CrosstalkWeight == 0 || cfg.CrosstalkWindow <= 0 {
		return 1.0
	}

	type placed struct {
		pos  int
		edge hardware.Edge
	}
	var twoQ []placed
	for i := 0; i < c.Len(); i++ {
		g := c.Gate(i)
		if !g.IsTwoQubit() || !profile.AreConnected(g.Qubits[0], g.Qubits[1]) {
			continue
		}
		e := hardware.Edge{A: g.Qubits[0], B: g.Qubits[1]}
		if e.A > e.B {
			e.A, e.B = e.B, e.A
		}
		twoQ = append(twoQ, placed{pos: i, edge: e})
	}

	f := 1.0
	for i := 0; i < len(twoQ); i++ {
		for j := i + 1; j < len(twoQ); j++ {
			if twoQ[j].pos-twoQ[i].pos > cfg.CrosstalkWindow {
				break
			}
			e1, e2 := twoQ[i].edge, twoQ[j].edge
			if e1 == e2 || !edgesCoupled(profile, e1, e2) {
				continue
			}
			w := math.Max(profile.EdgeWeight(e1.A, e1.B), profile.EdgeWeight(e2.A, e2.B))
			f *= 1.0 - cfg.CrosstalkWeight*w
		}
	}
	return f
}

// edgesCoupled reports whether two distinct edges interact: they share a
// qubit or some endpoint pair is coupled on the profile.
func edgesCoupled(p *hardware.Profile, e1, e2 hardware.Edge) bool {
	if e1.SharesQubit(e2) {
		return true
	}
	return p.AreConnected(e1.A, e2.A) || p.AreConnected(e1.A, e2.B) ||
		p.AreConnected(e1.B, e2.A) || p.AreConnected(e1.B, e2.B)
}

// Schedule computes each qubit's activity timeline under the duration
// table: a gate starts when all its operands are free and occupies them
// for its table duration. Returns per-qubit schedules (indexed by qubit)
// and the circuit makespan in nanoseconds.
//
// Complexity: O(gates).
func Schedule(c *circuit.Circuit, cfg Config) ([]QubitSchedule, float64) {
	n := c.NumQubits()
	schedules := make([]QubitSchedule, n)
	endTimes := make([]float64, n)

	for i := 0; i < c.Len(); i++ {
		g := c.Gate(i)
		dur := gateDuration(g, cfg)

		start := 0.0
		for _, q := range g.Operands() {
			if endTimes[q] > start {
				start = endTimes[q]
			}
		}
		end := start + dur
		for _, q := range g.Operands() {
			schedules[q].Spans = append(schedules[q].Spans, Span{Start: start, End: end})
			schedules[q].ActiveTime += dur
			endTimes[q] = end
		}
	}

	makespan := 0.0
	for q := range schedules {
		schedules[q].EndTime = endTimes[q]
		if endTimes[q] > makespan {
			makespan = endTimes[q]
		}
		prev := 0.0
		for _, sp := range schedules[q].Spans {
			if sp.Start > prev {
				schedules[q].IdleTime += sp.Start - prev
			}
			prev = sp.End
		}
	}
	return schedules, makespan
}

// Makespan returns the circuit's critical-path execution time (ns).
func Makespan(c *circuit.Circuit, cfg Config) float64 {
	_, m := Schedule(c, cfg)
	return m
}

func gateDuration(g circuit.Gate, cfg Config) float64 {
	switch {
	case g.IsMeasurement():
		return cfg.MeasureTime
	case g.IsTwoQubit():
		return cfg.GateTime2Q
	default:
		return cfg.GateTime1Q
	}
}
