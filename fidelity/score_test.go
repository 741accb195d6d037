package fidelity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadpig70/QNS/circuit"
	"github.com/sadpig70/QNS/fidelity"
	"github.com/sadpig70/QNS/hardware"
	"github.com/sadpig70/QNS/noise"
)

func mustGates(t *testing.T, n int, gates ...circuit.Gate) *circuit.Circuit {
	t.Helper()
	c, err := circuit.FromGates(n, gates)
	require.NoError(t, err)
	return c
}

func TestEmptyCircuitScoresOne(t *testing.T) {
	c := circuit.New(3)
	got := fidelity.ScoreCircuit(c, noise.Typical(), hardware.Linear(3), fidelity.DefaultConfig())
	require.Equal(t, 1.0, got)
}

func TestIdealModelScoresOne(t *testing.T) {
	c := mustGates(t, 2,
		circuit.NewGate(circuit.H, 0),
		circuit.NewTwoQubit(circuit.CNOT, 0, 1),
	)
	got := fidelity.ScoreCircuit(c, noise.Ideal(), hardware.Linear(2), fidelity.DefaultConfig())
	require.Equal(t, 1.0, got)
}

func TestScoreDecreasesWithGateCount(t *testing.T) {
	cfg := fidelity.DefaultConfig()
	model := noise.Typical()
	p := hardware.Linear(2)

	one := mustGates(t, 2, circuit.NewGate(circuit.H, 0))
	two := mustGates(t, 2, circuit.NewGate(circuit.H, 0), circuit.NewGate(circuit.X, 0))

	s1 := fidelity.ScoreCircuit(one, model, p, cfg)
	s2 := fidelity.ScoreCircuit(two, model, p, cfg)
	require.Greater(t, s1, s2)
	require.Greater(t, s1, 0.99)
	require.Less(t, s1, 1.0)
}

func TestDisjointGateOrderInvariance(t *testing.T) {
	cfg := fidelity.DefaultConfig()
	model := noise.Typical()
	p := hardware.FullyConnected(3)

	a := mustGates(t, 3,
		circuit.NewGate(circuit.H, 0),
		circuit.NewGate(circuit.H, 1),
		circuit.NewGate(circuit.H, 2),
	)
	b := mustGates(t, 3,
		circuit.NewGate(circuit.H, 2),
		circuit.NewGate(circuit.H, 0),
		circuit.NewGate(circuit.H, 1),
	)

	require.Equal(t,
		fidelity.ScoreCircuit(a, model, p, cfg),
		fidelity.ScoreCircuit(b, model, p, cfg))
}

func TestNonAdjacentTwoQubitPenalty(t *testing.T) {
	cfg := fidelity.DefaultConfig()
	model := noise.Typical()
	p := hardware.Linear(3)

	near := mustGates(t, 3, circuit.NewTwoQubit(circuit.CNOT, 0, 1))
	far := mustGates(t, 3, circuit.NewTwoQubit(circuit.CNOT, 0, 2))

	sNear := fidelity.ScoreCircuit(near, model, p, cfg)
	sFar := fidelity.ScoreCircuit(far, model, p, cfg)
	require.Greater(t, sNear, sFar)
	// The penalty floor dominates typical 2q error rates.
	require.Less(t, sFar, 0.86)
}

func TestCalibratedEdgeErrorOverridesModel(t *testing.T) {
	cfg := fidelity.DefaultConfig()
	model := noise.Typical()
	c := mustGates(t, 2, circuit.NewTwoQubit(circuit.CNOT, 0, 1))

	base := hardware.Linear(2)
	sBase := fidelity.ScoreCircuit(c, model, base, cfg)

	worse := hardware.Linear(2)
	require.NoError(t, worse.SetEdgeError(0, 1, 0.10))
	sWorse := fidelity.ScoreCircuit(c, model, worse, cfg)

	better := hardware.Linear(2)
	require.NoError(t, better.SetEdgeError(0, 1, 0.001))
	sBetter := fidelity.ScoreCircuit(c, model, better, cfg)

	require.Greater(t, sBase, sWorse)
	require.Greater(t, sBetter, sBase)
}

func TestCrosstalkPenalty(t *testing.T) {
	// Two coupled-edge CNOTs inside the window; ideal model isolates the
	// crosstalk factor.
	c := mustGates(t, 4,
		circuit.NewTwoQubit(circuit.CNOT, 0, 1),
		circuit.NewTwoQubit(circuit.CNOT, 2, 3),
	)
	p := hardware.Linear(4)

	withXT := fidelity.EstimateCircuitFidelity(c, noise.Ideal(), p, fidelity.DefaultConfig())
	require.InDelta(t, 1.0-0.01*hardware.DefaultCrosstalkWeight, withXT, 1e-12)

	off := fidelity.DefaultConfig()
	off.CrosstalkWeight = 0
	require.Equal(t, 1.0, fidelity.EstimateCircuitFidelity(c, noise.Ideal(), p, off))
}

func TestCrosstalkWindowBounds(t *testing.T) {
	// Same two CNOTs pushed apart beyond the window interact no more.
	c := mustGates(t, 4,
		circuit.NewTwoQubit(circuit.CNOT, 0, 1),
		circuit.NewGate(circuit.H, 0),
		circuit.NewGate(circuit.H, 0),
		circuit.NewGate(circuit.H, 0),
		circuit.NewTwoQubit(circuit.CNOT, 2, 3),
	)
	got := fidelity.EstimateCircuitFidelity(c, noise.Ideal(), hardware.Linear(4), fidelity.DefaultConfig())
	require.Equal(t, 1.0, got)
}

func TestNilProfileSkipsPlacementTerms(t *testing.T) {
	cfg := fidelity.DefaultConfig()
	c := mustGates(t, 3, circuit.NewTwoQubit(circuit.CNOT, 0, 2))

	// No profile: plain 2q error, no routing penalty.
	got := fidelity.EstimateCircuitFidelity(c, noise.Ideal(), nil, cfg)
	require.Equal(t, 1.0, got)
}

func TestZeroCoherenceScoresZero(t *testing.T) {
	model := noise.Uniform(noise.NewVector(0, 0, 0, 0, 0))
	c := mustGates(t, 1, circuit.NewGate(circuit.H, 0))
	got := fidelity.ScoreCircuit(c, model, hardware.Linear(1), fidelity.DefaultConfig())
	require.Zero(t, got)
}

func TestSchedule(t *testing.T) {
	cfg := fidelity.DefaultConfig()
	c := mustGates(t, 2,
		circuit.NewGate(circuit.H, 0),
		circuit.NewTwoQubit(circuit.CNOT, 0, 1),
	)

	schedules, makespan := fidelity.Schedule(c, cfg)
	require.Len(t, schedules, 2)
	require.Equal(t, 335.0, makespan)

	// q0: H at [0,35), CNOT at [35,335).
	require.Equal(t, []fidelity.Span{{Start: 0, End: 35}, {Start: 35, End: 335}}, schedules[0].Spans)
	require.Equal(t, 335.0, schedules[0].ActiveTime)
	require.Zero(t, schedules[0].IdleTime)
	require.Equal(t, 335.0, schedules[0].EndTime)

	// q1 waits for the control qubit.
	require.Equal(t, 35.0, schedules[1].IdleTime)
	require.Equal(t, 300.0, schedules[1].ActiveTime)
	require.Equal(t, 335.0, schedules[1].EndTime)
}

func TestScheduleParallelGates(t *testing.T) {
	cfg := fidelity.DefaultConfig()
	c := mustGates(t, 3,
		circuit.NewGate(circuit.H, 0),
		circuit.NewGate(circuit.H, 1),
		circuit.NewGate(circuit.H, 2),
	)
	require.Equal(t, 35.0, fidelity.Makespan(c, cfg))
}

func TestMeasureDuration(t *testing.T) {
	cfg := fidelity.DefaultConfig()
	c := mustGates(t, 1, circuit.NewGate(circuit.MEASURE, 0))
	require.Equal(t, 1000.0, fidelity.Makespan(c, cfg))
}
