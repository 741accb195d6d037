package simulator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadpig70/QNS/circuit"
	"github.com/sadpig70/QNS/hardware"
	"github.com/sadpig70/QNS/noise"
	"github.com/sadpig70/QNS/simulator"
)

func bellCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.New(2)
	require.NoError(t, c.H(0))
	require.NoError(t, c.CNOT(0, 1))
	return c
}

func TestBellStateSampling(t *testing.T) {
	b := simulator.Ideal(2)
	res, err := b.Run(context.Background(), bellCircuit(t), 1024)
	require.NoError(t, err)
	require.Equal(t, 1024, res.Shots)

	total := 0
	for bits, n := range res.Counts {
		require.Contains(t, []string{"00", "11"}, bits)
		total += n
	}
	require.Equal(t, 1024, total)
	require.InDelta(t, 0.5, res.Probability("00"), 0.15)
	require.InDelta(t, 0.5, res.Probability("11"), 0.15)
	require.NotEmpty(t, res.JobID)
}

func TestDeterministicEvolution(t *testing.T) {
	b := simulator.Ideal(2)

	// X then SWAP moves the excitation to qubit 1.
	c := circuit.New(2)
	require.NoError(t, c.X(0))
	require.NoError(t, c.SWAP(0, 1))
	res, err := b.Run(context.Background(), c, 16)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"01": 16}, res.Counts)

	// CNOT copies the control excitation onto the target.
	d := circuit.New(2)
	require.NoError(t, d.X(0))
	require.NoError(t, d.CNOT(0, 1))
	res, err = b.Run(context.Background(), d, 16)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"11": 16}, res.Counts)
}

func TestExplicitMeasurementSelectsQubits(t *testing.T) {
	b := simulator.Ideal(3)
	c := circuit.New(3)
	require.NoError(t, c.X(2))
	require.NoError(t, c.Measure(2))

	res, err := b.Run(context.Background(), c, 8)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"1": 8}, res.Counts)
}

func TestNoisyCountsSumToShots(t *testing.T) {
	b, err := simulator.New(2, noise.Typical(), simulator.WithSeed(7))
	require.NoError(t, err)

	res, err := b.Run(context.Background(), bellCircuit(t), 500)
	require.NoError(t, err)

	total := 0
	for bits, n := range res.Counts {
		require.Len(t, bits, 2)
		total += n
	}
	require.Equal(t, 500, total)
}

func TestSeedReproducibility(t *testing.T) {
	run := func(workers int) map[string]int {
		b, err := simulator.New(2, noise.Typical(),
			simulator.WithSeed(42), simulator.WithWorkers(workers))
		require.NoError(t, err)
		res, err := b.Run(context.Background(), bellCircuit(t), 300)
		require.NoError(t, err)
		return res.Counts
	}

	first := run(1)
	// Worker count must not leak into the sampled outcomes.
	require.Equal(t, first, run(4))
	require.Equal(t, first, run(1))
}

func TestProbabilities(t *testing.T) {
	b := simulator.Ideal(2)
	probs, err := b.Probabilities(bellCircuit(t))
	require.NoError(t, err)
	require.Len(t, probs, 4)
	require.InDelta(t, 0.5, probs[0], 1e-12)
	require.InDelta(t, 0.0, probs[1], 1e-12)
	require.InDelta(t, 0.0, probs[2], 1e-12)
	require.InDelta(t, 0.5, probs[3], 1e-12)
}

func TestStateFidelity(t *testing.T) {
	bell := bellCircuit(t)

	same, err := simulator.StateFidelity(2, bell, bell)
	require.NoError(t, err)
	require.InDelta(t, 1.0, same, 1e-12)

	// |Φ⁺⟩ against H⊗H|00⟩ overlaps at 1/2.
	hh := circuit.New(2)
	require.NoError(t, hh.H(0))
	require.NoError(t, hh.H(1))
	mixed, err := simulator.StateFidelity(2, bell, hh)
	require.NoError(t, err)
	require.InDelta(t, 0.5, mixed, 1e-12)

	// Orthogonal basis states.
	x := circuit.New(1)
	require.NoError(t, x.X(0))
	zero, err := simulator.StateFidelity(1, circuit.New(1), x)
	require.NoError(t, err)
	require.InDelta(t, 0.0, zero, 1e-12)
}

func TestRotationGates(t *testing.T) {
	b := simulator.Ideal(1)

	// RX(π) flips like X up to global phase.
	c := circuit.New(1)
	require.NoError(t, c.RX(0, 3.141592653589793))
	probs, err := b.Probabilities(c)
	require.NoError(t, err)
	require.InDelta(t, 0.0, probs[0], 1e-9)
	require.InDelta(t, 1.0, probs[1], 1e-9)

	// RZ only shifts phase; probabilities stay put.
	d := circuit.New(1)
	require.NoError(t, d.H(0))
	require.NoError(t, d.RZ(0, 1.234))
	probs, err = b.Probabilities(d)
	require.NoError(t, err)
	require.InDelta(t, 0.5, probs[0], 1e-12)
	require.InDelta(t, 0.5, probs[1], 1e-12)
}

func TestRunValidation(t *testing.T) {
	b := simulator.Ideal(2)

	_, err := b.Run(context.Background(), nil, 10)
	require.ErrorIs(t, err, simulator.ErrQubitMismatch)

	wide := circuit.New(3)
	_, err = b.Run(context.Background(), wide, 10)
	require.ErrorIs(t, err, simulator.ErrQubitMismatch)

	_, err = b.Run(context.Background(), bellCircuit(t), 0)
	require.ErrorIs(t, err, simulator.ErrBadShots)
}

func TestBackendConstruction(t *testing.T) {
	_, err := simulator.New(simulator.MaxQubits+1, noise.Ideal())
	require.ErrorIs(t, err, simulator.ErrTooManyQubits)
	_, err = simulator.New(0, noise.Ideal())
	require.ErrorIs(t, err, simulator.ErrTooManyQubits)
	require.Panics(t, func() { simulator.Ideal(0) })

	_, err = simulator.New(4, noise.Ideal(), simulator.WithTopology(hardware.Linear(2)))
	require.ErrorIs(t, err, simulator.ErrQubitMismatch)

	b, err := simulator.New(2, noise.Ideal(), simulator.WithTopology(hardware.Ring(4)))
	require.NoError(t, err)
	require.Equal(t, 4, b.Topology().NumQubits())
	require.Equal(t, 2, b.NumQubits())

	cal := b.Calibration()
	require.Equal(t, simulator.CalibrationSource, cal.Source)
	require.Equal(t, 2, cal.NumQubits)
}

func TestCancelledRun(t *testing.T) {
	b := simulator.Ideal(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Run(ctx, bellCircuit(t), 1024)
	require.ErrorIs(t, err, context.Canceled)
}
