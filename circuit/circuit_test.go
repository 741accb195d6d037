package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadpig70/QNS/circuit"
)

func bell(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.New(2)
	require.NoError(t, c.H(0))
	require.NoError(t, c.CNOT(0, 1))
	return c
}

func TestAppendValidatesOperands(t *testing.T) {
	c := circuit.New(2)
	require.NoError(t, c.H(0))
	require.NoError(t, c.CNOT(0, 1))

	require.ErrorIs(t, c.H(2), circuit.ErrInvalidQubit)
	require.ErrorIs(t, c.X(-1), circuit.ErrInvalidQubit)
	require.ErrorIs(t, c.CNOT(0, 2), circuit.ErrInvalidQubit)
	require.ErrorIs(t, c.CNOT(1, 1), circuit.ErrInvalidQubit)

	// Rotations must come with an angle.
	require.ErrorIs(t, c.AppendSingle(circuit.RX, 0), circuit.ErrMissingAngle)
	require.NoError(t, c.RX(0, 0.5))
}

func TestDepth(t *testing.T) {
	c := bell(t)
	require.Equal(t, 2, c.Depth())

	// Disjoint single-qubit gates stack at depth 1.
	d := circuit.New(3)
	require.NoError(t, d.H(0))
	require.NoError(t, d.H(1))
	require.NoError(t, d.H(2))
	require.Equal(t, 1, d.Depth())

	// A serial chain on one qubit grows linearly.
	s := circuit.New(1)
	require.NoError(t, s.H(0))
	require.NoError(t, s.X(0))
	require.NoError(t, s.Y(0))
	require.Equal(t, 3, s.Depth())
}

func TestTwoQubitCount(t *testing.T) {
	c := bell(t)
	require.Equal(t, 1, c.TwoQubitCount())
	require.NoError(t, c.SWAP(0, 1))
	require.Equal(t, 2, c.TwoQubitCount())
}

func TestCommutesDisjointQubits(t *testing.T) {
	require.True(t, circuit.NewGate(circuit.H, 0).Commutes(circuit.NewGate(circuit.X, 1)))
	require.True(t, circuit.NewTwoQubit(circuit.CNOT, 0, 1).Commutes(circuit.NewGate(circuit.H, 2)))
	require.True(t, circuit.NewRotation(circuit.RZ, 0, 0.5).Commutes(circuit.NewRotation(circuit.RY, 1, 0.3)))
}

func TestCommutesDiagonalFamily(t *testing.T) {
	require.True(t, circuit.NewGate(circuit.Z, 0).Commutes(circuit.NewGate(circuit.S, 0)))
	require.True(t, circuit.NewGate(circuit.S, 0).Commutes(circuit.NewGate(circuit.T, 0)))
	require.True(t, circuit.NewGate(circuit.T, 0).Commutes(circuit.NewRotation(circuit.RZ, 0, 0.5)))
	require.True(t, circuit.NewRotation(circuit.RZ, 0, 0.1).Commutes(circuit.NewRotation(circuit.RZ, 0, 0.2)))
	// CZ is diagonal too.
	require.True(t, circuit.NewTwoQubit(circuit.CZ, 0, 1).Commutes(circuit.NewGate(circuit.Z, 0)))
}

func TestCommutesSameAxis(t *testing.T) {
	require.True(t, circuit.NewGate(circuit.X, 0).Commutes(circuit.NewRotation(circuit.RX, 0, 0.5)))
	require.True(t, circuit.NewGate(circuit.Y, 0).Commutes(circuit.NewRotation(circuit.RY, 0, 0.5)))
}

func TestNotCommutesDifferentAxes(t *testing.T) {
	require.False(t, circuit.NewGate(circuit.X, 0).Commutes(circuit.NewGate(circuit.Y, 0)))
	require.False(t, circuit.NewGate(circuit.X, 0).Commutes(circuit.NewGate(circuit.Z, 0)))
	require.False(t, circuit.NewGate(circuit.H, 0).Commutes(circuit.NewGate(circuit.X, 0)))
	require.False(t, circuit.NewTwoQubit(circuit.CNOT, 0, 1).Commutes(circuit.NewGate(circuit.X, 0)))
}

func TestMeasureNeverCommutesOnSharedQubit(t *testing.T) {
	m := circuit.NewGate(circuit.MEASURE, 0)
	require.False(t, m.Commutes(circuit.NewGate(circuit.H, 0)))
	require.False(t, m.Commutes(circuit.NewGate(circuit.Z, 0)))
	require.True(t, m.Commutes(circuit.NewGate(circuit.H, 1)))
}

func TestAdjacentCommutingPairs(t *testing.T) {
	c := circuit.New(3)
	require.NoError(t, c.H(0))
	require.NoError(t, c.X(1)) // commutes with H(0): disjoint
	require.NoError(t, c.CNOT(0, 1))

	require.Equal(t, []int{0}, c.AdjacentCommutingPairs())
}

func TestSwapAdjacentLeavesOriginalIntact(t *testing.T) {
	c := circuit.New(3)
	require.NoError(t, c.H(0))
	require.NoError(t, c.X(1))

	swapped := c.SwapAdjacent(0)
	require.Equal(t, circuit.X, swapped.Gate(0).Tag)
	require.Equal(t, circuit.H, c.Gate(0).Tag)
	require.False(t, c.Equal(swapped))
}

func TestMapQubits(t *testing.T) {
	g := circuit.NewTwoQubit(circuit.CNOT, 0, 2).MapQubits([]int{2, 1, 0})
	require.Equal(t, [2]int{2, 0}, g.Qubits)

	r := circuit.NewRotation(circuit.RX, 1, 0.7).MapQubits([]int{0, 3, 2, 1})
	require.Equal(t, 3, r.Qubits[0])
	require.Equal(t, 0.7, r.Angle)
}

func TestCloneIndependence(t *testing.T) {
	c := bell(t)
	cl := c.Clone()
	require.True(t, c.Equal(cl))
	require.NoError(t, cl.X(0))
	require.False(t, c.Equal(cl))
	require.Equal(t, 2, c.Len())
}

func TestFromGatesValidates(t *testing.T) {
	_, err := circuit.FromGates(2, []circuit.Gate{circuit.NewGate(circuit.H, 5)})
	require.ErrorIs(t, err, circuit.ErrInvalidQubit)

	c, err := circuit.FromGates(2, []circuit.Gate{
		circuit.NewGate(circuit.H, 0),
		circuit.NewTwoQubit(circuit.CNOT, 0, 1),
	})
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
}
