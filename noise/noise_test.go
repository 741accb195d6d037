package noise_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadpig70/QNS/noise"
)

func TestVectorIsValid(t *testing.T) {
	require.True(t, noise.NewVector(100, 80, 0.001, 0.01, 0.01).IsValid())
	require.True(t, noise.NewVector(100, 200, 0, 0, 0).IsValid()) // T2 == 2·T1 boundary
	require.False(t, noise.NewVector(50, 120, 0.001, 0.01, 0.01).IsValid())
	require.True(t, noise.IdealVector().IsValid())
}

func TestClampedT2(t *testing.T) {
	require.Equal(t, 80.0, noise.NewVector(100, 80, 0, 0, 0).ClampedT2())
	require.Equal(t, 100.0, noise.NewVector(50, 120, 0, 0, 0).ClampedT2())
	require.True(t, math.IsInf(noise.IdealVector().ClampedT2(), 1))
}

func TestIdealVector(t *testing.T) {
	v := noise.IdealVector()
	require.True(t, v.IsIdeal())
	require.True(t, math.IsInf(v.T1, 1))
	require.Zero(t, v.GateError1Q)
	require.Zero(t, v.ReadoutError)

	require.False(t, noise.TypicalVector().IsIdeal())
}

func TestTypicalVector(t *testing.T) {
	v := noise.TypicalVector()
	require.Equal(t, noise.TypicalT1, v.T1)
	require.Equal(t, noise.TypicalT2, v.T2)
	require.Equal(t, noise.TypicalGateError1Q, v.GateError1Q)
	require.Equal(t, noise.TypicalGateError2Q, v.GateError2Q)
	require.Equal(t, noise.TypicalReadoutError, v.ReadoutError)
	require.True(t, v.IsValid())
}

func TestModels(t *testing.T) {
	require.True(t, noise.Ideal().IsIdeal())
	require.False(t, noise.Typical().IsIdeal())

	custom := noise.NewVector(60, 40, 0.002, 0.02, 0.03)
	m := noise.Uniform(custom)
	require.Equal(t, custom, m.QubitVector(0))
	require.Equal(t, custom, m.QubitVector(7)) // uniform across qubits
	require.False(t, m.IsIdeal())
}
