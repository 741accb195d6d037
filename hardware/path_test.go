package hardware_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadpig70/QNS/hardware"
)

func TestShortestPathLinear(t *testing.T) {
	p := hardware.Linear(5)

	path, ok := p.ShortestPath(0, 3)
	require.True(t, ok)
	require.Equal(t, []int{0, 1, 2, 3}, path)

	path, ok = p.ShortestPath(4, 2)
	require.True(t, ok)
	require.Equal(t, []int{4, 3, 2}, path)

	path, ok = p.ShortestPath(2, 2)
	require.True(t, ok)
	require.Equal(t, []int{2}, path)
}

func TestShortestPathRingTakesShorterArc(t *testing.T) {
	p := hardware.Ring(6)
	path, ok := p.ShortestPath(0, 5)
	require.True(t, ok)
	require.Equal(t, []int{0, 5}, path) // closing edge, not the chain
}

func TestShortestPathDisconnected(t *testing.T) {
	p, err := hardware.FromEdges(4, []hardware.Edge{{A: 0, B: 1}, {A: 2, B: 3}})
	require.NoError(t, err)

	path, ok := p.ShortestPath(0, 3)
	require.False(t, ok)
	require.Nil(t, path)

	_, ok = p.ShortestPath(0, 9)
	require.False(t, ok)
}

func TestDistance(t *testing.T) {
	p := hardware.Linear(5)

	d, ok := p.Distance(0, 4)
	require.True(t, ok)
	require.Equal(t, 4, d)

	d, ok = p.Distance(1, 1)
	require.True(t, ok)
	require.Zero(t, d)

	iso, err := hardware.FromEdges(3, []hardware.Edge{{A: 0, B: 1}})
	require.NoError(t, err)
	_, ok = iso.Distance(0, 2)
	require.False(t, ok)
}
