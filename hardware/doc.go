// Package hardware describes device connectivity: which physical qubit
// pairs support a two-qubit gate, how strongly coupled edges crosstalk,
// and how far apart two qubits sit on the coupling map.
//
// Profiles are built from the standard topology constructors (Linear,
// Ring, Grid, FullyConnected) or from an explicit edge list. Edges are
// undirected; AreConnected is symmetric. Each edge carries a crosstalk
// weight (DefaultCrosstalkWeight unless overridden from calibration) and
// an optional per-edge two-qubit error rate used by the fidelity
// estimator for placement-aware scoring.
//
// ShortestPath is an unweighted breadth-first search over the coupling
// map; the optimizer uses it to pick SWAP insertion steps.
package hardware
