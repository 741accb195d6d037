// Package circuit provides the immutable gate-sequence model shared by
// every other package in QNS: gates, commutation algebra, depth analysis,
// and lossless text/JSON round-trips.
//
// A Circuit is built once through append operations and then treated as a
// value: optimizers and simulators never mutate a caller's circuit, they
// derive new ones.
//
// Supported gates:
//   - Single-qubit Clifford: H, X, Y, Z, S, T
//   - Rotations: RX(θ), RY(θ), RZ(θ)
//   - Two-qubit: CNOT, CZ, SWAP
//   - MEASURE (computational basis)
//
// Commutation rule (the sole legality rule for reordering):
//   - gates on disjoint qubit sets always commute;
//   - diagonal gates (Z, S, T, RZ, CZ) commute with each other even when
//     they share qubits;
//   - same-axis rotations (X/RX, Y/RY) commute on a shared qubit;
//   - MEASURE commutes with nothing that touches its qubit.
package circuit
