// Package fidelity estimates how faithfully a circuit would execute on
// noisy hardware. The estimate is the product of three factors computed
// along the gate sequence:
//
//  1. Depolarizing: each gate contributes (1 − ε) using the touched
//     qubits' error rates; two-qubit gates prefer the hardware profile's
//     calibrated per-edge rate, and a two-qubit gate whose operands are
//     not coupled is charged the routing penalty max(3·ε2q, 0.15).
//  2. Decoherence: per-qubit elapsed time accumulates from a fixed
//     gate-duration table; at circuit end each participating qubit
//     contributes exp(−elapsed/T2), with T2 clamped to the physical
//     limit 2·T1.
//  3. Crosstalk: pairs of two-qubit gates scheduled within a bounded
//     window on coupled edges each contribute (1 − weight·edgeWeight).
//
// ScoreCircuit clamps the product to [0,1] and is the value the
// optimizer maximizes; EstimateCircuitFidelity is the raw product.
package fidelity
