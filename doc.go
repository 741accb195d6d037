// Package QNS compiles logical quantum circuits into hardware-compliant,
// noise-optimized circuits: given a gate sequence, a noise profile, and
// a connectivity topology, it re-orders, places, and routes the circuit
// to maximize an estimated execution fidelity.
//
// The module is organized as leaf-first packages:
//
//	circuit/   immutable gate-sequence model, commutation algebra,
//	           text (OPENQASM-like) and JSON round-trips
//	noise/     per-qubit T1/T2 and error-rate profiles, ideal and
//	           NISQ-typical models
//	hardware/  coupling maps (linear, ring, grid, fully connected,
//	           explicit edges), crosstalk weights, BFS shortest paths
//	fidelity/  the analytic estimator the optimizer maximizes
//	rewire/    the search engine: commuting reorders, placement,
//	           SWAP routing; exhaustive BFS or beam search
//	simulator/ state-vector backend validating optimizer output by
//	           sampled execution, ideal or noisy
//
// Typical flow: build a circuit.Circuit, pick a noise.Model and a
// hardware.Profile, call rewire.Optimizer.Optimize, then cross-check
// the returned circuit on simulator.Backend.Run. Every call is
// stateless given its inputs.
package QNS
