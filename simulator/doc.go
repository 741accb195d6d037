// Package simulator executes circuits by amplitude-level state-vector
// simulation and samples measurement outcomes, independently of the
// analytic estimator in package fidelity.
//
// A Backend is configured once (qubit count, optional noise model,
// topology, seed) and is stateless across Run calls. Ideal backends
// compute the exact output distribution once and sample shots from it;
// noisy backends re-simulate per shot, injecting stochastic Pauli
// perturbations after each gate and readout bit flips at measurement,
// using the noise model's error rates.
//
// Determinism: every shot draws from its own RNG stream derived from
// (seed, shot index) with a SplitMix64 mix, so results are bit-identical
// for a given seed regardless of how shots are spread across workers.
package simulator
