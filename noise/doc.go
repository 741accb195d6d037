// Package noise models per-qubit decoherence and error parameters.
//
// A Vector bundles the five calibration figures the estimator consumes:
// T1 (energy relaxation, µs), T2 (dephasing, µs), single- and two-qubit
// gate error rates, and readout error. Construction never fails; the
// physical constraint T2 ≤ 2·T1 is advisory and reported by IsValid.
//
// A Model applies one Vector uniformly to every qubit. Ideal() is the
// zero-error, infinite-coherence baseline used for sanity checks and for
// the simulator's noiseless mode; Typical() carries NISQ-typical figures.
// Calibration fetching is an external collaborator's job: callers inject
// populated models, this package never reaches out.
package noise
