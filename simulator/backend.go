// Package simulator - the Backend and its Run/Calibration/Topology API.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadpig70/QNS/circuit"
	"github.com/sadpig70/QNS/hardware"
	"github.com/sadpig70/QNS/noise"
)

// MaxQubits bounds state-vector size (2^24 amplitudes ≈ 256 MiB).
const MaxQubits = 24

// CalibrationSource tags CalibrationData produced by this backend.
const CalibrationSource = "simulator"

// Sentinel errors for backend construction and execution.
var (
	// ErrTooManyQubits is returned when the backend size exceeds MaxQubits.
	ErrTooManyQubits = errors.New("simulator: qubit count exceeds state-vector limit")

	// ErrQubitMismatch is returned when a circuit needs more qubits than
	// the backend has.
	ErrQubitMismatch = errors.New("simulator: circuit exceeds backend qubit count")

	// ErrBadShots is returned for a non-positive shot count.
	ErrBadShots = errors.New("simulator: shots must be positive")
)

// ExecutionResult is the outcome of one Run call. Counts maps measured
// bitstrings (qubit 0 leftmost) to occurrence counts; the values always
// sum to Shots.
type ExecutionResult struct {
	JobID  string         `json:"job_id"`
	Counts map[string]int `json:"counts"`
	Shots  int            `json:"shots"`
}

// Probability returns the observed frequency of a bitstring.
func (r *ExecutionResult) Probability(bits string) float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Counts[bits]) / float64(r.Shots)
}

// CalibrationData tags where a backend's noise figures came from.
type CalibrationData struct {
	Source    string `json:"source"`
	NumQubits int    `json:"num_qubits"`
}

// Option configures a Backend at construction.
type Option func(*Backend) error

// WithSeed fixes the sampling seed for reproducible noisy runs.
// Seed 0 selects the stable default stream.
func WithSeed(seed int64) Option {
	return func(b *Backend) error {
		b.seed = seed
		return nil
	}
}

// WithTopology overrides the backend's implicit hardware profile. The
// profile must cover the backend's qubits.
func WithTopology(p *hardware.Profile) Option {
	return func(b *Backend) error {
		if p == nil || p.NumQubits() < b.numQubits {
			return fmt.Errorf("%w: topology smaller than backend", ErrQubitMismatch)
		}
		b.topo = p
		return nil
	}
}

// WithWorkers bounds the shot-sampling pool (must be positive).
func WithWorkers(n int) Option {
	return func(b *Backend) error {
		if n < 1 {
			return fmt.Errorf("simulator: workers must be positive (%d)", n)
		}
		b.workers = n
		return nil
	}
}

// WithLogger installs a structured logger for execution events.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) error {
		if l != nil {
			b.logger = l
		}
		return nil
	}
}

// Backend executes circuits over a fixed qubit count. Instances are
// stateless beyond configuration and safe for concurrent Run calls.
type Backend struct {
	numQubits int
	model     noise.Model
	topo      *hardware.Profile
	seed      int64
	workers   int
	logger    *zap.Logger
}

// Ideal returns a noiseless backend over n qubits.
func Ideal(n int) *Backend {
	b, err := New(n, noise.Ideal())
	if err != nil {
		// n out of range is a programming error for the shorthand.
		panic(err)
	}
	return b
}

// New builds a backend over n qubits with the given noise model. The
// implicit topology is a linear chain sized to n, matching the
// optimizer's default routing semantics; override with WithTopology.
func New(n int, model noise.Model, opts ...Option) (*Backend, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyQubits, n, MaxQubits)
	}
	b := &Backend{
		numQubits: n,
		model:     model,
		topo:      hardware.Linear(n),
		workers:   runtime.GOMAXPROCS(0),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// NumQubits returns the backend's qubit count.
func (b *Backend) NumQubits() int { return b.numQubits }

// Calibration tags this backend as the noise source.
func (b *Backend) Calibration() CalibrationData {
	return CalibrationData{Source: CalibrationSource, NumQubits: b.numQubits}
}

// Topology exposes the hardware profile the backend assumes for
// routing-aware execution, consistent with the optimizer's semantics.
func (b *Backend) Topology() *hardware.Profile { return b.topo }

// Run simulates c and samples shots measurement outcomes. The counts
// always sum to shots. Noisy backends re-simulate per shot; ideal
// backends sample the exact distribution. Cancellation of ctx aborts
// with ctx.Err().
func (b *Backend) Run(ctx context.Context, c *circuit.Circuit, shots int) (*ExecutionResult, error) {
	if c == nil || c.NumQubits() > b.numQubits {
		return nil, fmt.Errorf("%w", ErrQubitMismatch)
	}
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadShots, shots)
	}

	measured := measuredQubits(c)
	var counts map[string]int
	var err error
	if b.model.IsIdeal() {
		counts, err = b.runIdeal(ctx, c, shots, measured)
	} else {
		counts, err = b.runNoisy(ctx, c, shots, measured)
	}
	if err != nil {
		return nil, err
	}

	res := &ExecutionResult{JobID: uuid.NewString(), Counts: counts, Shots: shots}
	b.logger.Debug("run finished",
		zap.String("job_id", res.JobID),
		zap.Int("shots", shots),
		zap.Int("outcomes", len(counts)),
	)
	return res, nil
}

// Probabilities returns the exact noiseless output distribution of c
// over the backend's basis states.
func (b *Backend) Probabilities(c *circuit.Circuit) ([]float64, error) {
	if c == nil || c.NumQubits() > b.numQubits {
		return nil, fmt.Errorf("%w", ErrQubitMismatch)
	}
	return b.evolve(c).probabilities(), nil
}

// StateFidelity returns |⟨a|b⟩|² between the ideal final states of two
// circuits over n qubits. Used to cross-check that an optimized circuit
// preserves the original's semantics up to routing relabeling.
func StateFidelity(n int, a, bc *circuit.Circuit) (float64, error) {
	if n < 1 || n > MaxQubits {
		return 0, fmt.Errorf("%w: %d", ErrTooManyQubits, n)
	}
	if a == nil || bc == nil || a.NumQubits() > n || bc.NumQubits() > n {
		return 0, fmt.Errorf("%w", ErrQubitMismatch)
	}
	sa, sb := newStateVector(n), newStateVector(n)
	for _, g := range a.Gates() {
		sa.applyGate(g)
	}
	for _, g := range bc.Gates() {
		sb.applyGate(g)
	}
	ip := innerProduct(sa, sb)
	return real(ip)*real(ip) + imag(ip)*imag(ip), nil
}

// runIdeal evolves once and samples shots from the exact distribution,
// one derived RNG stream per shot so worker assignment cannot matter.
func (b *Backend) runIdeal(ctx context.Context, c *circuit.Circuit, shots int, measured []int) (map[string]int, error) {
	probs := b.evolve(c).probabilities()
	return b.sampleShots(ctx, shots, func(shot uint64, rng *rand.Rand) string {
		return b.formatBits(sample(probs, rng), measured, nil)
	})
}

// runNoisy re-simulates the circuit per shot with stochastic Pauli
// injections and readout flips.
func (b *Backend) runNoisy(ctx context.Context, c *circuit.Circuit, shots int, measured []int) (map[string]int, error) {
	gates := c.Gates()
	return b.sampleShots(ctx, shots, func(shot uint64, rng *rand.Rand) string {
		sv := newStateVector(b.numQubits)
		for _, g := range gates {
			sv.applyGate(g)
			b.injectGateNoise(sv, g, rng)
		}
		return b.formatBits(sample(sv.probabilities(), rng), measured, rng)
	})
}

// sampleShots spreads shots across the worker pool and merges counts.
func (b *Backend) sampleShots(ctx context.Context, shots int, one func(uint64, *rand.Rand) string) (map[string]int, error) {
	workers := b.workers
	if workers > shots {
		workers = shots
	}

	partial := make([]map[string]int, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			local := make(map[string]int)
			// Strided assignment; per-shot streams keep it deterministic.
			for shot := w; shot < shots; shot += workers {
				if shot%256 == 0 && ctx.Err() != nil {
					break
				}
				local[one(uint64(shot), shotRNG(b.seed, uint64(shot)))]++
			}
			partial[w] = local
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, local := range partial {
		for k, v := range local {
			counts[k] += v
		}
	}
	return counts, nil
}

// injectGateNoise applies a uniformly random Pauli to each qubit the
// gate touched, with the model's per-gate error probability.
func (b *Backend) injectGateNoise(sv *stateVector, g circuit.Gate, rng *rand.Rand) {
	for _, q := range g.Operands() {
		v := b.model.QubitVector(q)
		rate := v.GateError1Q
		if g.IsTwoQubit() {
			rate = v.GateError2Q
		}
		if g.IsMeasurement() || rate <= 0 || rng.Float64() >= rate {
			continue
		}
		switch rng.Intn(3) {
		case 0:
			sv.applyX(q)
		case 1:
			sv.applyGate(circuit.NewGate(circuit.Y, q))
		default:
			sv.phase(q, -1)
		}
	}
}

// evolve runs the full gate sequence on a fresh state vector.
func (b *Backend) evolve(c *circuit.Circuit) *stateVector {
	sv := newStateVector(b.numQubits)
	for _, g := range c.Gates() {
		sv.applyGate(g)
	}
	return sv
}

// formatBits renders a basis-state index as the measured bitstring,
// qubit 0 leftmost, applying readout flips when rng is non-nil.
func (b *Backend) formatBits(index int, measured []int, rng *rand.Rand) string {
	var sb strings.Builder
	sb.Grow(len(measured))
	for _, q := range measured {
		bit := (index >> q) & 1
		if rng != nil {
			if ro := b.model.QubitVector(q).ReadoutError; ro > 0 && rng.Float64() < ro {
				bit ^= 1
			}
		}
		sb.WriteByte('0' + byte(bit))
	}
	return sb.String()
}

// measuredQubits returns the qubits carrying MEASURE gates in ascending
// order, or every backend qubit up to the circuit width when the
// circuit measures nothing explicitly.
func measuredQubits(c *circuit.Circuit) []int {
	seen := make(map[int]bool)
	for _, g := range c.Gates() {
		if g.IsMeasurement() {
			seen[g.Qubits[0]] = true
		}
	}
	if len(seen) == 0 {
		all := make([]int, c.NumQubits())
		for i := range all {
			all[i] = i
		}
		return all
	}
	out := make([]int, 0, len(seen))
	for q := 0; q < c.NumQubits(); q++ {
		if seen[q] {
			out = append(out, q)
		}
	}
	return out
}
