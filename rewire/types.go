// Package rewire - configuration, options, result and error types.
package rewire

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/sadpig70/QNS/circuit"
	"github.com/sadpig70/QNS/fidelity"
	"github.com/sadpig70/QNS/hardware"
	"github.com/sadpig70/QNS/noise"
)

// Sentinel errors for optimization.
var (
	// ErrCapacity is returned when the circuit needs more qubits than the
	// hardware profile provides.
	ErrCapacity = errors.New("rewire: circuit exceeds hardware capacity")

	// ErrInvalidCircuit is returned for a nil circuit or a gate operand
	// outside the circuit's qubit range.
	ErrInvalidCircuit = errors.New("rewire: invalid circuit")

	// ErrRouting is returned when every candidate in the frontier needs a
	// path that the (disconnected) hardware graph cannot provide.
	ErrRouting = errors.New("rewire: no feasible routing on hardware graph")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("rewire: invalid option supplied")
)

// Algorithm names the search strategy that produced a Result.
type Algorithm string

const (
	// AlgorithmBFS is exhaustive breadth-first enumeration.
	AlgorithmBFS Algorithm = "bfs"
	// AlgorithmBeamSearch is bounded-width best-first search.
	AlgorithmBeamSearch Algorithm = "beam_search"
	// AlgorithmAuto selects by estimated variant-space size.
	AlgorithmAuto Algorithm = "auto"
)

// Defaults for optimizer configuration.
const (
	DefaultBeamWidth     = 10
	DefaultMaxIterations = 50
	DefaultBFSThreshold  = 64
	DefaultMaxVariants   = 2048
)

// Config bundles everything one Optimize call depends on. Optimizer
// instances are stateless beyond their Config and safe for reuse.
type Config struct {
	// Noise supplies per-qubit error parameters for scoring.
	Noise noise.Model
	// Hardware is the target connectivity. Required.
	Hardware *hardware.Profile
	// BeamWidth bounds the beam-search frontier.
	BeamWidth int
	// MaxIterations bounds both search depths.
	MaxIterations int
	// BFSThreshold is the variant-space size below which exhaustive
	// enumeration replaces beam search.
	BFSThreshold int
	// MaxVariants caps BFS enumeration.
	MaxVariants int
	// Workers bounds the scoring pool; defaults to GOMAXPROCS.
	Workers int
	// Score is the estimator configuration (gate times, crosstalk).
	Score fidelity.Config
	// Logger receives progress events; defaults to a no-op logger.
	Logger *zap.Logger
}

// Option mutates optimizer configuration. Invalid options are recorded
// and surfaced as ErrOptionViolation from New.
type Option func(*Config) error

// WithBeamWidth sets the beam-search frontier bound (must be positive).
func WithBeamWidth(w int) Option {
	return func(c *Config) error {
		if w < 1 {
			return fmt.Errorf("%w: BeamWidth must be positive (%d)", ErrOptionViolation, w)
		}
		c.BeamWidth = w
		return nil
	}
}

// WithMaxIterations sets the iteration bound (must be positive).
func WithMaxIterations(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: MaxIterations must be positive (%d)", ErrOptionViolation, n)
		}
		c.MaxIterations = n
		return nil
	}
}

// WithWorkers bounds the concurrent scoring pool (must be positive).
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: Workers must be positive (%d)", ErrOptionViolation, n)
		}
		c.Workers = n
		return nil
	}
}

// WithBFSThreshold sets the variant-space size below which exhaustive
// enumeration is chosen.
func WithBFSThreshold(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: BFSThreshold cannot be negative (%d)", ErrOptionViolation, n)
		}
		c.BFSThreshold = n
		return nil
	}
}

// WithCrosstalkWeight overrides the estimator's crosstalk weight.
func WithCrosstalkWeight(w float64) Option {
	return func(c *Config) error {
		if w < 0 || w > 1 {
			return fmt.Errorf("%w: CrosstalkWeight must be in [0,1] (%g)", ErrOptionViolation, w)
		}
		c.Score.CrosstalkWeight = w
		return nil
	}
}

// WithScoreConfig replaces the whole estimator configuration.
func WithScoreConfig(sc fidelity.Config) Option {
	return func(c *Config) error {
		c.Score = sc
		return nil
	}
}

// WithLogger installs a structured logger for progress events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l != nil {
			c.Logger = l
		}
		return nil
	}
}

// Result is the outcome of one Optimize call. Its JSON form is the
// caller contract.
type Result struct {
	// RunID uniquely identifies this optimization run.
	RunID string `json:"run_id"`
	// Algorithm that produced the result: "bfs" or "beam_search".
	Algorithm Algorithm `json:"algorithm"`
	// OriginalScore is the input circuit's fidelity score.
	OriginalScore float64 `json:"original_score"`
	// OptimizedScore is the best score found; never below OriginalScore.
	OptimizedScore float64 `json:"fidelity_after"`
	// ScoreImprovement = OptimizedScore − OriginalScore.
	ScoreImprovement float64 `json:"score_improvement"`
	// Circuit is the optimized, placed, and routed circuit.
	Circuit *circuit.Circuit `json:"routed_gates"`
	// SwapCount is the number of SWAP gates routing inserted.
	SwapCount int `json:"swap_count"`
	// CircuitDepth is the optimized circuit's dependency depth.
	CircuitDepth int `json:"circuit_depth"`
	// VariantsEvaluated counts scored candidates.
	VariantsEvaluated int `json:"variants_evaluated"`
	// TotalTimeMS is the wall-clock optimization time in milliseconds.
	TotalTimeMS float64 `json:"total_time_ms"`

	// Duration is TotalTimeMS as a time.Duration, for Go callers.
	Duration time.Duration `json:"-"`
}

func defaultConfig(model noise.Model, profile *hardware.Profile) Config {
	return Config{
		Noise:         model,
		Hardware:      profile,
		BeamWidth:     DefaultBeamWidth,
		MaxIterations: DefaultMaxIterations,
		BFSThreshold:  DefaultBFSThreshold,
		MaxVariants:   DefaultMaxVariants,
		Workers:       runtime.GOMAXPROCS(0),
		Score:         fidelity.DefaultConfig(),
		Logger:        zap.NewNop(),
	}
}
