// Package rewire - the Optimize entry points, frontier loops, and the
// scoring pool.
package rewire

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadpig70/QNS/circuit"
	"github.com/sadpig70/QNS/fidelity"
	"github.com/sadpig70/QNS/hardware"
	"github.com/sadpig70/QNS/noise"
)

// Optimizer searches the space of legal reorderings, placements, and
// routings of a circuit. Instances hold configuration only and may be
// reused across calls and goroutines.
type Optimizer struct {
	cfg Config
}

// New builds an Optimizer for the given noise model and hardware
// profile. A nil profile yields ErrOptionViolation; bad options surface
// their own violation errors.
func New(model noise.Model, profile *hardware.Profile, opts ...Option) (*Optimizer, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: hardware profile is required", ErrOptionViolation)
	}
	cfg := defaultConfig(model, profile)
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Optimizer{cfg: cfg}, nil
}

// Config returns a copy of the effective configuration.
func (o *Optimizer) Config() Config { return o.cfg }

// Optimize searches with automatic algorithm selection: exhaustive
// enumeration when the reachable variant space is below BFSThreshold,
// beam search otherwise. Cancellation or deadline expiry on ctx returns
// the best candidate found so far, never an error.
func (o *Optimizer) Optimize(ctx context.Context, c *circuit.Circuit) (*Result, error) {
	return o.run(ctx, c, AlgorithmAuto)
}

// OptimizeWithAlgorithm forces a specific search strategy. Passing
// AlgorithmAuto behaves like Optimize.
func (o *Optimizer) OptimizeWithAlgorithm(ctx context.Context, c *circuit.Circuit, algo Algorithm) (*Result, error) {
	return o.run(ctx, c, algo)
}

func (o *Optimizer) run(ctx context.Context, c *circuit.Circuit, algo Algorithm) (*Result, error) {
	start := time.Now()
	if err := o.validate(c); err != nil {
		return nil, err
	}

	exp := newExpander(o.cfg.Hardware)
	seed := newCandidate(o.cfg.Hardware.NumQubits(), c.Gates(), 0, 0)
	exp.nextOrder = 1
	exp.admit(seed)
	seed.score = o.scoreOne(seed)

	if algo == AlgorithmAuto || algo == "" {
		if o.variantEstimate(seed) <= o.cfg.BFSThreshold {
			algo = AlgorithmBFS
		} else {
			algo = AlgorithmBeamSearch
		}
	}

	o.cfg.Logger.Debug("optimization started",
		zap.String("algorithm", string(algo)),
		zap.Int("gates", c.Len()),
		zap.Int("num_qubits", c.NumQubits()),
	)

	var (
		best      candidate
		evaluated int
		err       error
	)
	switch algo {
	case AlgorithmBFS:
		best, evaluated, err = o.enumerate(ctx, exp, seed)
	default:
		best, evaluated, err = o.beamSearch(ctx, exp, seed)
	}
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	res := &Result{
		RunID:             uuid.NewString(),
		Algorithm:         algo,
		OriginalScore:     seed.score,
		OptimizedScore:    best.score,
		ScoreImprovement:  best.score - seed.score,
		Circuit:           best.toCircuit(o.cfg.Hardware.NumQubits()),
		SwapCount:         best.swaps,
		CircuitDepth:      best.depth,
		VariantsEvaluated: evaluated,
		TotalTimeMS:       float64(elapsed.Nanoseconds()) / 1e6,
		Duration:          elapsed,
	}
	o.cfg.Logger.Info("optimization finished",
		zap.String("run_id", res.RunID),
		zap.String("algorithm", string(res.Algorithm)),
		zap.Float64("original_score", res.OriginalScore),
		zap.Float64("optimized_score", res.OptimizedScore),
		zap.Int("swap_count", res.SwapCount),
		zap.Int("variants", res.VariantsEvaluated),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

// validate enforces the construction-time failure modes: capacity and
// operand range.
func (o *Optimizer) validate(c *circuit.Circuit) error {
	if c == nil {
		return fmt.Errorf("%w: nil circuit", ErrInvalidCircuit)
	}
	if c.NumQubits() > o.cfg.Hardware.NumQubits() {
		return fmt.Errorf("%w: circuit wants %d qubits, hardware has %d",
			ErrCapacity, c.NumQubits(), o.cfg.Hardware.NumQubits())
	}
	for i := 0; i < c.Len(); i++ {
		for _, q := range c.Gate(i).Operands() {
			if q < 0 || q >= c.NumQubits() {
				return fmt.Errorf("%w: gate %d operand %d out of range", ErrInvalidCircuit, i, q)
			}
		}
	}
	return nil
}

// variantEstimate upper-bounds the reachable variant space, in the
// spirit of 2^(commuting pairs) capped for overflow, widened by pending
// routing work.
func (o *Optimizer) variantEstimate(seed candidate) int {
	pairs := 0
	for i := 0; i+1 < len(seed.gates); i++ {
		if seed.gates[i].Commutes(seed.gates[i+1]) {
			pairs++
		}
	}
	unrouted := 0
	for _, g := range seed.gates {
		if g.IsTwoQubit() && !o.cfg.Hardware.AreConnected(g.Qubits[0], g.Qubits[1]) {
			unrouted++
		}
	}
	bits := pairs + 2*unrouted
	if bits > 16 {
		bits = 16
	}
	return 1 << bits
}

// enumerate explores the variant space breadth-first until exhaustion,
// MaxVariants, MaxIterations depth, or cancellation. Only routed
// candidates may displace the seed, and only under the tie-break order,
// so the returned candidate never scores below the seed. ErrRouting
// surfaces only if no candidate was ever routable.
func (o *Optimizer) enumerate(ctx context.Context, exp *expander, seed candidate) (candidate, int, error) {
	type depthItem struct {
		cand  candidate
		depth int
	}

	best := seed
	evaluated := 1
	sawFeasible := firstUnrouted(seed.gates, o.cfg.Hardware) == -1
	queue := []depthItem{{cand: seed}}

	for len(queue) > 0 && evaluated < o.cfg.MaxVariants {
		select {
		case <-ctx.Done():
			// Cooperative checkpoint: return the best found so far.
			return best, evaluated, nil
		default:
		}

		item := queue[0]
		queue = queue[1:]
		if item.depth >= o.cfg.MaxIterations {
			continue
		}

		succ, infeasible := exp.successors(item.cand)
		if !infeasible {
			sawFeasible = true
		}
		o.scoreAll(succ)
		evaluated += len(succ)

		for _, cand := range succ {
			if firstUnrouted(cand.gates, o.cfg.Hardware) == -1 {
				sawFeasible = true
				if cand.better(best) {
					best = cand
				}
			}
			queue = append(queue, depthItem{cand: cand, depth: item.depth + 1})
			if evaluated >= o.cfg.MaxVariants {
				break
			}
		}
	}

	if !sawFeasible {
		return candidate{}, evaluated, ErrRouting
	}
	return best, evaluated, nil
}

// beamSearch keeps a frontier of at most BeamWidth candidates, expands
// every member each iteration, scores successors on the worker pool,
// and retains the top of the pooled frontier under the tie-break order.
// Feasibility and seed-displacement rules match enumerate exactly.
func (o *Optimizer) beamSearch(ctx context.Context, exp *expander, seed candidate) (candidate, int, error) {
	best := seed
	evaluated := 1
	sawFeasible := firstUnrouted(seed.gates, o.cfg.Hardware) == -1
	frontier := []candidate{seed}

	for iter := 0; iter < o.cfg.MaxIterations && len(frontier) > 0; iter++ {
		select {
		case <-ctx.Done():
			return best, evaluated, nil
		default:
		}

		var pool []candidate
		for _, cand := range frontier {
			succ, infeasible := exp.successors(cand)
			if !infeasible {
				sawFeasible = true
			}
			pool = append(pool, succ...)
		}
		if len(pool) == 0 {
			break
		}

		o.scoreAll(pool)
		evaluated += len(pool)

		for _, cand := range pool {
			if firstUnrouted(cand.gates, o.cfg.Hardware) == -1 {
				sawFeasible = true
				if cand.better(best) {
					best = cand
				}
			}
		}

		// Carry the frontier forward with its successors so strong
		// parents survive pruning, then retain the top BeamWidth.
		pool = append(pool, frontier...)
		sort.Slice(pool, func(i, j int) bool { return pool[i].better(pool[j]) })
		if len(pool) > o.cfg.BeamWidth {
			pool = pool[:o.cfg.BeamWidth]
		}
		frontier = pool

		o.cfg.Logger.Debug("beam iteration",
			zap.Int("iteration", iter),
			zap.Int("frontier", len(frontier)),
			zap.Float64("best_score", best.score),
		)
	}

	if !sawFeasible {
		return candidate{}, evaluated, ErrRouting
	}
	return best, evaluated, nil
}

// scoreAll evaluates candidates on a bounded worker pool. Each worker
// writes a distinct index of the arena, so no locking is needed and the
// result is independent of scheduling order.
func (o *Optimizer) scoreAll(cands []candidate) {
	workers := o.cfg.Workers
	if workers > len(cands) {
		workers = len(cands)
	}
	if workers <= 1 {
		for i := range cands {
			cands[i].score = o.scoreOne(cands[i])
		}
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				cands[i].score = o.scoreOne(cands[i])
			}
		}()
	}
	for i := range cands {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func (o *Optimizer) scoreOne(c candidate) float64 {
	cc := c.toCircuit(o.cfg.Hardware.NumQubits())
	return stabilize(fidelity.ScoreCircuit(cc, o.cfg.Noise, o.cfg.Hardware, o.cfg.Score))
}
