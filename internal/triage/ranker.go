package triage

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/triage/internal/catalogue"
	"github.com/abhisek/triage/internal/fuzzy"
)

// Result is one ranked condition. Score is Base + Bonus.
type Result struct {
	ConditionID string  `json:"conditionId"`
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	Base        float64 `json:"base"`
	Bonus       float64 `json:"bonus"`
}

// RankConditions scores every condition against ev, drops those scoring
// zero or less, and sorts the rest by score, highest first. Conditions with
// equal scores keep their catalogue order.
func RankConditions(ev fuzzy.Evidence, conds []catalogue.Condition) []Result {
	e := fuzzy.New()
	scored := make([]Result, len(conds))
	for i := range conds {
		scored[i] = scoreCondition(e, ev, &conds[i])
	}
	return collect(scored)
}

// ContextBonus sums the bonuses of c whose context is active in ev.
func ContextBonus(c *catalogue.Condition, ev fuzzy.Evidence) float64 {
	var bonus float64
	for _, b := range c.ContextBonus {
		if ev.HasContext(b.Context) {
			bonus += b.Bonus
		}
	}
	return bonus
}

func scoreCondition(e *fuzzy.Evaluator, ev fuzzy.Evidence, c *catalogue.Condition) Result {
	base := e.Evaluate(c.Rule, ev)
	bonus := ContextBonus(c, ev)
	return Result{
		ConditionID: c.ID,
		Label:       c.Label,
		Score:       base + bonus,
		Base:        base,
		Bonus:       bonus,
	}
}

// collect filters and orders scored results. The comparison is written so
// that NaN scores are dropped with the non-positive ones.
func collect(scored []Result) []Result {
	out := make([]Result, 0, len(scored))
	for _, r := range scored {
		if r.Score > 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Ranker scores catalogues with a configured evaluator, fanning out to
// workers for large catalogues.
type Ranker struct {
	cfg       Config
	evaluator *fuzzy.Evaluator
	metrics   *Metrics
	logger    *zap.Logger
}

// RankerOption configures a Ranker.
type RankerOption func(*rankerOptions)

type rankerOptions struct {
	metrics *Metrics
	logger  *zap.Logger
	tracer  fuzzy.Tracer
}

// WithMetrics records ranking metrics.
func WithMetrics(m *Metrics) RankerOption {
	return func(o *rankerOptions) { o.metrics = m }
}

// WithLogger sets the ranker's logger.
func WithLogger(l *zap.Logger) RankerOption {
	return func(o *rankerOptions) { o.logger = l }
}

// WithTracer observes every evaluation. Conditions may be scored
// concurrently, so the tracer must be safe for concurrent use.
func WithTracer(t fuzzy.Tracer) RankerOption {
	return func(o *rankerOptions) { o.tracer = t }
}

// NewRanker creates a Ranker.
func NewRanker(cfg Config, opts ...RankerOption) *Ranker {
	o := rankerOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	var tracers []fuzzy.Tracer
	if o.tracer != nil {
		tracers = append(tracers, o.tracer)
	}
	if o.metrics != nil {
		tracers = append(tracers, o.metrics)
	}
	evalOpts := []fuzzy.Option{fuzzy.WithMaxDepth(cfg.MaxDepth)}
	switch len(tracers) {
	case 0:
	case 1:
		evalOpts = append(evalOpts, fuzzy.WithTracer(tracers[0]))
	default:
		evalOpts = append(evalOpts, fuzzy.WithTracer(fuzzy.Tee(tracers...)))
	}

	return &Ranker{
		cfg:       cfg,
		evaluator: fuzzy.New(evalOpts...),
		metrics:   o.metrics,
		logger:    o.logger,
	}
}

// Evaluator returns the evaluator the ranker scores with.
func (r *Ranker) Evaluator() *fuzzy.Evaluator {
	return r.evaluator
}

// Rank is RankConditions with the ranker's evaluator. It fails only if ctx
// is cancelled before every condition has been scored.
func (r *Ranker) Rank(ctx context.Context, ev fuzzy.Evidence, conds []catalogue.Condition) ([]Result, error) {
	start := time.Now()
	scored := make([]Result, len(conds))

	mode := "sequential"
	if len(conds) > r.cfg.ParallelThreshold && r.cfg.Workers > 1 {
		mode = "parallel"
		if err := r.scoreParallel(ctx, ev, conds, scored); err != nil {
			return nil, err
		}
	} else {
		for i := range conds {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scored[i] = scoreCondition(r.evaluator, ev, &conds[i])
		}
	}

	results := collect(scored)
	elapsed := time.Since(start)

	if r.metrics != nil {
		bonuses := 0
		for i := range conds {
			for _, b := range conds[i].ContextBonus {
				if ev.HasContext(b.Context) {
					bonuses++
				}
			}
		}
		r.metrics.observe(mode, len(conds), len(results), bonuses, elapsed.Seconds())
	}
	r.logger.Debug("catalogue ranked",
		zap.String("mode", mode),
		zap.Int("conditions", len(conds)),
		zap.Int("matched", len(results)),
		zap.Duration("elapsed", elapsed),
	)
	return results, nil
}

// scoreParallel writes each result into its own slot; ordering is decided
// afterwards by collect, never by completion order.
func (r *Ranker) scoreParallel(ctx context.Context, ev fuzzy.Evidence, conds []catalogue.Condition, scored []Result) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i := range conds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = scoreCondition(r.evaluator, ev, &conds[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// The loop may have stopped early without any goroutine failing.
	return ctx.Err()
}
