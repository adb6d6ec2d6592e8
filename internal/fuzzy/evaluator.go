package fuzzy

import (
	"fmt"
	"math"

	"github.com/abhisek/triage/internal/rules"
)

// Scoring constants. They are part of the scoring contract: changing any of
// them changes every ranking.
const (
	// OrTemperature is the softmax temperature applied to Or children scores.
	OrTemperature = 0.8
	// OrScale caps Or nodes slightly below a pure softmax average.
	OrScale = 0.9
	// XorThreshold is the score a child must exceed to count as matched.
	XorThreshold = 0.3
	XorScale     = 0.7
	// NotScale keeps a negated match a weak signal.
	NotScale  = 0.5
	NandScale = 0.6
	NorScale  = 0.6
	// ImpliesThreshold splits fuzzy antecedent/consequent scores into true/false.
	ImpliesThreshold = 0.5
	ImpliesScale     = 0.9
	AddScale         = 1.0
)

// DefaultMaxDepth bounds recursion. Catalogue trees are a handful of levels
// deep; anything past this is treated as malformed.
const DefaultMaxDepth = 64

// Evaluator scores rule trees against evidence. It holds no mutable state
// and may be shared between goroutines as long as its Tracer is safe for
// concurrent use.
type Evaluator struct {
	maxDepth int
	tracer   Tracer
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxDepth sets the depth guard. Values <= 0 disable it.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) { e.maxDepth = n }
}

// WithTracer installs a tracer that observes every scored node and every
// recovered failure.
func WithTracer(t Tracer) Option {
	return func(e *Evaluator) { e.tracer = t }
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(e)
	}
	return e
}

// With returns a copy of e with additional options applied.
func (e *Evaluator) With(opts ...Option) *Evaluator {
	c := *e
	for _, o := range opts {
		o(&c)
	}
	return &c
}

// MaxDepth returns the configured depth guard.
func (e *Evaluator) MaxDepth() int {
	return e.maxDepth
}

var defaultEvaluator = New()

// Evaluate scores n against ev with the default evaluator.
func Evaluate(n rules.Node, ev Evidence) float64 {
	return defaultEvaluator.Evaluate(n, ev)
}

// Evaluate returns the final contribution of n: its kind-specific base score
// multiplied by its weight. It never panics on malformed trees; unknown kinds
// and over-deep subtrees score zero and are reported to the tracer.
func (e *Evaluator) Evaluate(n rules.Node, ev Evidence) float64 {
	return e.eval(n, ev, "$", 0)
}

func (e *Evaluator) eval(n rules.Node, ev Evidence, path string, depth int) float64 {
	if rules.IsNil(n) {
		var kind rules.Kind
		if n != nil {
			kind = n.Kind()
		}
		e.skip(path, kind, depth, ErrUnknownRuleKind)
		return 0
	}
	if e.maxDepth > 0 && depth >= e.maxDepth {
		e.skip(path, n.Kind(), depth, ErrRuleTreeTooDeep)
		return 0
	}

	weight := rules.WeightOf(n)
	var (
		base   float64
		inputs []float64
		label  string
	)

	switch v := n.(type) {
	case *rules.Symptom:
		label = v.ID
		if ev.HasSymptom(v.ID) {
			base = 1
		}

	case *rules.And:
		inputs = e.evalChildren(v.Children, ev, path, depth)
		base = weightedMean(v.Children, inputs)

	case *rules.Or:
		inputs = e.evalChildren(v.Children, ev, path, depth)
		base = softOr(inputs)

	case *rules.Xor:
		inputs = e.evalChildren(v.Children, ev, path, depth)
		base = exactlyOne(inputs) * XorScale

	case *rules.Not:
		s := e.eval(v.Child, ev, path+".child", depth+1)
		inputs = []float64{s}
		base = (1 - s) * NotScale

	case *rules.Nand:
		// A weight above 1 can push the complement, and so the score, below zero.
		inputs = e.evalChildren(v.Children, ev, path, depth)
		and := weightedMean(v.Children, inputs) * weight
		base = (1 - and) * NandScale

	case *rules.Nor:
		inputs = e.evalChildren(v.Children, ev, path, depth)
		or := softOr(inputs) * weight
		base = (1 - or) * NorScale

	case *rules.Implies:
		antecedent := e.eval(v.If, ev, path+".if", depth+1)
		consequent := e.eval(v.Then, ev, path+".then", depth+1)
		inputs = []float64{antecedent, consequent}
		if antecedent > ImpliesThreshold && consequent < ImpliesThreshold {
			base = 0
		} else {
			base = 1 * ImpliesScale
		}

	case *rules.Add:
		inputs = e.evalChildren(v.Children, ev, path, depth)
		for _, s := range inputs {
			base += s
		}
		base *= AddScale

	default:
		e.skip(path, n.Kind(), depth, ErrUnknownRuleKind)
		return 0
	}

	score := base * weight
	if e.tracer != nil {
		e.tracer.OnNode(NodeEvent{
			Path:   path,
			Kind:   n.Kind(),
			Label:  label,
			Depth:  depth,
			Inputs: inputs,
			Base:   base,
			Weight: weight,
			Score:  score,
		})
	}
	return score
}

func (e *Evaluator) evalChildren(children []rules.Node, ev Evidence, path string, depth int) []float64 {
	if len(children) == 0 {
		return nil
	}
	scores := make([]float64, len(children))
	for i, c := range children {
		scores[i] = e.eval(c, ev, fmt.Sprintf("%s.children[%d]", path, i), depth+1)
	}
	return scores
}

// skip reports a recovered failure. The node still appears in the trace, with
// a zero score, so recorded trees stay complete.
func (e *Evaluator) skip(path string, kind rules.Kind, depth int, err error) {
	if e.tracer == nil {
		return
	}
	e.tracer.OnDiagnostic(Diagnostic{Path: path, Kind: kind, Depth: depth, Err: err})
	e.tracer.OnNode(NodeEvent{Path: path, Kind: kind, Depth: depth, Skipped: true})
}

// weightedMean is Σ(s_i·w_i)/Σw_i over the children's declared weights.
// Empty or zero-weight lists score zero.
func weightedMean(children []rules.Node, scores []float64) float64 {
	if len(children) == 0 {
		return 0
	}
	var num, den float64
	for i, c := range children {
		w := rules.WeightOf(c)
		num += scores[i] * w
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// softOr is the softmax-weighted average of the scores at OrTemperature,
// scaled by OrScale. The softmax logits are shifted by their maximum, which
// leaves the weights unchanged and keeps exp from overflowing on large Add
// subtotals.
func softOr(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	peak := scores[0]
	for _, s := range scores[1:] {
		if s > peak {
			peak = s
		}
	}
	var norm, acc float64
	for _, s := range scores {
		p := math.Exp((s - peak) / OrTemperature)
		norm += p
		acc += s * p
	}
	return acc / norm * OrScale
}

func exactlyOne(scores []float64) float64 {
	matched := 0
	for _, s := range scores {
		if s > XorThreshold {
			matched++
		}
	}
	if matched == 1 {
		return 1
	}
	return 0
}
