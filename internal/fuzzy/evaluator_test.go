package fuzzy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triage/internal/rules"
)

const eps = 1e-9

func ev(symptoms ...string) Evidence {
	return NewEvidence(symptoms, nil)
}

func TestSymptomLeaf(t *testing.T) {
	tests := []struct {
		name     string
		node     rules.Node
		evidence Evidence
		want     float64
	}{
		{"present default weight", rules.Sym("fever"), ev("fever"), 1},
		{"absent", rules.Sym("fever"), ev("cough"), 0},
		{"present weighted", rules.SymW("fever", 2.5), ev("fever"), 2.5},
		{"absent weighted", rules.SymW("fever", 2.5), ev(), 0},
		{"negative weight", rules.SymW("fever", -0.5), ev("fever"), -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Evaluate(tt.node, tt.evidence), eps)
		})
	}
}

func TestAnd(t *testing.T) {
	t.Run("empty children score zero for any weight", func(t *testing.T) {
		for _, w := range []float64{0, 1, 3.5, -2} {
			assert.Zero(t, Evaluate(rules.Weighted(rules.AllOf(), w), ev("a")))
		}
	})

	t.Run("partial credit", func(t *testing.T) {
		n := rules.AllOf(rules.Sym("s1"), rules.Sym("s2"))
		assert.InDelta(t, 0.5, Evaluate(n, ev("s1")), eps)
		assert.InDelta(t, 1.0, Evaluate(n, ev("s1", "s2")), eps)
		assert.InDelta(t, 0.0, Evaluate(n, ev()), eps)
	})

	t.Run("weighted mean uses child weights", func(t *testing.T) {
		// child scores are already weighted: s=[3,0], w=[3,1] -> (9+0)/4
		n := rules.AllOf(rules.SymW("a", 3), rules.Sym("b"))
		assert.InDelta(t, 9.0/4.0, Evaluate(n, ev("a")), eps)
	})

	t.Run("zero total weight", func(t *testing.T) {
		n := rules.AllOf(rules.SymW("a", 1), rules.SymW("b", -1))
		assert.Zero(t, Evaluate(n, ev("a", "b")))
	})

	t.Run("bounded for bounded children", func(t *testing.T) {
		n := rules.AllOf(rules.Sym("a"), rules.AnyOf(rules.Sym("b"), rules.Sym("c")), rules.Negate(rules.Sym("d")))
		for _, e := range []Evidence{ev(), ev("a"), ev("a", "b", "c", "d"), ev("d")} {
			got := Evaluate(n, e)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	})
}

func TestOr(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Zero(t, Evaluate(rules.AnyOf(), ev("a")))
	})

	t.Run("single true child", func(t *testing.T) {
		assert.InDelta(t, 0.9, Evaluate(rules.AnyOf(rules.Sym("a")), ev("a")), eps)
	})

	t.Run("softmax blend", func(t *testing.T) {
		n := rules.AnyOf(rules.Sym("a"), rules.Sym("b"))
		assert.InDelta(t, 0.699569875057222, Evaluate(n, ev("a")), 1e-12)
		assert.InDelta(t, 0.9, Evaluate(n, ev("a", "b")), eps)
		assert.Zero(t, Evaluate(n, ev()))
	})

	t.Run("ignores declared child weights in softmax", func(t *testing.T) {
		// raw scores [2, 1]; the weights only show up through the child scores
		n := rules.AnyOf(rules.SymW("a", 2), rules.Sym("b"))
		assert.InDelta(t, 1.599569875057222, Evaluate(n, ev("a", "b")), 1e-12)
	})

	t.Run("monotone in each child", func(t *testing.T) {
		levels := []float64{0, 0.1, 0.3, 0.5, 0.8, 1}
		for _, other := range levels {
			prev := -1.0
			for _, w := range levels {
				n := rules.AnyOf(rules.SymW("x", w), rules.SymW("y", other))
				got := Evaluate(n, ev("x", "y"))
				assert.GreaterOrEqual(t, got, prev-eps, "x=%v y=%v", w, other)
				prev = got
			}
		}
	})

	t.Run("large subtotals do not overflow", func(t *testing.T) {
		n := rules.AnyOf(rules.SymW("a", 1000), rules.SymW("b", 999))
		got := Evaluate(n, ev("a", "b"))
		assert.False(t, math.IsNaN(got))
		assert.InDelta(t, 1000*0.9, got, 1)
	})
}

func TestXor(t *testing.T) {
	n := rules.OneOf(rules.Sym("a"), rules.Sym("b"), rules.Sym("c"))

	assert.InDelta(t, 0.7, Evaluate(n, ev("b")), eps)
	assert.Zero(t, Evaluate(n, ev()))
	assert.Zero(t, Evaluate(n, ev("a", "c")))
	assert.Zero(t, Evaluate(n, ev("a", "b", "c")))
	assert.Zero(t, Evaluate(rules.OneOf(), ev("a")))

	t.Run("threshold is exclusive", func(t *testing.T) {
		at := rules.OneOf(rules.SymW("a", XorThreshold))
		assert.Zero(t, Evaluate(at, ev("a")))
		above := rules.OneOf(rules.SymW("a", XorThreshold+0.01))
		assert.InDelta(t, 0.7, Evaluate(above, ev("a")), eps)
	})
}

func TestNot(t *testing.T) {
	n := rules.Negate(rules.Sym("s"))
	assert.Zero(t, Evaluate(n, ev("s")))
	assert.InDelta(t, 0.5, Evaluate(n, ev()), eps)

	weighted := rules.Weighted(n, 2)
	assert.InDelta(t, 1.0, Evaluate(weighted, ev()), eps)
}

func TestNand(t *testing.T) {
	n := rules.NotAll(rules.Sym("a"), rules.Sym("b"))

	assert.InDelta(t, 0.6, Evaluate(n, ev()), eps)
	assert.InDelta(t, 0.3, Evaluate(n, ev("a")), eps)
	assert.Zero(t, Evaluate(n, ev("a", "b")))

	t.Run("empty children complement to 0.6", func(t *testing.T) {
		assert.InDelta(t, 0.6, Evaluate(rules.NotAll(), ev()), eps)
	})

	// The weight enters the complement and the final product, so weights
	// above 1 can score below zero.
	t.Run("weight above one goes negative", func(t *testing.T) {
		n := rules.Weighted(rules.NotAll(rules.Sym("a")), 2)
		assert.InDelta(t, -1.2, Evaluate(n, ev("a")), eps)
		assert.InDelta(t, 1.2, Evaluate(n, ev()), eps)
	})
}

func TestNor(t *testing.T) {
	n := rules.NoneOf(rules.Sym("a"), rules.Sym("b"))

	assert.InDelta(t, 0.6, Evaluate(n, ev()), eps)
	// complement of the whole Or, not an Or of complements
	assert.InDelta(t, 0.1802580749656668, Evaluate(n, ev("a")), 1e-12)
	assert.InDelta(t, (1-0.9)*0.6, Evaluate(n, ev("a", "b")), eps)

	t.Run("empty children complement to 0.6", func(t *testing.T) {
		assert.InDelta(t, 0.6, Evaluate(rules.NoneOf(), ev()), eps)
	})
}

func TestImplies(t *testing.T) {
	n := rules.If(rules.Sym("A"), rules.Sym("B"))

	assert.Zero(t, Evaluate(n, ev("A")))
	assert.InDelta(t, 0.9, Evaluate(n, ev("A", "B")), eps)
	assert.InDelta(t, 0.9, Evaluate(n, ev("B")), eps)
	assert.InDelta(t, 0.9, Evaluate(n, ev()), eps)

	t.Run("crisp decision on fuzzy inputs", func(t *testing.T) {
		// antecedent 0.5 is not > 0.5, so the implication holds
		half := rules.If(rules.AllOf(rules.Sym("x"), rules.Sym("y")), rules.Sym("B"))
		assert.InDelta(t, 0.9, Evaluate(half, ev("x")), eps)
		// consequent 0.5 is not < 0.5
		cons := rules.If(rules.Sym("A"), rules.AllOf(rules.Sym("x"), rules.Sym("y")))
		assert.InDelta(t, 0.9, Evaluate(cons, ev("A", "x")), eps)
	})
}

func TestAdd(t *testing.T) {
	n := rules.Sum(rules.Sym("a"), rules.Sym("b"))
	assert.InDelta(t, 2.0, Evaluate(n, ev("a", "b")), eps)
	assert.InDelta(t, 1.0, Evaluate(n, ev("b")), eps)
	assert.Zero(t, Evaluate(rules.Sum(), ev("a")))
	assert.InDelta(t, 3.0, Evaluate(rules.Weighted(n, 1.5), ev("a", "b")), eps)
}

func TestEvaluate_DoesNotMutateTree(t *testing.T) {
	n := rules.AllOf(rules.Sym("a"), rules.AnyOf(rules.Sym("b")))
	before := rules.Encode(n)

	Evaluate(n, ev("a", "b"))

	assert.Equal(t, before, rules.Encode(n))
	assert.False(t, rules.HasWeight(n))
}

func TestEvaluate_UnknownKindRecovers(t *testing.T) {
	unknown, err := rules.Decode(rules.Spec{Type: "majority"})
	require.NoError(t, err)

	rec := NewRecorder()
	e := New(WithTracer(rec))

	n := rules.Sum(rules.Sym("a"), unknown, rules.Sym("b"))
	assert.InDelta(t, 2.0, e.Evaluate(n, ev("a", "b")), eps)

	diags := rec.Diagnostics()
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0], ErrUnknownRuleKind))
	assert.Equal(t, "$.children[1]", diags[0].Path)
	assert.Equal(t, rules.Kind("majority"), diags[0].Kind)
}

func TestEvaluate_DepthGuard(t *testing.T) {
	var n rules.Node = rules.Sym("a")
	for i := 0; i < 10; i++ {
		n = rules.AllOf(n)
	}

	rec := NewRecorder()
	shallow := New(WithMaxDepth(5), WithTracer(rec))
	assert.Zero(t, shallow.Evaluate(n, ev("a")))

	diags := rec.Diagnostics()
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0], ErrRuleTreeTooDeep))
	assert.Equal(t, 5, diags[0].Depth)

	assert.InDelta(t, 1.0, New().Evaluate(n, ev("a")), eps)
	assert.InDelta(t, 1.0, New(WithMaxDepth(0)).Evaluate(n, ev("a")), eps)
}

func TestEvaluate_CycleIsCutOff(t *testing.T) {
	loop := &rules.Or{}
	loop.Children = []rules.Node{rules.Sym("a"), loop}

	rec := NewRecorder()
	got := New(WithMaxDepth(8), WithTracer(rec)).Evaluate(loop, ev("a"))

	assert.False(t, math.IsNaN(got))
	assert.NotEmpty(t, rec.Diagnostics())
}

func TestEvaluate_NilChild(t *testing.T) {
	rec := NewRecorder()
	n := &rules.Not{}
	assert.InDelta(t, 0.5, New(WithTracer(rec)).Evaluate(n, ev()), eps)
	require.Len(t, rec.Diagnostics(), 1)
	assert.Equal(t, "$.child", rec.Diagnostics()[0].Path)
}

func TestEvaluate_TypedNilNodes(t *testing.T) {
	t.Run("nil pointer child of and", func(t *testing.T) {
		rec := NewRecorder()
		n := rules.AllOf(rules.Sym("a"), (*rules.Symptom)(nil))
		assert.InDelta(t, 0.5, New(WithTracer(rec)).Evaluate(n, ev("a")), eps)
		require.Len(t, rec.Diagnostics(), 1)
		d := rec.Diagnostics()[0]
		assert.Equal(t, "$.children[1]", d.Path)
		assert.Equal(t, rules.KindSymptom, d.Kind)
		assert.True(t, errors.Is(d, ErrUnknownRuleKind))
	})

	t.Run("nil pointer root", func(t *testing.T) {
		for _, n := range []rules.Node{(*rules.And)(nil), (*rules.Nor)(nil), (*rules.Unknown)(nil)} {
			assert.Zero(t, Evaluate(n, ev("a")), "%T", n)
		}
	})

	t.Run("nil pointer child of not", func(t *testing.T) {
		n := rules.Negate((*rules.Implies)(nil))
		assert.InDelta(t, NotScale, Evaluate(n, ev()), eps)
	})
}
