package rules

// Kind identifies a rule node variant.
type Kind string

const (
	KindSymptom Kind = "symptom"
	KindAnd     Kind = "and"
	KindOr      Kind = "or"
	KindXor     Kind = "xor"
	KindNot     Kind = "not"
	KindNand    Kind = "nand"
	KindNor     Kind = "nor"
	KindImplies Kind = "implies"
	KindAdd     Kind = "add"
)

// AllKinds returns every recognised node kind in declaration order.
func AllKinds() []Kind {
	return []Kind{
		KindSymptom,
		KindAnd,
		KindOr,
		KindXor,
		KindNot,
		KindNand,
		KindNor,
		KindImplies,
		KindAdd,
	}
}

// Known reports whether k is one of the recognised kinds.
func (k Kind) Known() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// DefaultWeight is the weight of a node that declares none.
const DefaultWeight = 1.0

// Node is one node of a rule tree. The set of implementations is closed:
// only the types in this package satisfy it.
type Node interface {
	Kind() Kind
	declaredWeight() *float64
}

// WeightOf returns the node's declared weight, or DefaultWeight when unset.
// It never writes the default back into the node.
func WeightOf(n Node) float64 {
	if n == nil {
		return DefaultWeight
	}
	if w := n.declaredWeight(); w != nil {
		return *w
	}
	return DefaultWeight
}

// HasWeight reports whether the node declares an explicit weight.
func HasWeight(n Node) bool {
	return n != nil && n.declaredWeight() != nil
}

// W returns a pointer to w, for use in node literals.
func W(w float64) *float64 {
	return &w
}

// Symptom is a leaf that is true iff its symptom is present.
type Symptom struct {
	ID     string
	Weight *float64
}

// And is a weighted fuzzy conjunction.
type And struct {
	Children []Node
	Weight   *float64
}

// Or is a softmax-weighted fuzzy disjunction.
type Or struct {
	Children []Node
	Weight   *float64
}

// Xor detects exactly one strongly matched child.
type Xor struct {
	Children []Node
	Weight   *float64
}

// Not is the complement of its child.
type Not struct {
	Child  Node
	Weight *float64
}

// Nand is the complement of And over the same children.
type Nand struct {
	Children []Node
	Weight   *float64
}

// Nor is the complement of Or over the same children.
type Nor struct {
	Children []Node
	Weight   *float64
}

// Implies is a soft material implication.
type Implies struct {
	If     Node
	Then   Node
	Weight *float64
}

// Add is an unbounded additive accumulator.
type Add struct {
	Children []Node
	Weight   *float64
}

// Unknown stands in for a node whose type tag is not recognised. It is
// produced by Decode so that malformed data still yields a tree; it always
// evaluates to zero.
type Unknown struct {
	Type   string
	Weight *float64
}

func (*Symptom) Kind() Kind { return KindSymptom }
func (*And) Kind() Kind     { return KindAnd }
func (*Or) Kind() Kind      { return KindOr }
func (*Xor) Kind() Kind     { return KindXor }
func (*Not) Kind() Kind     { return KindNot }
func (*Nand) Kind() Kind    { return KindNand }
func (*Nor) Kind() Kind     { return KindNor }
func (*Implies) Kind() Kind { return KindImplies }
func (*Add) Kind() Kind     { return KindAdd }
func (u *Unknown) Kind() Kind {
	if u == nil {
		return ""
	}
	return Kind(u.Type)
}

func (n *Symptom) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

func (n *And) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

func (n *Or) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

func (n *Xor) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

func (n *Not) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

func (n *Nand) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

func (n *Nor) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

func (n *Implies) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

func (n *Add) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

func (n *Unknown) declaredWeight() *float64 {
	if n == nil {
		return nil
	}
	return n.Weight
}

// IsNil reports whether n is a nil interface or a nil pointer to one of the
// node types. Either form scores as a malformed node.
func IsNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Symptom:
		return v == nil
	case *And:
		return v == nil
	case *Or:
		return v == nil
	case *Xor:
		return v == nil
	case *Not:
		return v == nil
	case *Nand:
		return v == nil
	case *Nor:
		return v == nil
	case *Implies:
		return v == nil
	case *Add:
		return v == nil
	case *Unknown:
		return v == nil
	}
	return false
}

// Constructors for building trees in Go code. Weights default to unset;
// use Weighted to attach one.

func Sym(id string) *Symptom             { return &Symptom{ID: id} }
func AllOf(children ...Node) *And        { return &And{Children: children} }
func AnyOf(children ...Node) *Or         { return &Or{Children: children} }
func OneOf(children ...Node) *Xor        { return &Xor{Children: children} }
func Negate(child Node) *Not             { return &Not{Child: child} }
func NotAll(children ...Node) *Nand      { return &Nand{Children: children} }
func NoneOf(children ...Node) *Nor       { return &Nor{Children: children} }
func If(cond, then Node) *Implies        { return &Implies{If: cond, Then: then} }
func Sum(children ...Node) *Add          { return &Add{Children: children} }
func SymW(id string, w float64) *Symptom { return &Symptom{ID: id, Weight: W(w)} }

// Weighted returns a shallow copy of n carrying weight w. The original node
// is left untouched.
func Weighted(n Node, w float64) Node {
	switch v := n.(type) {
	case *Symptom:
		c := *v
		c.Weight = W(w)
		return &c
	case *And:
		c := *v
		c.Weight = W(w)
		return &c
	case *Or:
		c := *v
		c.Weight = W(w)
		return &c
	case *Xor:
		c := *v
		c.Weight = W(w)
		return &c
	case *Not:
		c := *v
		c.Weight = W(w)
		return &c
	case *Nand:
		c := *v
		c.Weight = W(w)
		return &c
	case *Nor:
		c := *v
		c.Weight = W(w)
		return &c
	case *Implies:
		c := *v
		c.Weight = W(w)
		return &c
	case *Add:
		c := *v
		c.Weight = W(w)
		return &c
	case *Unknown:
		c := *v
		c.Weight = W(w)
		return &c
	default:
		return n
	}
}

// ChildrenOf returns the direct children of n in evaluation order. For
// Implies that is [If, Then]; nil slots are skipped.
func ChildrenOf(n Node) []Node {
	if IsNil(n) {
		return nil
	}
	switch v := n.(type) {
	case *And:
		return v.Children
	case *Or:
		return v.Children
	case *Xor:
		return v.Children
	case *Nand:
		return v.Children
	case *Nor:
		return v.Children
	case *Add:
		return v.Children
	case *Not:
		if IsNil(v.Child) {
			return nil
		}
		return []Node{v.Child}
	case *Implies:
		var out []Node
		if !IsNil(v.If) {
			out = append(out, v.If)
		}
		if !IsNil(v.Then) {
			out = append(out, v.Then)
		}
		return out
	default:
		return nil
	}
}
