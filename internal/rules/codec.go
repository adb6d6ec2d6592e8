package rules

import (
	"errors"
	"fmt"
)

// Spec is the serialisable form of a rule node, shared by the JSON and YAML
// catalogue documents.
type Spec struct {
	Type     string   `json:"type" yaml:"type"`
	Symptom  string   `json:"symptom,omitempty" yaml:"symptom,omitempty"`
	Weight   *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Children []Spec   `json:"children,omitempty" yaml:"children,omitempty"`
	Child    *Spec    `json:"child,omitempty" yaml:"child,omitempty"`
	If       *Spec    `json:"if,omitempty" yaml:"if,omitempty"`
	Then     *Spec    `json:"then,omitempty" yaml:"then,omitempty"`
}

// ErrMalformedSpec is returned when a spec is missing a field its type requires.
var ErrMalformedSpec = errors.New("malformed rule")

// Decode converts a spec into a node tree. Unrecognised type tags decode to
// *Unknown rather than failing; missing required fields fail.
func Decode(s Spec) (Node, error) {
	return decode(s, "$")
}

func decode(s Spec, path string) (Node, error) {
	weight := copyWeight(s.Weight)

	switch Kind(s.Type) {
	case KindSymptom:
		if s.Symptom == "" {
			return nil, fmt.Errorf("%s: symptom node without symptom id: %w", path, ErrMalformedSpec)
		}
		return &Symptom{ID: s.Symptom, Weight: weight}, nil

	case KindAnd, KindOr, KindXor, KindNand, KindNor, KindAdd:
		children, err := decodeChildren(s.Children, path)
		if err != nil {
			return nil, err
		}
		switch Kind(s.Type) {
		case KindAnd:
			return &And{Children: children, Weight: weight}, nil
		case KindOr:
			return &Or{Children: children, Weight: weight}, nil
		case KindXor:
			return &Xor{Children: children, Weight: weight}, nil
		case KindNand:
			return &Nand{Children: children, Weight: weight}, nil
		case KindNor:
			return &Nor{Children: children, Weight: weight}, nil
		default:
			return &Add{Children: children, Weight: weight}, nil
		}

	case KindNot:
		if s.Child == nil {
			return nil, fmt.Errorf("%s: not node without child: %w", path, ErrMalformedSpec)
		}
		child, err := decode(*s.Child, path+".child")
		if err != nil {
			return nil, err
		}
		return &Not{Child: child, Weight: weight}, nil

	case KindImplies:
		if s.If == nil || s.Then == nil {
			return nil, fmt.Errorf("%s: implies node needs both if and then: %w", path, ErrMalformedSpec)
		}
		cond, err := decode(*s.If, path+".if")
		if err != nil {
			return nil, err
		}
		then, err := decode(*s.Then, path+".then")
		if err != nil {
			return nil, err
		}
		return &Implies{If: cond, Then: then, Weight: weight}, nil

	default:
		if s.Type == "" {
			return nil, fmt.Errorf("%s: missing type: %w", path, ErrMalformedSpec)
		}
		return &Unknown{Type: s.Type, Weight: weight}, nil
	}
}

func decodeChildren(specs []Spec, path string) ([]Node, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]Node, 0, len(specs))
	for i, cs := range specs {
		n, err := decode(cs, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Encode converts a node tree back into its serialisable form.
func Encode(n Node) Spec {
	if IsNil(n) {
		return Spec{}
	}
	s := Spec{Type: string(n.Kind()), Weight: copyWeight(n.declaredWeight())}

	switch v := n.(type) {
	case *Symptom:
		s.Symptom = v.ID
	case *Not:
		if !IsNil(v.Child) {
			c := Encode(v.Child)
			s.Child = &c
		}
	case *Implies:
		if !IsNil(v.If) {
			c := Encode(v.If)
			s.If = &c
		}
		if !IsNil(v.Then) {
			c := Encode(v.Then)
			s.Then = &c
		}
	case *And, *Or, *Xor, *Nand, *Nor, *Add:
		for _, child := range ChildrenOf(n) {
			s.Children = append(s.Children, Encode(child))
		}
	}
	return s
}

func copyWeight(w *float64) *float64 {
	if w == nil {
		return nil
	}
	v := *w
	return &v
}
