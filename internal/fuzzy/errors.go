package fuzzy

import (
	"errors"
	"fmt"

	"github.com/abhisek/triage/internal/rules"
)

var (
	// ErrUnknownRuleKind marks a node whose kind the evaluator does not handle.
	ErrUnknownRuleKind = errors.New("unknown rule kind")

	// ErrRuleTreeTooDeep marks a subtree cut off by the depth guard.
	ErrRuleTreeTooDeep = errors.New("rule tree too deep")
)

// Diagnostic describes a recovered failure during evaluation. The offending
// subtree contributed zero; evaluation of the rest of the tree continued.
type Diagnostic struct {
	Path  string
	Kind  rules.Kind
	Depth int
	Err   error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s (%s): %v", d.Path, d.Kind, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}
