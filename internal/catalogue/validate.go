package catalogue

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/triage/internal/fuzzy"
	"github.com/abhisek/triage/internal/rules"
)

// ValidationError lists every integrity problem found in a catalogue.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalogue validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Validate runs the static integrity pass over c. It is meant to run once at
// load time; evaluation never depends on it. Returns a *ValidationError
// describing all problems found, or nil if the catalogue is sound.
func Validate(c *Catalogue) error {
	return validate(c, fuzzy.DefaultMaxDepth)
}

func validate(c *Catalogue, maxDepth int) error {
	var errs []string

	if _, err := CanonicalVersion(c.Version); err != nil {
		errs = append(errs, err.Error())
	}
	if len(c.Conditions) == 0 {
		errs = append(errs, "catalogue has no conditions")
	}

	// Registries
	symptomSet := make(map[string]bool, len(c.Symptoms))
	for _, s := range c.Symptoms {
		switch {
		case s.ID == "":
			errs = append(errs, fmt.Sprintf("symptom with label %q has an empty ID", s.Label))
		case symptomSet[s.ID]:
			errs = append(errs, fmt.Sprintf("duplicate symptom ID: %q", s.ID))
		}
		symptomSet[s.ID] = true
	}
	contextSet := make(map[string]bool, len(c.Contexts))
	for _, ctx := range c.Contexts {
		switch {
		case ctx.ID == "":
			errs = append(errs, fmt.Sprintf("context with label %q has an empty ID", ctx.Label))
		case contextSet[ctx.ID]:
			errs = append(errs, fmt.Sprintf("duplicate context ID: %q", ctx.ID))
		}
		contextSet[ctx.ID] = true
	}

	// Conditions
	idSet := make(map[string]bool, len(c.Conditions))
	for i, cond := range c.Conditions {
		prefix := fmt.Sprintf("condition %q", cond.ID)
		if cond.ID == "" {
			prefix = fmt.Sprintf("condition #%d", i)
			errs = append(errs, prefix+": empty ID")
		} else if idSet[cond.ID] {
			errs = append(errs, fmt.Sprintf("duplicate condition ID: %q", cond.ID))
		}
		idSet[cond.ID] = true

		if strings.TrimSpace(cond.Label) == "" {
			errs = append(errs, prefix+": empty label")
		}
		if cond.Severity != "" && !knownSeverity(cond.Severity) {
			errs = append(errs, fmt.Sprintf("%s: unknown severity %q", prefix, cond.Severity))
		}

		for _, b := range cond.ContextBonus {
			if !contextSet[b.Context] {
				errs = append(errs, fmt.Sprintf("%s references unregistered context %q", prefix, b.Context))
			}
			if math.IsNaN(b.Bonus) || math.IsInf(b.Bonus, 0) {
				errs = append(errs, fmt.Sprintf("%s: bonus for %q must be finite, got %v", prefix, b.Context, b.Bonus))
			}
		}

		if rules.IsNil(cond.Rule) {
			errs = append(errs, prefix+": missing rule")
			continue
		}
		errs = append(errs, validateRule(prefix, cond.Rule, symptomSet, maxDepth)...)
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func validateRule(prefix string, rule rules.Node, symptomSet map[string]bool, maxDepth int) []string {
	var errs []string

	if d := rules.Depth(rule, maxDepth); d > maxDepth {
		errs = append(errs, fmt.Sprintf("%s: rule is deeper than %d levels", prefix, maxDepth))
	}

	rules.Walk(rule, maxDepth, func(path string, _ int, n rules.Node) bool {
		if !n.Kind().Known() {
			errs = append(errs, fmt.Sprintf("%s %s: unknown rule kind %q", prefix, path, n.Kind()))
			return false
		}
		if w := rules.WeightOf(n); math.IsNaN(w) || math.IsInf(w, 0) {
			errs = append(errs, fmt.Sprintf("%s %s: weight must be finite, got %v", prefix, path, w))
		}
		switch v := n.(type) {
		case *rules.Symptom:
			if !symptomSet[v.ID] {
				errs = append(errs, fmt.Sprintf("%s %s references unregistered symptom %q", prefix, path, v.ID))
			}
		case *rules.Not:
			if rules.IsNil(v.Child) {
				errs = append(errs, fmt.Sprintf("%s %s: not has no child", prefix, path))
			}
		case *rules.Implies:
			if rules.IsNil(v.If) || rules.IsNil(v.Then) {
				errs = append(errs, fmt.Sprintf("%s %s: implies needs both if and then", prefix, path))
			}
		default:
			for i, c := range rules.ChildrenOf(n) {
				if rules.IsNil(c) {
					errs = append(errs, fmt.Sprintf("%s %s.children[%d]: nil child", prefix, path, i))
				}
			}
		}
		return true
	})
	return errs
}

func knownSeverity(s Severity) bool {
	for _, known := range AllSeverities() {
		if s == known {
			return true
		}
	}
	return false
}
