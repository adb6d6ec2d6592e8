package catalogue

import (
	"errors"
	"fmt"
	"sort"

	"github.com/abhisek/triage/internal/rules"
)

// Severity is display metadata; the engine never reads it.
type Severity string

const (
	SeverityLow       Severity = "low"
	SeverityModerate  Severity = "moderate"
	SeverityHigh      Severity = "high"
	SeverityEmergency Severity = "emergency"
)

// AllSeverities returns severities from least to most urgent.
func AllSeverities() []Severity {
	return []Severity{SeverityLow, SeverityModerate, SeverityHigh, SeverityEmergency}
}

// Symptom is a discrete observable finding.
type Symptom struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Context is a situational flag independent of symptoms.
type Context struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ContextBonus adds Bonus to a condition's score when Context is active.
type ContextBonus struct {
	Context string  `json:"context" yaml:"context"`
	Bonus   float64 `json:"bonus" yaml:"bonus"`
}

// Condition is a named hypothesis scored by a rule tree. Description,
// Severity, Actions, RiskFactors and MonitorFor pass through to callers
// untouched.
type Condition struct {
	ID           string
	Label        string
	Description  string
	Severity     Severity
	Rule         rules.Node
	ContextBonus []ContextBonus
	Actions      []string
	RiskFactors  []string
	MonitorFor   []string
}

// ErrUnknownCondition is returned when a condition id is not in the catalogue.
var ErrUnknownCondition = errors.New("unknown condition")

// Catalogue is an immutable set of conditions together with the symptom and
// context registries their rules refer to.
type Catalogue struct {
	Version    string
	Name       string
	Symptoms   []Symptom
	Contexts   []Context
	Conditions []Condition

	conditionIdx map[string]int
	symptomIdx   map[string]int
	contextIdx   map[string]int
}

// New builds a catalogue and its lookup indices. The slices are owned by the
// catalogue afterwards and must not be modified. When ids repeat, lookups
// return the first occurrence; Validate reports the duplicates.
func New(version, name string, symptoms []Symptom, contexts []Context, conditions []Condition) *Catalogue {
	c := &Catalogue{
		Version:      version,
		Name:         name,
		Symptoms:     symptoms,
		Contexts:     contexts,
		Conditions:   conditions,
		conditionIdx: make(map[string]int, len(conditions)),
		symptomIdx:   make(map[string]int, len(symptoms)),
		contextIdx:   make(map[string]int, len(contexts)),
	}
	for i := range conditions {
		if _, dup := c.conditionIdx[conditions[i].ID]; !dup {
			c.conditionIdx[conditions[i].ID] = i
		}
	}
	for i := range symptoms {
		if _, dup := c.symptomIdx[symptoms[i].ID]; !dup {
			c.symptomIdx[symptoms[i].ID] = i
		}
	}
	for i := range contexts {
		if _, dup := c.contextIdx[contexts[i].ID]; !dup {
			c.contextIdx[contexts[i].ID] = i
		}
	}
	return c
}

// Condition returns the condition with the given id.
func (c *Catalogue) Condition(id string) (*Condition, error) {
	i, ok := c.conditionIdx[id]
	if !ok {
		return nil, fmt.Errorf("condition %q: %w", id, ErrUnknownCondition)
	}
	return &c.Conditions[i], nil
}

// Symptom returns the registered symptom with the given id, or nil.
func (c *Catalogue) Symptom(id string) *Symptom {
	i, ok := c.symptomIdx[id]
	if !ok {
		return nil
	}
	return &c.Symptoms[i]
}

// Context returns the registered context with the given id, or nil.
func (c *Catalogue) Context(id string) *Context {
	i, ok := c.contextIdx[id]
	if !ok {
		return nil
	}
	return &c.Contexts[i]
}

// SymptomsByCategory returns the symptoms of one category in registry order.
func (c *Catalogue) SymptomsByCategory(category string) []Symptom {
	var out []Symptom
	for _, s := range c.Symptoms {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns the distinct symptom categories, sorted.
func (c *Catalogue) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.Symptoms {
		if s.Category != "" && !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	sort.Strings(out)
	return out
}
