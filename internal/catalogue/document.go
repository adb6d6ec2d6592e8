package catalogue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/triage/internal/rules"
)

// Format is a catalogue document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for document encodings other than YAML and JSON.
var ErrUnsupportedFormat = errors.New("unsupported catalogue format")

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnsupportedFormat)
}

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%s: no file extension: %w", path, ErrUnsupportedFormat)
	}
	return ParseFormat(ext)
}

// Document is the serialised form of a catalogue.
type Document struct {
	Version    string         `json:"version" yaml:"version"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Symptoms   []Symptom      `json:"symptoms,omitempty" yaml:"symptoms,omitempty"`
	Contexts   []Context      `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	Conditions []ConditionDoc `json:"conditions" yaml:"conditions"`
}

// ConditionDoc is the serialised form of a condition.
type ConditionDoc struct {
	ID           string         `json:"id" yaml:"id"`
	Label        string         `json:"label" yaml:"label"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Severity     string         `json:"severity,omitempty" yaml:"severity,omitempty"`
	Rule         rules.Spec     `json:"rule" yaml:"rule"`
	ContextBonus []ContextBonus `json:"contextBonus,omitempty" yaml:"contextBonus,omitempty"`
	Actions      []string       `json:"actions,omitempty" yaml:"actions,omitempty"`
	RiskFactors  []string       `json:"riskFactors,omitempty" yaml:"riskFactors,omitempty"`
	MonitorFor   []string       `json:"monitorFor,omitempty" yaml:"monitorFor,omitempty"`
}

// Load reads and parses a catalogue document from disk. The format is
// inferred from the file extension.
func Load(path string) (*Catalogue, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalogue document. The document is checked against the
// embedded JSON schema before its rules are decoded. A document that omits
// its symptom or context registry inherits the builtin one.
//
// Parse does not run the integrity pass; call Validate for that.
func Parse(data []byte, format Format) (*Catalogue, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	if err := validateSchema(generic); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	return FromDocument(doc)
}

// toJSON normalises a document to JSON so that schema validation and
// decoding see the same value regardless of the source encoding.
func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse catalogue yaml: %w", err)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("convert catalogue yaml: %w", err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// FromDocument builds a catalogue from its serialised form.
func FromDocument(doc Document) (*Catalogue, error) {
	version, err := CanonicalVersion(doc.Version)
	if err != nil {
		return nil, err
	}

	symptoms := doc.Symptoms
	if len(symptoms) == 0 {
		symptoms = append([]Symptom(nil), builtin.Symptoms...)
	}
	contexts := doc.Contexts
	if len(contexts) == 0 {
		contexts = append([]Context(nil), builtin.Contexts...)
	}

	conditions := make([]Condition, 0, len(doc.Conditions))
	for i, cd := range doc.Conditions {
		rule, err := rules.Decode(cd.Rule)
		if err != nil {
			return nil, fmt.Errorf("condition %d (%s): %w", i, cd.ID, err)
		}
		conditions = append(conditions, Condition{
			ID:           cd.ID,
			Label:        cd.Label,
			Description:  cd.Description,
			Severity:     Severity(cd.Severity),
			Rule:         rule,
			ContextBonus: cd.ContextBonus,
			Actions:      cd.Actions,
			RiskFactors:  cd.RiskFactors,
			MonitorFor:   cd.MonitorFor,
		})
	}
	return New(version, doc.Name, symptoms, contexts, conditions), nil
}

// ToDocument returns the serialised form of c.
func ToDocument(c *Catalogue) Document {
	doc := Document{
		Version:    c.Version,
		Name:       c.Name,
		Symptoms:   c.Symptoms,
		Contexts:   c.Contexts,
		Conditions: make([]ConditionDoc, 0, len(c.Conditions)),
	}
	for _, cond := range c.Conditions {
		doc.Conditions = append(doc.Conditions, ConditionDoc{
			ID:           cond.ID,
			Label:        cond.Label,
			Description:  cond.Description,
			Severity:     string(cond.Severity),
			Rule:         rules.Encode(cond.Rule),
			ContextBonus: cond.ContextBonus,
			Actions:      cond.Actions,
			RiskFactors:  cond.RiskFactors,
			MonitorFor:   cond.MonitorFor,
		})
	}
	return doc
}

// Marshal encodes c as a document in the given format.
func Marshal(c *Catalogue, format Format) ([]byte, error) {
	doc := ToDocument(c)
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal catalogue: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("marshal catalogue: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshal catalogue: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// CanonicalVersion checks that v is a semantic version and returns it
// without a leading "v" and without build metadata.
func CanonicalVersion(v string) (string, error) {
	sv := "v" + strings.TrimPrefix(strings.TrimSpace(v), "v")
	if !semver.IsValid(sv) {
		return "", fmt.Errorf("catalogue version %q is not a semantic version", v)
	}
	canon := semver.Canonical(sv)
	return strings.TrimPrefix(canon, "v"), nil
}

// CompareVersions orders two catalogue versions like semver.Compare.
// Invalid versions sort before valid ones.
func CompareVersions(a, b string) int {
	return semver.Compare(
		"v"+strings.TrimPrefix(a, "v"),
		"v"+strings.TrimPrefix(b, "v"),
	)
}
