package catalogue

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triage/internal/rules"
)

const sampleYAML = `
version: 2.1.0
name: clinic
symptoms:
  - {id: s1, label: One}
  - {id: s2, label: Two, category: general}
contexts:
  - {id: travel, label: Travel}
conditions:
  - id: c1
    label: Condition one
    severity: low
    rule:
      type: and
      children:
        - {type: symptom, symptom: s1}
        - {type: symptom, symptom: s2, weight: 2}
    contextBonus:
      - {context: travel, bonus: 0.2}
    actions: [rest]
  - id: c2
    label: Condition two
    rule:
      type: implies
      if: {type: symptom, symptom: s1}
      then: {type: not, child: {type: symptom, symptom: s2}}
`

func TestParse_YAML(t *testing.T) {
	c, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "2.1.0", c.Version)
	assert.Equal(t, "clinic", c.Name)
	require.Len(t, c.Conditions, 2)

	c1 := c.Conditions[0]
	assert.Equal(t, SeverityLow, c1.Severity)
	assert.Equal(t, []ContextBonus{{Context: "travel", Bonus: 0.2}}, c1.ContextBonus)
	assert.Equal(t, []string{"rest"}, c1.Actions)

	want := rules.AllOf(rules.Sym("s1"), rules.SymW("s2", 2))
	if diff := cmp.Diff(rules.Encode(want), rules.Encode(c1.Rule)); diff != "" {
		t.Errorf("rule mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, rules.KindImplies, c.Conditions[1].Rule.Kind())
	assert.NoError(t, Validate(c))
}

func TestParse_JSON(t *testing.T) {
	doc := `{
	  "version": "v1.0",
	  "conditions": [
	    {"id": "flu", "label": "Flu", "rule": {"type": "or", "children": [
	      {"type": "symptom", "symptom": "fever"},
	      {"type": "symptom", "symptom": "cough"}
	    ]}}
	  ]
	}`
	c, err := Parse([]byte(doc), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", c.Version)
	// registries omitted from the document come from the builtin catalogue
	assert.Len(t, c.Symptoms, len(Builtin().Symptoms))
	assert.NotNil(t, c.Context("recent_travel"))
	assert.NoError(t, Validate(c))
}

func TestParse_SchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing version", `{"conditions": []}`},
		{"missing rule", `{"version": "1.0.0", "conditions": [{"id": "a", "label": "A"}]}`},
		{"unknown field", `{"version": "1.0.0", "conditions": [], "extra": true}`},
		{"weight is a string", `{"version": "1.0.0", "conditions": [{"id": "a", "label": "A",
			"rule": {"type": "symptom", "symptom": "x", "weight": "heavy"}}]}`},
		{"node without type", `{"version": "1.0.0", "conditions": [{"id": "a", "label": "A",
			"rule": {"children": []}}]}`},
		{"not an object", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestParse_RejectsBadVersion(t *testing.T) {
	_, err := Parse([]byte(`{"version": "latest", "conditions": []}`), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a semantic version")
}

func TestParse_MalformedRule(t *testing.T) {
	doc := `{"version": "1.0.0", "conditions": [{"id": "a", "label": "A",
		"rule": {"type": "not"}}]}`
	_, err := Parse([]byte(doc), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rules.ErrMalformedSpec))
	assert.Contains(t, err.Error(), "condition 0 (a)")
}

func TestParse_UnknownRuleTypeFailsValidation(t *testing.T) {
	doc := `{"version": "1.0.0", "conditions": [{"id": "a", "label": "A",
		"rule": {"type": "and", "children": [{"type": "majority"}]}}]}`
	c, err := Parse([]byte(doc), FormatJSON)
	require.NoError(t, err)

	err = Validate(c)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), `$.children[0]: unknown rule kind "majority"`)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("x"), Format("toml"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestMarshal_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(Builtin(), format)
			require.NoError(t, err)

			back, err := Parse(data, format)
			require.NoError(t, err)

			if diff := cmp.Diff(ToDocument(Builtin()), ToDocument(back)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clinic.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "clinic", c.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "clinic.txt"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"dir/a.json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil {
			t.Errorf("FormatFromPath(%q): %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}

	_, err := FormatFromPath("catalogue")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestVersions(t *testing.T) {
	got, err := CanonicalVersion("v1.2")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", got)

	got, err = CanonicalVersion("1.2.3+build.7")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)

	_, err = CanonicalVersion("")
	assert.Error(t, err)

	assert.Equal(t, -1, CompareVersions("1.2.0", "1.10.0"))
	assert.Equal(t, 0, CompareVersions("v1.2.0", "1.2.0"))
	assert.Equal(t, 1, CompareVersions("2.0.0", "2.0.0-rc.1"))
}
