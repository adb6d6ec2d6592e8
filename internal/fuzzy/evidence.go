package fuzzy

import "sort"

// Evidence is the input to one evaluation: the symptoms observed and the
// contextual flags active. It is read-only once built and safe to share
// between goroutines.
type Evidence struct {
	symptoms map[string]struct{}
	contexts map[string]struct{}
}

// NewEvidence builds an Evidence from caller-supplied sequences. Order is
// irrelevant and duplicates collapse.
func NewEvidence(symptoms, contexts []string) Evidence {
	return Evidence{
		symptoms: toSet(symptoms),
		contexts: toSet(contexts),
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// HasSymptom reports whether the symptom is present.
func (e Evidence) HasSymptom(id string) bool {
	_, ok := e.symptoms[id]
	return ok
}

// HasContext reports whether the context flag is active.
func (e Evidence) HasContext(label string) bool {
	_, ok := e.contexts[label]
	return ok
}

// Symptoms returns the present symptom ids, sorted.
func (e Evidence) Symptoms() []string {
	return sortedKeys(e.symptoms)
}

// Contexts returns the active context labels, sorted.
func (e Evidence) Contexts() []string {
	return sortedKeys(e.contexts)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
