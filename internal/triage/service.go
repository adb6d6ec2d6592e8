package triage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/triage/internal/catalogue"
	"github.com/abhisek/triage/internal/fuzzy"
)

// Request is the caller's evidence. Order and duplicates do not matter.
type Request struct {
	Symptoms []string
	Contexts []string
}

// Report is the outcome of one triage run.
type Report struct {
	ID               uuid.UUID `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	CatalogueVersion string    `json:"catalogueVersion"`
	Symptoms         []string  `json:"symptoms"`
	Contexts         []string  `json:"contexts"`
	Results          []Result  `json:"results"`

	// Ids the catalogue does not register. They are still part of the
	// evidence; they just cannot match anything.
	UnrecognizedSymptoms []string `json:"unrecognizedSymptoms,omitempty"`
	UnrecognizedContexts []string `json:"unrecognizedContexts,omitempty"`
}

// Top returns at most n results.
func (r *Report) Top(n int) []Result {
	if n <= 0 || n >= len(r.Results) {
		return r.Results
	}
	return r.Results[:n]
}

// Recorder persists reports.
type Recorder interface {
	Append(ctx context.Context, report *Report) error
}

// Service ranks a catalogue for caller requests and optionally records the
// reports.
type Service struct {
	cat      *catalogue.Catalogue
	ranker   *Ranker
	recorder Recorder
	logger   *zap.Logger
}

// NewService creates a triage service. recorder and logger may be nil.
func NewService(cat *catalogue.Catalogue, ranker *Ranker, recorder Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cat: cat, ranker: ranker, recorder: recorder, logger: logger}
}

// Catalogue returns the catalogue the service ranks.
func (s *Service) Catalogue() *catalogue.Catalogue {
	return s.cat
}

// Triage ranks the catalogue against the request. A failure to record the
// report is logged, not returned.
func (s *Service) Triage(ctx context.Context, req Request) (*Report, error) {
	ev := fuzzy.NewEvidence(req.Symptoms, req.Contexts)

	results, err := s.ranker.Rank(ctx, ev, s.cat.Conditions)
	if err != nil {
		return nil, fmt.Errorf("rank conditions: %w", err)
	}

	report := &Report{
		ID:               uuid.New(),
		CreatedAt:        time.Now().UTC(),
		CatalogueVersion: s.cat.Version,
		Symptoms:         ev.Symptoms(),
		Contexts:         ev.Contexts(),
		Results:          results,
	}
	for _, id := range report.Symptoms {
		if s.cat.Symptom(id) == nil {
			report.UnrecognizedSymptoms = append(report.UnrecognizedSymptoms, id)
		}
	}
	for _, id := range report.Contexts {
		if s.cat.Context(id) == nil {
			report.UnrecognizedContexts = append(report.UnrecognizedContexts, id)
		}
	}
	if len(report.UnrecognizedSymptoms) > 0 || len(report.UnrecognizedContexts) > 0 {
		s.logger.Info("evidence not in catalogue registry",
			zap.Strings("symptoms", report.UnrecognizedSymptoms),
			zap.Strings("contexts", report.UnrecognizedContexts),
		)
	}

	if s.recorder != nil {
		if err := s.recorder.Append(ctx, report); err != nil {
			s.logger.Warn("record triage run failed",
				zap.Stringer("id", report.ID),
				zap.Error(err),
			)
		}
	}
	return report, nil
}

// Explanation is the scored trace of one condition.
type Explanation struct {
	Condition   *catalogue.Condition
	Result      Result // not filtered: Score may be zero
	Trace       *fuzzy.TraceNode
	Diagnostics []fuzzy.Diagnostic

	rec *fuzzy.Recorder
}

// Format writes the indented rule trace.
func (x *Explanation) Format(w io.Writer) error {
	return x.rec.Format(w)
}

// Explain scores a single condition with tracing enabled.
func (s *Service) Explain(conditionID string, req Request) (*Explanation, error) {
	cond, err := s.cat.Condition(conditionID)
	if err != nil {
		return nil, err
	}

	rec := fuzzy.NewRecorder()
	e := s.ranker.Evaluator().With(fuzzy.WithTracer(rec))
	ev := fuzzy.NewEvidence(req.Symptoms, req.Contexts)

	return &Explanation{
		Condition:   cond,
		Result:      scoreCondition(e, ev, cond),
		Trace:       rec.Tree(),
		Diagnostics: rec.Diagnostics(),
		rec:         rec,
	}, nil
}
