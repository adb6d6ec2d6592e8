package triage

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/triage/internal/catalogue"
	"github.com/abhisek/triage/internal/rules"
)

type memRecorder struct {
	mu      sync.Mutex
	reports []*Report
	err     error
}

func (m *memRecorder) Append(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, r)
	return nil
}

func newTestService(rec Recorder, logger *zap.Logger) *Service {
	return NewService(catalogue.Builtin(), NewRanker(DefaultConfig()), rec, logger)
}

func TestService_Triage(t *testing.T) {
	rec := &memRecorder{}
	svc := newTestService(rec, nil)

	report, err := svc.Triage(context.Background(), Request{
		Symptoms: []string{"fever", "chills", "sweating", "headache", "fever"},
		Contexts: []string{"recent_travel"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.False(t, report.CreatedAt.IsZero())
	assert.Equal(t, catalogue.BuiltinVersion, report.CatalogueVersion)
	assert.Equal(t, []string{"chills", "fever", "headache", "sweating"}, report.Symptoms)
	assert.Equal(t, []string{"recent_travel"}, report.Contexts)
	require.NotEmpty(t, report.Results)
	assert.Equal(t, "malaria", report.Results[0].ConditionID)
	assert.InDelta(t, 0.4, report.Results[0].Bonus, eps)
	assert.Empty(t, report.UnrecognizedSymptoms)

	require.Len(t, rec.reports, 1)
	assert.Same(t, report, rec.reports[0])
}

func TestService_TriageNoEvidence(t *testing.T) {
	svc := newTestService(nil, nil)

	report, err := svc.Triage(context.Background(), Request{})
	require.NoError(t, err)
	assert.NotNil(t, report.Results)
	// negations and implications hold with no evidence at all
	for _, r := range report.Results {
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestService_UnrecognizedEvidence(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := newTestService(nil, zap.New(core))

	report, err := svc.Triage(context.Background(), Request{
		Symptoms: []string{"fever", "glowing"},
		Contexts: []string{"moon_landing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"glowing"}, report.UnrecognizedSymptoms)
	assert.Equal(t, []string{"moon_landing"}, report.UnrecognizedContexts)
	assert.Equal(t, 1, logs.FilterMessage("evidence not in catalogue registry").Len())
}

func TestService_RecorderFailureIsNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := &memRecorder{err: errors.New("disk full")}
	svc := newTestService(rec, zap.New(core))

	report, err := svc.Triage(context.Background(), Request{Symptoms: []string{"cough"}})
	require.NoError(t, err)
	require.NotNil(t, report)

	entries := logs.FilterMessage("record triage run failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, report.ID.String(), entries[0].ContextMap()["id"])
}

func TestService_TriageCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &memRecorder{}
	_, err := newTestService(rec, nil).Triage(ctx, Request{Symptoms: []string{"fever"}})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, rec.reports)
}

func TestService_Explain(t *testing.T) {
	svc := newTestService(nil, nil)

	x, err := svc.Explain("migraine", Request{Symptoms: []string{"headache", "nausea"}})
	require.NoError(t, err)

	assert.Equal(t, "Migraine", x.Condition.Label)
	require.NotNil(t, x.Trace)
	assert.Equal(t, rules.KindAnd, x.Trace.Kind)
	require.Len(t, x.Trace.Children, 3)
	assert.InDelta(t, x.Result.Base, x.Trace.Score, eps)
	assert.Empty(t, x.Diagnostics)

	var buf bytes.Buffer
	require.NoError(t, x.Format(&buf))
	assert.Contains(t, buf.String(), "symptom headache  1.0000 x 1.50 = 1.5000")
}

func TestService_ExplainZeroScore(t *testing.T) {
	svc := newTestService(nil, nil)

	x, err := svc.Explain("stroke", Request{})
	require.NoError(t, err)
	assert.Zero(t, x.Result.Score)
}

func TestService_ExplainUnknownCondition(t *testing.T) {
	_, err := newTestService(nil, nil).Explain("scurvy", Request{})
	assert.True(t, errors.Is(err, catalogue.ErrUnknownCondition))
}

func TestReport_Top(t *testing.T) {
	r := &Report{Results: []Result{{ConditionID: "a"}, {ConditionID: "b"}, {ConditionID: "c"}}}
	assert.Len(t, r.Top(2), 2)
	assert.Len(t, r.Top(0), 3)
	assert.Len(t, r.Top(10), 3)
}
