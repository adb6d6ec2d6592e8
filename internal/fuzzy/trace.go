package fuzzy

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/triage/internal/rules"
)

// NodeEvent is emitted once per node after it has been scored. Children are
// reported before their parent.
type NodeEvent struct {
	Path    string
	Kind    rules.Kind
	Label   string    // symptom id for leaves
	Depth   int
	Inputs  []float64 // child scores, in child order
	Base    float64   // kind-specific score including its fixed multiplier
	Weight  float64
	Score   float64 // Base * Weight
	Skipped bool    // subtree was not evaluated; see the matching Diagnostic
}

// Tracer observes evaluation. Implementations must not influence scoring.
type Tracer interface {
	OnNode(NodeEvent)
	OnDiagnostic(Diagnostic)
}

// Tee fans events out to several tracers.
func Tee(tracers ...Tracer) Tracer {
	return tee(tracers)
}

type tee []Tracer

func (t tee) OnNode(ev NodeEvent) {
	for _, tr := range t {
		tr.OnNode(ev)
	}
}

func (t tee) OnDiagnostic(d Diagnostic) {
	for _, tr := range t {
		tr.OnDiagnostic(d)
	}
}

// ZapTracer logs node events at debug level and diagnostics at warn level.
type ZapTracer struct {
	logger *zap.Logger
}

// NewZapTracer creates a tracer writing to logger.
func NewZapTracer(logger *zap.Logger) *ZapTracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTracer{logger: logger}
}

func (t *ZapTracer) OnNode(ev NodeEvent) {
	if ev.Skipped {
		return
	}
	ce := t.logger.Check(zap.DebugLevel, "rule node scored")
	if ce == nil {
		return
	}
	ce.Write(
		zap.String("path", ev.Path),
		zap.String("kind", string(ev.Kind)),
		zap.String("label", ev.Label),
		zap.Float64s("inputs", ev.Inputs),
		zap.Float64("base", ev.Base),
		zap.Float64("weight", ev.Weight),
		zap.Float64("score", ev.Score),
	)
}

func (t *ZapTracer) OnDiagnostic(d Diagnostic) {
	t.logger.Warn("rule node skipped",
		zap.String("path", d.Path),
		zap.String("kind", string(d.Kind)),
		zap.Int("depth", d.Depth),
		zap.Error(d.Err),
	)
}

// Recorder collects the events of a single evaluation in memory.
type Recorder struct {
	mu     sync.Mutex
	events []NodeEvent
	diags  []Diagnostic
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnNode(ev NodeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) OnDiagnostic(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, d)
}

// Events returns the recorded node events in emission order.
func (r *Recorder) Events() []NodeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]NodeEvent(nil), r.events...)
}

// Diagnostics returns the recorded diagnostics.
func (r *Recorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Diagnostic(nil), r.diags...)
}

// Reset clears recorded state so the recorder can be reused.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.diags = nil
}

// TraceNode is one node of a reconstructed evaluation tree.
type TraceNode struct {
	NodeEvent
	Children []*TraceNode
}

// Tree rebuilds the evaluation tree from the post-order event stream.
// Returns nil if nothing was recorded.
func (r *Recorder) Tree() *TraceNode {
	events := r.Events()
	var stack []*TraceNode
	for _, ev := range events {
		node := &TraceNode{NodeEvent: ev}
		// Everything on the stack one level deeper is a child of this node.
		i := len(stack)
		for i > 0 && stack[i-1].Depth == ev.Depth+1 {
			i--
		}
		node.Children = append(node.Children, stack[i:]...)
		stack = append(stack[:i], node)
	}
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// Format writes an indented rendering of the recorded tree.
func (r *Recorder) Format(w io.Writer) error {
	root := r.Tree()
	if root == nil {
		_, err := fmt.Fprintln(w, "(no evaluation recorded)")
		return err
	}
	return formatNode(w, root, 0)
}

func formatNode(w io.Writer, n *TraceNode, indent int) error {
	pad := strings.Repeat("  ", indent)
	var line string
	switch {
	case n.Skipped:
		line = fmt.Sprintf("%s%s  skipped", pad, n.Kind)
	case n.Kind == rules.KindSymptom:
		line = fmt.Sprintf("%s%s %s  %.4f x %.2f = %.4f", pad, n.Kind, n.Label, n.Base, n.Weight, n.Score)
	default:
		line = fmt.Sprintf("%s%s  %.4f x %.2f = %.4f", pad, n.Kind, n.Base, n.Weight, n.Score)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := formatNode(w, c, indent+1); err != nil {
			return err
		}
	}
	return nil
}
