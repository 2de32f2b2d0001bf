// Package evaluator runs the scoring pipeline: every judge on the panel
// evaluates every essay, sequentially, producing one Evaluation per
// essay. The pipeline isolates judge failures so that one bad evaluation
// never aborts the batch.
package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hotbench/hotbench/internal/domain"
	"github.com/hotbench/hotbench/internal/judges"
	"github.com/hotbench/hotbench/internal/ports"
)

// Pipeline scores essays with a fixed panel of judges. Judges run in
// declaration order and essays in label order, one evaluation at a
// time, so a given input set always produces the same request sequence.
type Pipeline struct {
	panel   []judges.Judge
	metrics ports.MetricsCollector
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics attaches a metrics collector. Without it, scoring metrics
// are discarded.
func WithMetrics(collector ports.MetricsCollector) Option {
	return func(p *Pipeline) { p.metrics = collector }
}

// WithTracer attaches a tracer that records one span per essay.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) { p.tracer = tracer }
}

// NewPipeline creates a pipeline over the given panel.
func NewPipeline(panel []judges.Judge, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		panel:  panel,
		tracer: noop.NewTracerProvider().Tracer("evaluator"),
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Panel returns the judges in evaluation order.
func (p *Pipeline) Panel() []judges.Judge {
	out := make([]judges.Judge, len(p.panel))
	copy(out, p.panel)
	return out
}

// Run evaluates every essay with every judge and returns one Evaluation
// per essay, in label order. A judge that panics or returns an error is
// logged and skipped for that essay; the evaluation simply carries fewer
// scores. Run returns early with the evaluations completed so far when
// ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, essays []domain.Essay) ([]*domain.Evaluation, error) {
	ordered := make([]domain.Essay, len(essays))
	copy(ordered, essays)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Label < ordered[j].Label })

	evaluations := make([]*domain.Evaluation, 0, len(ordered))
	for _, essay := range ordered {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("evaluation interrupted", "completed", len(evaluations), "total", len(ordered))
			return evaluations, err
		}
		evaluations = append(evaluations, p.evaluateEssay(ctx, essay))
	}
	return evaluations, nil
}

func (p *Pipeline) evaluateEssay(ctx context.Context, essay domain.Essay) *domain.Evaluation {
	ctx, span := p.tracer.Start(ctx, "evaluate_essay",
		trace.WithAttributes(
			attribute.String("essay.label", essay.Label),
			attribute.Int("essay.word_count", essay.WordCount),
		))
	defer span.End()

	eval := domain.NewEvaluation(essay)
	for _, j := range p.panel {
		start := time.Now()
		score, err := p.evaluateOne(ctx, j, essay)
		if err != nil {
			p.logger.Error("judge evaluation skipped",
				"judge", j.ID(), "essay", essay.Label, "error", err)
			p.count("hotbench_evaluations_total", map[string]string{"outcome": "skipped"})
			continue
		}
		eval.AddScore(j.ID(), score)

		outcome := "live"
		if judges.IsSimulated(score) {
			outcome = "fallback"
		}
		p.count("hotbench_evaluations_total", map[string]string{"outcome": outcome})
		if p.metrics != nil {
			p.metrics.RecordLatency("hotbench_evaluation_seconds", time.Since(start),
				map[string]string{"judge": fmt.Sprintf("%d", j.ID())})
		}
		p.logger.Info("essay scored",
			"essay", essay.Label, "judge", j.ID(), "total", score.Total(), "outcome", outcome)
	}

	span.SetAttributes(attribute.Int("essay.total_score", eval.TotalScore()))
	return eval
}

// evaluateOne converts a judge panic into an error so the batch survives
// a misbehaving judge implementation.
func (p *Pipeline) evaluateOne(ctx context.Context, j judges.Judge, essay domain.Essay) (score domain.Score, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("judge %d panicked: %v", j.ID(), r)
		}
	}()
	return j.Evaluate(ctx, essay.Content, essay.Label)
}

func (p *Pipeline) count(name string, labels map[string]string) {
	if p.metrics != nil {
		p.metrics.RecordCounter(name, 1, labels)
	}
}
