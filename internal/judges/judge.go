// Package judges implements the contest's judge panel: persona-bound
// evaluators that score essays against the shared rubric through a
// text-generation service, with a deterministic offline fallback used
// whenever live evaluation is unavailable or fails.
package judges

import (
	"context"
	"log/slog"

	"github.com/hotbench/hotbench/internal/domain"
	"github.com/hotbench/hotbench/internal/ports"
)

// Mode is a judge's evaluation mode, fixed at construction.
type Mode int

const (
	// ModeLive sends each evaluation to the backing service, falling
	// back to a simulated score only when a call fails.
	ModeLive Mode = iota

	// ModeFallbackOnly skips the network entirely and always returns a
	// simulated score. A judge whose credential is absent at
	// construction stays in this mode for its whole lifetime; the
	// credential is never re-checked per call.
	ModeFallbackOnly
)

// String returns the mode name for logging.
func (m Mode) String() string {
	if m == ModeLive {
		return "live"
	}
	return "fallback-only"
}

// Judge evaluates one essay at a time against the contest rubric.
// Implementations are stateless after construction: Evaluate never
// mutates judge state and may be called any number of times.
//
// Evaluate converts every modeled failure (transport errors, non-JSON
// responses, schema violations) into a fallback Score internally; the
// error return exists only for unexpected programming failures and is
// nil in steady-state operation.
type Judge interface {
	// ID returns the judge's stable numeric identifier.
	ID() int

	// Persona returns the judge's persona label.
	Persona() string

	// Model returns the backing model label.
	Model() string

	// Mode returns the evaluation mode fixed at construction.
	Mode() Mode

	// Evaluate scores the essay text. The label identifies the
	// submission in logs only; it never influences the score.
	Evaluate(ctx context.Context, text, label string) (domain.Score, error)
}

// llmJudge is the single concrete judge implementation. Variants differ
// only in persona and in the request options their backing protocol
// expects; prompt construction and fallback scoring are shared.
type llmJudge struct {
	id      int
	persona string
	model   string
	mode    Mode
	client  ports.LLMClient
	rubric  domain.Rubric
	options map[string]any
	logger  *slog.Logger
}

var _ Judge = (*llmJudge)(nil)

// newLLMJudge wires a judge to its client. A nil client permanently
// degrades the judge to fallback-only mode; this decision is made here,
// once, and never revisited.
func newLLMJudge(
	id int,
	persona, model string,
	client ports.LLMClient,
	rubric domain.Rubric,
	options map[string]any,
	logger *slog.Logger,
) *llmJudge {
	mode := ModeLive
	if client == nil {
		mode = ModeFallbackOnly
		logger.Warn("judge has no service credential, using simulated scores",
			"judge_id", id, "persona", persona)
	}
	return &llmJudge{
		id:      id,
		persona: persona,
		model:   model,
		mode:    mode,
		client:  client,
		rubric:  rubric,
		options: options,
		logger:  logger,
	}
}

// NewChatJudge creates a judge backed by a chat-completion style service.
// Requests run at temperature 0 with a JSON object response format.
// A nil client yields a permanently fallback-only judge.
func NewChatJudge(id int, persona string, client ports.LLMClient, model string, rubric domain.Rubric, logger *slog.Logger) Judge {
	return newLLMJudge(id, persona, model, client, rubric, map[string]any{
		"model":           model,
		"temperature":     0.0,
		"response_format": "json_object",
	}, logger)
}

// NewContentJudge creates a judge backed by a generative-content style
// service. Requests run at a low fixed temperature with a JSON response
// MIME type. A nil client yields a permanently fallback-only judge.
func NewContentJudge(id int, persona string, client ports.LLMClient, model string, rubric domain.Rubric, logger *slog.Logger) Judge {
	return newLLMJudge(id, persona, model, client, rubric, map[string]any{
		"model":              model,
		"temperature":        0.2,
		"response_mime_type": "application/json",
	}, logger)
}

// NewMessagesJudge creates a judge backed by a messages-style service
// (Anthropic protocol). JSON-only output is enforced by the prompt, so
// responses go through the same schema validation as the other variants.
func NewMessagesJudge(id int, persona string, client ports.LLMClient, model string, rubric domain.Rubric, logger *slog.Logger) Judge {
	return newLLMJudge(id, persona, model, client, rubric, map[string]any{
		"model":       model,
		"temperature": 0.0,
	}, logger)
}

func (j *llmJudge) ID() int         { return j.id }
func (j *llmJudge) Persona() string { return j.persona }
func (j *llmJudge) Model() string   { return j.model }
func (j *llmJudge) Mode() Mode      { return j.mode }

// Evaluate scores the essay. In fallback-only mode the simulated score is
// derived from the essay text itself. On a live-call failure the fallback
// is computed for the empty string: a fixed, content-independent degraded
// score, so every live failure lands on the same value.
func (j *llmJudge) Evaluate(ctx context.Context, text, label string) (domain.Score, error) {
	if j.mode == ModeFallbackOnly {
		return SimulateScore(j.rubric, text), nil
	}

	prompt := BuildPrompt(j.persona, j.rubric, text)

	response, err := j.client.Complete(ctx, prompt, j.options)
	if err != nil {
		j.logger.Error("live evaluation failed, falling back to simulation",
			"judge_id", j.id, "persona", j.persona, "essay", label, "error", err)
		return SimulateScore(j.rubric, ""), nil
	}

	score, err := domain.ParseScore(j.rubric, []byte(response))
	if err != nil {
		j.logger.Error("judge response failed validation, falling back to simulation",
			"judge_id", j.id, "persona", j.persona, "essay", label, "error", err)
		return SimulateScore(j.rubric, ""), nil
	}

	return score, nil
}
