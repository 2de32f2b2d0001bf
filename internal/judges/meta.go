package judges

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/hotbench/hotbench/internal/domain"
	"github.com/hotbench/hotbench/internal/ports"
)

// rationaleBudget hard-truncates per-judge rationales before they are
// embedded in the analysis request, bounding its size.
const rationaleBudget = 200

const metaSystemPrompt = "You are an expert educational researcher and statistician analyzing " +
	"essay contest results. Provide thorough, insightful analysis with specific examples " +
	"and actionable recommendations."

// MetaAnalyzer is the optional terminal stage: a single model that reads
// the finished ranking and writes a prose analysis of the judging. It
// runs after all scoring is durable and is strictly informational, so it
// never fails the run; any problem surfaces as a descriptive string in
// place of the analysis.
type MetaAnalyzer struct {
	client ports.LLMClient
	model  string
	logger *slog.Logger
}

// NewMetaAnalyzer creates the analyzer. A nil client (no credential)
// makes Analyze return the error-describing string immediately.
func NewMetaAnalyzer(client ports.LLMClient, model string, logger *slog.Logger) *MetaAnalyzer {
	return &MetaAnalyzer{client: client, model: model, logger: logger}
}

// Analyze sends one analysis request over the finished results and
// returns the generated prose, or a descriptive error string if the
// request cannot be made or fails.
func (m *MetaAnalyzer) Analyze(ctx context.Context, results *domain.Results) string {
	if m.client == nil {
		return "Error generating meta-analysis: no service credential available"
	}

	prompt := BuildAnalysisPrompt(results)

	response, err := m.client.Complete(ctx, prompt, map[string]any{
		"model":       m.model,
		"system":      metaSystemPrompt,
		"temperature": 0.7,
		"max_tokens":  3000,
	})
	if err != nil {
		m.logger.Error("meta-analysis request failed", "error", err)
		return fmt.Sprintf("Error generating meta-analysis: %v", err)
	}
	if strings.TrimSpace(response) == "" {
		return "Meta-analysis could not be generated: service returned no content"
	}

	return response
}

// BuildAnalysisPrompt assembles the single analysis request: contest
// parameters, winners, per-judge totals, and the full ranked breakdown
// with rationales truncated to a fixed budget.
func BuildAnalysisPrompt(results *domain.Results) string {
	cfg := results.Config
	var sb strings.Builder

	sb.WriteString("You are a meta-analyst reviewing the results of a student essay contest ")
	sb.WriteString("judged by multiple independent automated judges.\n\n")

	fmt.Fprintf(&sb, "Essays evaluated: %d\n", results.Len())
	fmt.Fprintf(&sb, "Judges on the panel: %d\n", cfg.NumJudges)
	fmt.Fprintf(&sb, "Maximum score per judge: %d\n", cfg.MaxScorePerJudge())
	fmt.Fprintf(&sb, "Maximum total score: %d\n\n", cfg.MaxTotalScore())

	sb.WriteString("Rubric:\n")
	for _, c := range cfg.Rubric.Categories() {
		fmt.Fprintf(&sb, "- %s: %d points\n", capitalize(c.Name), c.Max)
	}

	sb.WriteString("\nWINNERS:\n")
	for _, w := range results.Winners() {
		fmt.Fprintf(&sb, "  Place %d: %s (total %d/%d)\n",
			w.Place, w.Evaluation.Essay.Label, w.Evaluation.TotalScore(), cfg.MaxTotalScore())
	}

	sb.WriteString("\nPER-JUDGE TOTALS ACROSS ALL ESSAYS:\n")
	totals := results.JudgeTotals()
	ids := make([]int, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(&sb, "  Judge %d: %d\n", id, totals[id])
	}

	sb.WriteString("\nDETAILED EVALUATIONS:\n")
	for _, entry := range results.Ranked() {
		e := entry.Evaluation
		fmt.Fprintf(&sb, "\nESSAY #%d: %s\n", entry.Rank, e.Essay.Label)
		fmt.Fprintf(&sb, "Word count: %d\n", e.Essay.WordCount)
		fmt.Fprintf(&sb, "Total score: %d\n", e.TotalScore())
		for _, id := range e.JudgeIDs() {
			score, _ := e.ScoreFor(id)
			fmt.Fprintf(&sb, "  Judge %d:\n", id)
			for _, c := range cfg.Rubric.Categories() {
				fmt.Fprintf(&sb, "  - %s: %d/%d\n", capitalize(c.Name), score.Value(c.Name), c.Max)
			}
			fmt.Fprintf(&sb, "  - Total: %d/%d\n", score.Total(), cfg.MaxScorePerJudge())
			fmt.Fprintf(&sb, "  Rationale: %s\n", truncateRationale(score.Rationale()))
		}
	}

	sb.WriteString(`
Please provide a comprehensive meta-analysis that addresses:

1. WINNING ESSAY ANALYSIS
   - What characteristics did the winning essays have in common?
   - Were there notable patterns in how different judges scored them?

2. JUDGE CONSISTENCY
   - How consistent were the judges in their evaluations?
   - Did certain judges tend to score higher or lower overall?

3. RUBRIC EFFECTIVENESS
   - How well did the rubric distinguish between essays?
   - Were certain criteria more discriminating than others?

4. RECOMMENDATIONS
   - How could the rubric be improved for future contests?
   - What guidance would help students write stronger essays?

Provide a thoughtful, detailed analysis with specific examples from the data.
`)

	return sb.String()
}

// truncateRationale enforces the fixed character budget on rationale text.
func truncateRationale(rationale string) string {
	runes := []rune(rationale)
	if len(runes) <= rationaleBudget {
		return rationale
	}
	return string(runes[:rationaleBudget]) + "..."
}
