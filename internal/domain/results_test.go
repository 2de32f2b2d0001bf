package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluationWorth(t *testing.T, label string, judgeTotals ...int) *Evaluation {
	t.Helper()
	eval := NewEvaluation(Essay{Label: label})
	for i, total := range judgeTotals {
		eval.AddScore(i+1, scoreWorth(t, total))
	}
	return eval
}

func TestConsolidate_StableOrdering(t *testing.T) {
	config := ContestConfig{Rubric: pointsRubric, NumJudges: 1, NumWinners: 3}
	evaluations := []*Evaluation{
		evaluationWorth(t, "first", 50),
		evaluationWorth(t, "second", 80),
		evaluationWorth(t, "third", 80),
		evaluationWorth(t, "fourth", 30),
	}

	results := Consolidate(evaluations, config)

	ranked := results.Ranked()
	require.Len(t, ranked, 4)

	labels := make([]string, len(ranked))
	for i, entry := range ranked {
		labels[i] = entry.Evaluation.Essay.Label
	}
	assert.Equal(t, []string{"second", "third", "first", "fourth"}, labels,
		"Ties must preserve input order; everything else sorts by total descending.")

	for i, entry := range ranked {
		assert.Equal(t, i+1, entry.Rank, "Ranks must be 1-based and dense.")
	}
}

func TestConsolidate_Deterministic(t *testing.T) {
	config := ContestConfig{Rubric: pointsRubric, NumJudges: 1, NumWinners: 3}
	evaluations := []*Evaluation{
		evaluationWorth(t, "a", 70),
		evaluationWorth(t, "b", 70),
		evaluationWorth(t, "c", 70),
	}

	first := Consolidate(evaluations, config).Ranked()
	second := Consolidate(evaluations, config).Ranked()

	for i := range first {
		assert.Equal(t, first[i].Evaluation.Essay.Label, second[i].Evaluation.Essay.Label,
			"Consolidate() must produce identical output for identical input.")
	}
}

func TestResults_WinnersClamped(t *testing.T) {
	config := ContestConfig{Rubric: pointsRubric, NumJudges: 1, NumWinners: 3}
	evaluations := []*Evaluation{
		evaluationWorth(t, "a", 70),
		evaluationWorth(t, "b", 60),
	}

	winners := Consolidate(evaluations, config).Winners()

	require.Len(t, winners, 2, "Winners() must clamp to the number of evaluations.")
	assert.Equal(t, 1, winners[0].Place)
	assert.Equal(t, "a", winners[0].Evaluation.Essay.Label)
	assert.Equal(t, 2, winners[1].Place)
	assert.Equal(t, "b", winners[1].Evaluation.Essay.Label)
}

func TestResults_WinnersNegativeCount(t *testing.T) {
	config := ContestConfig{Rubric: pointsRubric, NumJudges: 1, NumWinners: -1}
	evaluations := []*Evaluation{
		evaluationWorth(t, "a", 70),
	}

	winners := Consolidate(evaluations, config).Winners()
	assert.Empty(t, winners, "A negative winner count yields no winners, not a panic.")
}

func TestResults_WinnersEmpty(t *testing.T) {
	config := ContestConfig{Rubric: pointsRubric, NumJudges: 1, NumWinners: 3}

	winners := Consolidate(nil, config).Winners()
	assert.Empty(t, winners, "No evaluations means no winners, not an error.")
}

func TestResults_JudgeTotals(t *testing.T) {
	config := ContestConfig{Rubric: pointsRubric, NumJudges: 2, NumWinners: 1}
	evaluations := []*Evaluation{
		evaluationWorth(t, "a", 70, 50),
		evaluationWorth(t, "b", 60, 40),
	}

	totals := Consolidate(evaluations, config).JudgeTotals()

	assert.Equal(t, map[int]int{1: 130, 2: 90}, totals)
}

func TestContestConfig_MaxScores(t *testing.T) {
	config := ContestConfig{Rubric: DefaultRubric(), NumJudges: 4, NumWinners: 3}

	assert.Equal(t, 85, config.MaxScorePerJudge())
	assert.Equal(t, 340, config.MaxTotalScore(), "Four judges against the default rubric max out at 340.")
}
