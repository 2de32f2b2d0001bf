package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointsRubric is a single-category rubric that makes it trivial to mint
// scores with exact totals in tests.
var pointsRubric = MustNewRubric(Category{Name: "points", Max: 100})

func scoreWorth(t *testing.T, total int) Score {
	t.Helper()
	s, err := NewScore(pointsRubric, map[string]int{"points": total}, "test score")
	require.NoError(t, err)
	return s
}

func TestEvaluation_AddScore(t *testing.T) {
	eval := NewEvaluation(Essay{Label: "Ada Lovelace"})

	eval.AddScore(2, scoreWorth(t, 40))
	eval.AddScore(1, scoreWorth(t, 30))
	eval.AddScore(4, scoreWorth(t, 20))

	assert.Equal(t, 3, eval.ScoreCount())
	assert.Equal(t, []int{2, 1, 4}, eval.JudgeIDs(), "JudgeIDs() must preserve insertion order.")
	assert.Equal(t, 90, eval.TotalScore())
	assert.InDelta(t, 30.0, eval.AverageScore(), 1e-9)

	score, ok := eval.ScoreFor(1)
	require.True(t, ok)
	assert.Equal(t, 30, score.Total())

	_, ok = eval.ScoreFor(3)
	assert.False(t, ok, "ScoreFor() must report judges that never scored.")
}

func TestEvaluation_AddScoreReplaces(t *testing.T) {
	eval := NewEvaluation(Essay{Label: "Ada Lovelace"})

	eval.AddScore(1, scoreWorth(t, 30))
	eval.AddScore(2, scoreWorth(t, 40))
	eval.AddScore(1, scoreWorth(t, 50))

	assert.Equal(t, 2, eval.ScoreCount(), "Re-adding a judge must not grow the evaluation.")
	assert.Equal(t, []int{1, 2}, eval.JudgeIDs(), "Replacement must keep the original position.")
	assert.Equal(t, 90, eval.TotalScore())
}

func TestEvaluation_Empty(t *testing.T) {
	eval := NewEvaluation(Essay{Label: "Ada Lovelace"})

	assert.Equal(t, 0, eval.TotalScore())
	assert.Equal(t, 0.0, eval.AverageScore(), "AverageScore() must be 0 when no judge responded.")
	assert.Empty(t, eval.JudgeIDs())
}
