package domain

import "sort"

// ContestConfig carries the run-wide contest parameters consumed by the
// consolidator and the report layer.
type ContestConfig struct {
	// Rubric is the scoring rubric shared by every judge.
	Rubric Rubric

	// NumJudges is the size of the judge panel for this run.
	NumJudges int

	// NumWinners is how many top-ranked essays are declared winners.
	NumWinners int
}

// MaxScorePerJudge returns the maximum total a single judge can award.
func (c ContestConfig) MaxScorePerJudge() int { return c.Rubric.MaxPerJudge() }

// MaxTotalScore returns the maximum combined score across the panel.
func (c ContestConfig) MaxTotalScore() int { return c.MaxScorePerJudge() * c.NumJudges }

// RankedEvaluation pairs an evaluation with its 1-based rank.
type RankedEvaluation struct {
	Rank       int
	Evaluation *Evaluation
}

// Winner is a top-ranked evaluation tagged with its place (1, 2, 3, ...).
type Winner struct {
	Place      int
	Evaluation *Evaluation
}

// Results is the immutable ranked view of a finished evaluation batch.
// Build it with Consolidate; it performs no I/O and holds no state beyond
// the ordering it was constructed with.
type Results struct {
	// Config is the contest configuration the results were built against.
	Config ContestConfig

	ranked []RankedEvaluation
}

// Consolidate stable-sorts the evaluations by total score descending and
// assigns 1-based ranks. Ties preserve the evaluations' relative input
// order, which is the pipeline's sorted-by-label order; this is the only
// tie-break and must stay deterministic. Consolidate is a pure reduction:
// calling it twice on the same input yields identical results.
func Consolidate(evaluations []*Evaluation, config ContestConfig) *Results {
	ranked := make([]RankedEvaluation, len(evaluations))
	for i, e := range evaluations {
		ranked[i] = RankedEvaluation{Evaluation: e}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Evaluation.TotalScore() > ranked[j].Evaluation.TotalScore()
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return &Results{Config: config, ranked: ranked}
}

// Ranked returns all evaluations in rank order. The slice is a copy.
func (r *Results) Ranked() []RankedEvaluation {
	out := make([]RankedEvaluation, len(r.ranked))
	copy(out, r.ranked)
	return out
}

// Len returns the number of ranked evaluations.
func (r *Results) Len() int { return len(r.ranked) }

// Winners returns the top entries tagged with their place. The count is
// clamped to [0, number of available evaluations].
func (r *Results) Winners() []Winner {
	n := r.Config.NumWinners
	if n < 0 {
		n = 0
	}
	if n > len(r.ranked) {
		n = len(r.ranked)
	}
	winners := make([]Winner, 0, n)
	for i := 0; i < n; i++ {
		winners = append(winners, Winner{Place: i + 1, Evaluation: r.ranked[i].Evaluation})
	}
	return winners
}

// JudgeTotals returns, per judge ID, the sum of that judge's totals across
// every ranked essay. Judges that never responded are absent.
func (r *Results) JudgeTotals() map[int]int {
	totals := make(map[int]int)
	for _, entry := range r.ranked {
		for _, id := range entry.Evaluation.JudgeIDs() {
			if s, ok := entry.Evaluation.ScoreFor(id); ok {
				totals[id] += s.Total()
			}
		}
	}
	return totals
}
