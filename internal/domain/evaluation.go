package domain

// Evaluation accumulates one essay's scores across the judge panel. It is
// keyed by judge ID and preserves the order in which scores were added,
// which is the evaluation order. Judge IDs need not be contiguous: a judge
// that failed outright simply has no entry.
type Evaluation struct {
	// Essay is the submission this evaluation belongs to.
	Essay Essay

	scores map[int]Score
	order  []int
}

// NewEvaluation creates an empty Evaluation for the given essay.
func NewEvaluation(essay Essay) *Evaluation {
	return &Evaluation{
		Essay:  essay,
		scores: make(map[int]Score),
	}
}

// AddScore records a judge's score. Re-adding the same judge ID replaces
// the score but keeps its original position.
func (e *Evaluation) AddScore(judgeID int, score Score) {
	if _, exists := e.scores[judgeID]; !exists {
		e.order = append(e.order, judgeID)
	}
	e.scores[judgeID] = score
}

// JudgeIDs returns the IDs of all judges that scored this essay, in the
// order their scores were added.
func (e *Evaluation) JudgeIDs() []int {
	out := make([]int, len(e.order))
	copy(out, e.order)
	return out
}

// ScoreFor returns the score recorded for the given judge, if any.
func (e *Evaluation) ScoreFor(judgeID int) (Score, bool) {
	s, ok := e.scores[judgeID]
	return s, ok
}

// ScoreCount returns the number of judges that scored this essay.
func (e *Evaluation) ScoreCount() int { return len(e.order) }

// TotalScore returns the sum of all recorded scores' totals.
func (e *Evaluation) TotalScore() int {
	total := 0
	for _, s := range e.scores {
		total += s.Total()
	}
	return total
}

// AverageScore returns the mean total per responding judge, or 0 when no
// judge responded. A fully failed essay is a valid, zero-scored entry,
// not an error.
func (e *Evaluation) AverageScore() float64 {
	if len(e.order) == 0 {
		return 0.0
	}
	return float64(e.TotalScore()) / float64(len(e.order))
}
