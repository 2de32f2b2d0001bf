package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValues() map[string]int {
	return map[string]int{
		"effectiveness": 20,
		"creativity":    18,
		"scholarship":   22,
		"effort":        9,
	}
}

func TestNewScore(t *testing.T) {
	rubric := DefaultRubric()

	tests := []struct {
		name      string
		mutate    func(map[string]int)
		rationale string
		wantErr   error
	}{
		{
			name:      "valid score",
			mutate:    func(map[string]int) {},
			rationale: "well argued",
		},
		{
			name:      "value at lower bound",
			mutate:    func(v map[string]int) { v["effort"] = 1 },
			rationale: "minimal effort shown",
		},
		{
			name:      "value at upper bound",
			mutate:    func(v map[string]int) { v["effectiveness"] = 25 },
			rationale: "flawless",
		},
		{
			name:      "zero is out of range",
			mutate:    func(v map[string]int) { v["creativity"] = 0 },
			rationale: "x",
			wantErr:   ErrScoreOutOfRange,
		},
		{
			name:      "above max is out of range",
			mutate:    func(v map[string]int) { v["effort"] = 11 },
			rationale: "x",
			wantErr:   ErrScoreOutOfRange,
		},
		{
			name:      "missing category",
			mutate:    func(v map[string]int) { delete(v, "scholarship") },
			rationale: "x",
			wantErr:   ErrMissingCategory,
		},
		{
			name:      "unknown category",
			mutate:    func(v map[string]int) { v["penmanship"] = 5 },
			rationale: "x",
			wantErr:   ErrUnknownCategory,
		},
		{
			name:      "empty rationale",
			mutate:    func(map[string]int) {},
			rationale: "   ",
			wantErr:   ErrEmptyRationale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			tt.mutate(values)

			score, err := NewScore(rubric, values, tt.rationale)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr, "NewScore() should reject the invalid input.")
				return
			}
			require.NoError(t, err)

			wantTotal := 0
			for _, v := range values {
				wantTotal += v
			}
			assert.Equal(t, wantTotal, score.Total(), "Total() must equal the sum of category values.")
			assert.Equal(t, tt.rationale, score.Rationale())
		})
	}
}

func TestScore_ValueUnknownCategory(t *testing.T) {
	score, err := NewScore(DefaultRubric(), validValues(), "solid work")
	require.NoError(t, err)

	assert.Equal(t, 20, score.Value("effectiveness"))
	assert.Equal(t, 0, score.Value("penmanship"), "Value() should return 0 for categories outside the rubric.")
}

func TestParseScore(t *testing.T) {
	rubric := DefaultRubric()

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "valid payload",
			payload: `{"effectiveness": 20, "creativity": 18, "scholarship": 22, "effort": 9, "rationale": "strong thesis"}`,
		},
		{
			name:    "unknown fields are ignored",
			payload: `{"effectiveness": 20, "creativity": 18, "scholarship": 22, "effort": 9, "rationale": "ok", "confidence": 0.9, "notes": "extra"}`,
		},
		{
			name:    "not json",
			payload: `I would give this essay a solid 80/85.`,
			wantErr: true,
		},
		{
			name:    "missing category",
			payload: `{"effectiveness": 20, "creativity": 18, "effort": 9, "rationale": "ok"}`,
			wantErr: true,
		},
		{
			name:    "value out of range",
			payload: `{"effectiveness": 30, "creativity": 18, "scholarship": 22, "effort": 9, "rationale": "ok"}`,
			wantErr: true,
		},
		{
			name:    "non-integer value",
			payload: `{"effectiveness": "twenty", "creativity": 18, "scholarship": 22, "effort": 9, "rationale": "ok"}`,
			wantErr: true,
		},
		{
			name:    "missing rationale",
			payload: `{"effectiveness": 20, "creativity": 18, "scholarship": 22, "effort": 9}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := ParseScore(rubric, []byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err, "ParseScore() should reject the malformed payload.")
				return
			}
			require.NoError(t, err, "ParseScore() should accept the payload.")
			assert.Equal(t, 69, score.Total(), "Parsed total mismatch.")
		})
	}
}
