package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Score is one judge's validated rubric breakdown for one essay. A Score
// is immutable once constructed: category values live behind accessor
// methods and the total is fixed at construction time.
type Score struct {
	values    map[string]int
	rationale string
	total     int
}

// NewScore validates the given per-category values against the rubric and
// returns an immutable Score. Construction fails if any rubric category is
// missing, any value is outside [1, max], a value names a category the
// rubric does not define, or the rationale is empty.
func NewScore(rubric Rubric, values map[string]int, rationale string) (Score, error) {
	if strings.TrimSpace(rationale) == "" {
		return Score{}, ErrEmptyRationale
	}

	for name := range values {
		if _, ok := rubric.MaxFor(name); !ok {
			return Score{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
	}

	copied := make(map[string]int, rubric.Len())
	total := 0
	for _, c := range rubric.Categories() {
		v, ok := values[c.Name]
		if !ok {
			return Score{}, fmt.Errorf("%w: %q", ErrMissingCategory, c.Name)
		}
		if v < 1 || v > c.Max {
			return Score{}, fmt.Errorf("%w: %q=%d, want [1, %d]", ErrScoreOutOfRange, c.Name, v, c.Max)
		}
		copied[c.Name] = v
		total += v
	}

	return Score{values: copied, rationale: rationale, total: total}, nil
}

// Value returns the score awarded for the named category, or 0 if the
// category is not part of this score's rubric.
func (s Score) Value(category string) int { return s.values[category] }

// Rationale returns the judge's explanation for the awarded scores.
func (s Score) Rationale() string { return s.rationale }

// Total returns the sum of all category values.
func (s Score) Total() int { return s.total }

// scoreWire mirrors the JSON object judges are instructed to return:
// one integer field per rubric category plus a rationale. Categories are
// rubric-driven, so the payload is decoded into a loose map first.
type scoreWire map[string]json.RawMessage

// ParseScore decodes a judge's raw JSON response into a validated Score.
// Unknown fields in the payload are ignored; missing or out-of-range
// category values invalidate the response. The payload may be exactly the
// object the prompt demands, nothing more is extracted from it.
func ParseScore(rubric Rubric, payload []byte) (Score, error) {
	var wire scoreWire
	if err := json.Unmarshal(payload, &wire); err != nil {
		return Score{}, fmt.Errorf("decode score payload: %w", err)
	}

	values := make(map[string]int, rubric.Len())
	for _, c := range rubric.Categories() {
		raw, ok := wire[c.Name]
		if !ok {
			return Score{}, fmt.Errorf("%w: %q", ErrMissingCategory, c.Name)
		}
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return Score{}, fmt.Errorf("category %q is not an integer: %w", c.Name, err)
		}
		values[c.Name] = v
	}

	var rationale string
	if raw, ok := wire["rationale"]; ok {
		if err := json.Unmarshal(raw, &rationale); err != nil {
			return Score{}, fmt.Errorf("rationale is not a string: %w", err)
		}
	}

	return NewScore(rubric, values, rationale)
}
