package domain

import "errors"

// Common domain errors returned while constructing rubrics and scores.
var (
	// ErrInvalidRubric indicates a rubric definition that cannot be used:
	// no categories, an empty or duplicate name, or a non-positive maximum.
	ErrInvalidRubric = errors.New("invalid rubric")

	// ErrScoreOutOfRange indicates a category score outside [1, max].
	ErrScoreOutOfRange = errors.New("score out of range")

	// ErrMissingCategory indicates a score that omits a rubric category.
	ErrMissingCategory = errors.New("missing rubric category")

	// ErrUnknownCategory indicates a score for a category the rubric
	// does not define.
	ErrUnknownCategory = errors.New("unknown rubric category")

	// ErrEmptyRationale indicates a score without an explanation.
	ErrEmptyRationale = errors.New("rationale cannot be empty")
)
