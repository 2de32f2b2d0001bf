// Package domain contains pure, dependency-free models for the essay
// contest: the scoring rubric, validated judge scores, essays with their
// accumulated evaluations, and the consolidated ranking.
package domain

import (
	"fmt"
	"strings"
)

// Category is a single scoring dimension of the rubric with its maximum
// achievable point value.
type Category struct {
	// Name identifies the category (e.g. "effectiveness").
	Name string
	// Max is the highest score a judge may award for this category.
	// Valid scores are in [1, Max].
	Max int
}

// Rubric is an ordered, immutable set of scoring categories. The same
// Rubric instance is injected into every component that needs it (prompt
// builder, score validation, consolidation, reporting) so the maximum
// per-judge score is never recomputed inconsistently.
type Rubric struct {
	categories []Category
}

// NewRubric builds a Rubric from the given categories, preserving their
// order. It returns an error if no categories are provided, a category
// name is empty or duplicated, or a maximum is not positive.
func NewRubric(categories ...Category) (Rubric, error) {
	if len(categories) == 0 {
		return Rubric{}, fmt.Errorf("%w: rubric requires at least one category", ErrInvalidRubric)
	}

	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			return Rubric{}, fmt.Errorf("%w: category name cannot be empty", ErrInvalidRubric)
		}
		if c.Max <= 0 {
			return Rubric{}, fmt.Errorf("%w: category %q max must be positive, got %d",
				ErrInvalidRubric, c.Name, c.Max)
		}
		if _, dup := seen[c.Name]; dup {
			return Rubric{}, fmt.Errorf("%w: duplicate category %q", ErrInvalidRubric, c.Name)
		}
		seen[c.Name] = struct{}{}
	}

	copied := make([]Category, len(categories))
	copy(copied, categories)
	return Rubric{categories: copied}, nil
}

// MustNewRubric is like NewRubric but panics on invalid input.
// It is intended for package-level defaults and tests.
func MustNewRubric(categories ...Category) Rubric {
	r, err := NewRubric(categories...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRubric returns the contest's standard rubric.
func DefaultRubric() Rubric {
	return MustNewRubric(
		Category{Name: "effectiveness", Max: 25},
		Category{Name: "creativity", Max: 25},
		Category{Name: "scholarship", Max: 25},
		Category{Name: "effort", Max: 10},
	)
}

// Categories returns the rubric's categories in declaration order.
// The returned slice is a copy and safe to modify.
func (r Rubric) Categories() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Len returns the number of categories in the rubric.
func (r Rubric) Len() int { return len(r.categories) }

// MaxFor reports the maximum point value for the named category and
// whether the category exists in the rubric.
func (r Rubric) MaxFor(name string) (int, bool) {
	for _, c := range r.categories {
		if c.Name == name {
			return c.Max, true
		}
	}
	return 0, false
}

// MaxPerJudge returns the maximum total score a single judge can award,
// the sum of all category maxima.
func (r Rubric) MaxPerJudge() int {
	sum := 0
	for _, c := range r.categories {
		sum += c.Max
	}
	return sum
}
