package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRubric(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
		wantErr    error
	}{
		{
			name: "valid rubric",
			categories: []Category{
				{Name: "effectiveness", Max: 25},
				{Name: "effort", Max: 10},
			},
		},
		{
			name:       "no categories",
			categories: nil,
			wantErr:    ErrInvalidRubric,
		},
		{
			name:       "empty category name",
			categories: []Category{{Name: "  ", Max: 10}},
			wantErr:    ErrInvalidRubric,
		},
		{
			name:       "zero max",
			categories: []Category{{Name: "effort", Max: 0}},
			wantErr:    ErrInvalidRubric,
		},
		{
			name:       "negative max",
			categories: []Category{{Name: "effort", Max: -5}},
			wantErr:    ErrInvalidRubric,
		},
		{
			name: "duplicate category",
			categories: []Category{
				{Name: "effort", Max: 10},
				{Name: "effort", Max: 25},
			},
			wantErr: ErrInvalidRubric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rubric, err := NewRubric(tt.categories...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr, "NewRubric() should reject invalid categories.")
				return
			}
			require.NoError(t, err, "NewRubric() should accept valid categories.")
			assert.Equal(t, len(tt.categories), rubric.Len(), "Rubric should keep every category.")
		})
	}
}

func TestRubric_Order(t *testing.T) {
	rubric := MustNewRubric(
		Category{Name: "b", Max: 5},
		Category{Name: "a", Max: 5},
		Category{Name: "c", Max: 5},
	)

	got := rubric.Categories()
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Name, "Categories() must preserve declaration order.")
	assert.Equal(t, "a", got[1].Name, "Categories() must preserve declaration order.")
	assert.Equal(t, "c", got[2].Name, "Categories() must preserve declaration order.")
}

func TestRubric_CategoriesReturnsCopy(t *testing.T) {
	rubric := DefaultRubric()

	got := rubric.Categories()
	got[0].Max = 999

	fresh := rubric.Categories()
	assert.Equal(t, 25, fresh[0].Max, "Mutating the returned slice must not affect the rubric.")
}

func TestDefaultRubric(t *testing.T) {
	rubric := DefaultRubric()

	assert.Equal(t, 4, rubric.Len(), "Default rubric should have four categories.")
	assert.Equal(t, 85, rubric.MaxPerJudge(), "Default per-judge maximum should be 85.")

	max, ok := rubric.MaxFor("effort")
	require.True(t, ok, "Default rubric should contain effort.")
	assert.Equal(t, 10, max)

	_, ok = rubric.MaxFor("penmanship")
	assert.False(t, ok, "MaxFor() should report unknown categories.")
}
