package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", s.OpenAIModel)
	assert.Equal(t, "gemini-2.5-flash", s.GoogleModel)
	assert.Equal(t, 3, s.NumWinners)
	assert.Equal(t, 500, s.MaxWordCount)
	assert.Equal(t, "data/essays", s.EssayDir)
	assert.Equal(t, "data/outputs", s.OutputDir)
	assert.False(t, s.AnthropicJudge)
	assert.InDelta(t, 0.9, s.DuplicateThreshold, 1e-9)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOTBENCH_OPENAI_MODEL", "gpt-4.1")
	t.Setenv("HOTBENCH_NUM_WINNERS", "5")
	t.Setenv("HOTBENCH_ANTHROPIC_JUDGE", "true")
	t.Setenv("HOTBENCH_ESSAY_DIR", "/tmp/essays")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1", s.OpenAIModel)
	assert.Equal(t, 5, s.NumWinners)
	assert.True(t, s.AnthropicJudge)
	assert.Equal(t, "/tmp/essays", s.EssayDir)
}

func TestLoad_InvalidSettings(t *testing.T) {
	t.Setenv("HOTBENCH_NUM_WINNERS", "0")

	_, err := Load()
	assert.Error(t, err, "A non-positive winner count must be rejected.")
}

func TestLoad_MissingKeysAreAllowed(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	s, err := Load()
	require.NoError(t, err, "Missing credentials degrade judges; they are not a config error.")
	assert.Empty(t, s.OpenAIAPIKey)
}

func TestRubric_Default(t *testing.T) {
	s := &Settings{}
	rubric, err := s.Rubric()
	require.NoError(t, err)
	assert.Equal(t, 85, rubric.MaxPerJudge())
}

func TestLoadRubricFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rubric.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - name: clarity
    max: 40
  - name: evidence
    max: 40
  - name: style
    max: 20
`), 0o644))

	rubric, err := LoadRubricFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3, rubric.Len())
	assert.Equal(t, 100, rubric.MaxPerJudge())

	got := rubric.Categories()
	assert.Equal(t, "clarity", got[0].Name, "YAML category order must be preserved.")
}

func TestLoadRubricFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not yaml", content: "{{{"},
		{name: "no categories", content: "categories: []"},
		{name: "zero max", content: "categories:\n  - name: clarity\n    max: 0"},
		{name: "duplicate name", content: "categories:\n  - name: clarity\n    max: 10\n  - name: clarity\n    max: 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadRubricFile(path)
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRubricFile(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}
