// Package config loads run configuration from the environment and
// optional files. Secrets (provider API keys) are read once at startup;
// a missing key is not an error here; it degrades the affected judges
// to fallback-only mode at construction time.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hotbench/hotbench/internal/domain"
)

// Package-level validator for configuration structs.
var validate = validator.New()

// Settings is the central run configuration, populated from OS
// environment variables.
type Settings struct {
	// Provider credentials. Empty values are allowed; judges bound to a
	// provider without a credential run in fallback-only mode.
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	GoogleAPIKey    string `env:"GOOGLE_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	// Model selection per provider.
	OpenAIModel    string `env:"HOTBENCH_OPENAI_MODEL" envDefault:"gpt-4o-mini" validate:"required"`
	GoogleModel    string `env:"HOTBENCH_GOOGLE_MODEL" envDefault:"gemini-2.5-flash" validate:"required"`
	AnthropicModel string `env:"HOTBENCH_ANTHROPIC_MODEL" envDefault:"claude-3-5-sonnet-20241022" validate:"required"`
	MetaModel      string `env:"HOTBENCH_META_MODEL" envDefault:"gpt-4o-mini" validate:"required"`

	// Contest parameters.
	NumWinners   int `env:"HOTBENCH_NUM_WINNERS" envDefault:"3" validate:"min=1"`
	MaxWordCount int `env:"HOTBENCH_MAX_WORD_COUNT" envDefault:"500" validate:"min=1"`

	// AnthropicJudge adds a fifth, Anthropic-backed judge to the panel.
	AnthropicJudge bool `env:"HOTBENCH_ANTHROPIC_JUDGE" envDefault:"false"`

	// Directories and optional rubric override.
	EssayDir   string `env:"HOTBENCH_ESSAY_DIR" envDefault:"data/essays" validate:"required"`
	OutputDir  string `env:"HOTBENCH_OUTPUT_DIR" envDefault:"data/outputs" validate:"required"`
	RubricFile string `env:"HOTBENCH_RUBRIC_FILE"`

	// DuplicateThreshold is the normalized similarity above which two
	// submissions are flagged as near-duplicates during discovery.
	DuplicateThreshold float64 `env:"HOTBENCH_DUPLICATE_THRESHOLD" envDefault:"0.9" validate:"min=0,max=1"`

	// RequestsPerSecond paces outbound LLM calls per provider client.
	RequestsPerSecond float64 `env:"HOTBENCH_REQUESTS_PER_SECOND" envDefault:"2" validate:"gt=0"`
}

// Load reads Settings from the environment and validates them.
func Load() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// Rubric returns the contest rubric: the standard default, or the one
// defined in RubricFile if set.
func (s *Settings) Rubric() (domain.Rubric, error) {
	if s.RubricFile == "" {
		return domain.DefaultRubric(), nil
	}
	return LoadRubricFile(s.RubricFile)
}

// rubricFile is the YAML shape of a rubric override. Categories keep
// their declaration order.
type rubricFile struct {
	Categories []struct {
		Name string `yaml:"name"`
		Max  int    `yaml:"max"`
	} `yaml:"categories"`
}

// LoadRubricFile reads a rubric definition from a YAML file. The rubric
// is validated the same way as the built-in default.
func LoadRubricFile(path string) (domain.Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Rubric{}, fmt.Errorf("read rubric file: %w", err)
	}

	var rf rubricFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return domain.Rubric{}, fmt.Errorf("decode rubric file %s: %w", path, err)
	}

	categories := make([]domain.Category, 0, len(rf.Categories))
	for _, c := range rf.Categories {
		categories = append(categories, domain.Category{Name: c.Name, Max: c.Max})
	}

	rubric, err := domain.NewRubric(categories...)
	if err != nil {
		return domain.Rubric{}, fmt.Errorf("rubric file %s: %w", path, err)
	}
	return rubric, nil
}
