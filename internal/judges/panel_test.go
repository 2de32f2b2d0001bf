package judges

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotbench/hotbench/internal/domain"
	"github.com/hotbench/hotbench/internal/ports"
)

func TestNewPanel_StandardFour(t *testing.T) {
	calls := 0
	factory := func() (ports.LLMClient, error) {
		calls++
		return &stubClient{response: validResponse}, nil
	}

	panel := NewPanel(PanelOptions{
		Rubric:       domain.DefaultRubric(),
		Chat:         factory,
		Content:      factory,
		ChatModel:    "gpt-4o-mini",
		ContentModel: "gemini-2.5-flash",
		Logger:       testLogger(),
	})

	require.Len(t, panel, 4)
	assert.Equal(t, 4, calls, "Each judge must get its own client.")

	wantPersonas := []string{
		"The Academic",
		"The Creative Writer",
		"History Professor",
		"English Literature Professor",
	}
	for i, j := range panel {
		assert.Equal(t, i+1, j.ID(), "Judge IDs must be assigned from 1 in order.")
		assert.Equal(t, wantPersonas[i], j.Persona())
		assert.Equal(t, ModeLive, j.Mode())
	}
}

func TestNewPanel_OptionalFifthJudge(t *testing.T) {
	factory := func() (ports.LLMClient, error) {
		return &stubClient{response: validResponse}, nil
	}

	panel := NewPanel(PanelOptions{
		Rubric:        domain.DefaultRubric(),
		Chat:          factory,
		Content:       factory,
		Messages:      factory,
		ChatModel:     "gpt-4o-mini",
		ContentModel:  "gemini-2.5-flash",
		MessagesModel: "claude-3-5-sonnet-20241022",
		Logger:        testLogger(),
	})

	require.Len(t, panel, 5)
	assert.Equal(t, 5, panel[4].ID())
	assert.Equal(t, "The Pragmatist", panel[4].Persona())
}

func TestNewPanel_MissingCredentialDegrades(t *testing.T) {
	chat := func() (ports.LLMClient, error) {
		return &stubClient{response: validResponse}, nil
	}

	panel := NewPanel(PanelOptions{
		Rubric:       domain.DefaultRubric(),
		Chat:         chat,
		Content:      nil, // no credential for the content provider
		ChatModel:    "gpt-4o-mini",
		ContentModel: "gemini-2.5-flash",
		Logger:       testLogger(),
	})

	require.Len(t, panel, 4, "A degraded provider must not shrink the panel.")
	assert.Equal(t, ModeLive, panel[0].Mode())
	assert.Equal(t, ModeFallbackOnly, panel[1].Mode())
	assert.Equal(t, ModeLive, panel[2].Mode())
	assert.Equal(t, ModeFallbackOnly, panel[3].Mode())
}

func TestNewPanel_FactoryErrorDegrades(t *testing.T) {
	failing := func() (ports.LLMClient, error) {
		return nil, errors.New("bad base url")
	}

	panel := NewPanel(PanelOptions{
		Rubric:       domain.DefaultRubric(),
		Chat:         failing,
		Content:      failing,
		ChatModel:    "gpt-4o-mini",
		ContentModel: "gemini-2.5-flash",
		Logger:       testLogger(),
	})

	for _, j := range panel {
		assert.Equal(t, ModeFallbackOnly, j.Mode(),
			"Client construction failure must degrade the judge, not fail the run.")
	}
}
