package judges

import (
	"log/slog"

	"github.com/hotbench/hotbench/internal/domain"
	"github.com/hotbench/hotbench/internal/ports"
)

// ClientFactory constructs one service client. The panel calls a factory
// once per judge so clients are never shared between judges. A nil
// factory means the provider's credential is absent and its judges run
// fallback-only.
type ClientFactory func() (ports.LLMClient, error)

// PanelOptions configures the judge panel.
type PanelOptions struct {
	// Rubric is the shared contest rubric.
	Rubric domain.Rubric

	// Chat builds clients for the chat-completion style judges.
	Chat ClientFactory
	// Content builds clients for the generative-content style judges.
	Content ClientFactory
	// Messages builds a client for the optional fifth judge; leave nil
	// to run the standard four-judge panel.
	Messages ClientFactory

	// Model labels per protocol, recorded on the judges and reports.
	ChatModel, ContentModel, MessagesModel string

	// Logger receives degradation warnings. Required.
	Logger *slog.Logger
}

// NewPanel instantiates the configured judges in declaration order. This
// is the single point of configuration for which judges participate in a
// run; judge IDs are assigned from 1 in order.
func NewPanel(opts PanelOptions) []Judge {
	panel := []Judge{
		NewChatJudge(1, "The Academic", buildClient(opts.Chat, opts.Logger), opts.ChatModel, opts.Rubric, opts.Logger),
		NewContentJudge(2, "The Creative Writer", buildClient(opts.Content, opts.Logger), opts.ContentModel, opts.Rubric, opts.Logger),
		NewChatJudge(3, "History Professor", buildClient(opts.Chat, opts.Logger), opts.ChatModel, opts.Rubric, opts.Logger),
		NewContentJudge(4, "English Literature Professor", buildClient(opts.Content, opts.Logger), opts.ContentModel, opts.Rubric, opts.Logger),
	}

	if opts.Messages != nil {
		panel = append(panel,
			NewMessagesJudge(5, "The Pragmatist", buildClient(opts.Messages, opts.Logger), opts.MessagesModel, opts.Rubric, opts.Logger))
	}

	return panel
}

// buildClient runs a factory, treating a construction failure the same as
// a missing credential: the judge degrades to fallback-only mode.
func buildClient(factory ClientFactory, logger *slog.Logger) ports.LLMClient {
	if factory == nil {
		return nil
	}
	client, err := factory()
	if err != nil {
		logger.Warn("service client construction failed, judge will use simulated scores", "error", err)
		return nil
	}
	return client
}
