// Package reply produces the dev server's assistant replies: scripted
// locale-aware text by default, or a streamed Ark model response when the
// ARK_* environment is configured.
package reply

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/nuanxinlab/heartchat-go/internal/config"
	"github.com/nuanxinlab/heartchat-go/internal/service/session"
)

const systemPrompt = "你是一位温和的心理支持助手，负责初步倾听用户的困扰。" +
	"请共情地回应用户，不做诊断，不开处方，必要时建议用户寻求专业心理咨询师的帮助。" +
	"回复保持简短、真诚，与用户使用相同的语言。"

// Service generates assistant replies for the dev server.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds a reply service. Without model credentials the service
// still works, falling back to scripted replies; the error path only fires
// when credentials are present but the model cannot be constructed.
func NewService(ctx context.Context, cfg config.ModelConfig) (*Service, error) {
	if !cfg.Enabled() {
		return &Service{}, nil
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// ModelBacked 指示回复是否由真实模型生成。
func (s *Service) ModelBacked() bool {
	return s != nil && s.chain != nil
}

// Stream runs the model chain and streams reply chunks.
func (s *Service) Stream(ctx context.Context, history []session.Entry, userMessage string) (*schema.StreamReader[*schema.Message], error) {
	if !s.ModelBacked() {
		return nil, fmt.Errorf("model-backed replies are not configured")
	}

	stream, err := s.chain.Stream(ctx, s.buildChainInput(history, userMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to stream chat chain output: %w", err)
	}
	return stream, nil
}

// Generate runs the model chain to a complete reply.
func (s *Service) Generate(ctx context.Context, history []session.Entry, userMessage string) (*schema.Message, error) {
	if !s.ModelBacked() {
		return nil, fmt.Errorf("model-backed replies are not configured")
	}

	response, err := s.chain.Invoke(ctx, s.buildChainInput(history, userMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to run chat chain: %w", err)
	}
	return response, nil
}

func (s *Service) buildChainInput(history []session.Entry, userMessage string) map[string]any {
	return map[string]any{
		"system":  systemPrompt,
		"history": buildHistoryMessages(history),
		"query":   userMessage,
	}
}

func buildHistoryMessages(entries []session.Entry) []*schema.Message {
	const historyLimit = 10

	if len(entries) == 0 {
		return nil
	}

	startIdx := 0
	if len(entries) > historyLimit {
		startIdx = len(entries) - historyLimit
	}

	history := make([]*schema.Message, 0, len(entries)-startIdx)
	for _, entry := range entries[startIdx:] {
		switch entry.Role {
		case "user":
			history = append(history, schema.UserMessage(entry.Content))
		case "assistant":
			history = append(history, schema.AssistantMessage(entry.Content, nil))
		}
	}

	return history
}
