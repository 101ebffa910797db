package insight

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const systemInstruction = "You are Nashwa, a proactive and brilliant business consultant. " +
	"Give short, specific, actionable advice grounded only in the figures you are shown."

// OpenAIAdvisor implements Advisor on the OpenAI chat completion API.
type OpenAIAdvisor struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIAdvisor creates an advisor using the given API key. Model
// defaults to gpt-4o-mini when empty.
func NewOpenAIAdvisor(apiKey, model string, logger *zap.Logger) *OpenAIAdvisor {
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &OpenAIAdvisor{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

func (a *OpenAIAdvisor) Insight(ctx context.Context, prompt string) (string, error) {
	return a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	})
}

func (a *OpenAIAdvisor) Chat(ctx context.Context, messages []Message) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleSystem, Content: systemInstruction,
	})
	for _, m := range messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return a.complete(ctx, msgs)
}

func (a *OpenAIAdvisor) complete(ctx context.Context, msgs []openai.ChatCompletionMessage) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: msgs,
	})
	if err != nil {
		a.logger.Error("ai completion failed", zap.Error(err))
		return "", fmt.Errorf("ai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "No insights available.", nil
	}
	return resp.Choices[0].Message.Content, nil
}
