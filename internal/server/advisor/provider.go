package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// All supported providers speak the OpenAI chat-completion protocol; Groq and
// Google expose compatibility endpoints, so a single client covers them.
const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	googleBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	openAIModel = "gpt-3.5-turbo"
	googleModel = "gemini-1.5-flash"

	// The reply is move notation only, so the completion is kept short and
	// deterministic.
	maxCompletionTokens = 16
)

var groqModels = []string{
	"llama-3.1-8b-instant",
	"llama-3.3-70b-versatile",
	"meta-llama/llama-4-scout-17b-16e-instruct",
	"meta-llama/llama-4-maverick-17b-128e-instruct",
}

type openAICompleter struct {
	client openai.Client
}

func newOpenAICompleter(apiKey, baseURL string, timeout time.Duration) *openAICompleter {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &openAICompleter{client: openai.NewClient(opts...)}
}

func (c *openAICompleter) complete(ctx context.Context, model, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(0),
		MaxTokens:   openai.Int(maxCompletionTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
