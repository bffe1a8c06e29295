package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const defaultOpenAIModel = openai.ChatModelGPT4oMini

// OpenAIClient implements Client on the official OpenAI SDK. It exists as an
// alternative provider for deployments without Gemini access
type OpenAIClient struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIClient creates an OpenAI-backed client. An empty model selects the
// default chat model
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	chatModel := openai.ChatModel(model)
	if model == "" {
		chatModel = defaultOpenAIModel
	}

	return &OpenAIClient{
		client: client,
		model:  chatModel,
	}
}

// Generate sends the prompt as a single user message and returns the first
// choice's content
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no content in openai completion: %w", ErrMalformedResponse)
	}

	return completion.Choices[0].Message.Content, nil
}
