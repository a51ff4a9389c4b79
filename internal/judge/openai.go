package judge

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL targets the Poe OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.poe.com/v1"

const systemPrompt = "You are an evaluator. Compare the model's response to the rubric and decide correctness.\n" +
	"Return a strict JSON object: {\"score\": 0 or 1, \"explanation\": \"...\"}.\n" +
	"Score 1 if the response satisfies the rubric; otherwise 0. Keep the explanation concise."

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIClient judges against any OpenAI-compatible chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("judge API key is required: %w", ErrAuth)
	}
	if cfg.Model == "" {
		return nil, errors.New("judge model is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	} else {
		clientCfg.BaseURL = DefaultBaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

func (c *OpenAIClient) Judge(ctx context.Context, req Request) (Verdict, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(req)},
		},
	})
	if err != nil {
		return Verdict{}, classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return Verdict{}, Transient(errors.New("judge returned no choices"))
	}

	return ParseVerdict(resp.Choices[0].Message.Content)
}

func buildUserPrompt(req Request) string {
	return fmt.Sprintf(
		"Category: %s\nPrompt: %s\n\nRubric/Reference (ground truth/requirements): %s\n\nModel response:\n%s\n\nDecide 0/1 and explain briefly.",
		req.Category, req.Prompt, req.Reference, req.Generation,
	)
}

func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests,
			apiErr.HTTPStatusCode == http.StatusRequestTimeout,
			apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			return Transient(err)
		default:
			return fmt.Errorf("judge call failed: %w", err)
		}
	}
	// Anything that never reached the API (DNS, connection reset, timeout)
	// is worth another attempt.
	return Transient(err)
}
