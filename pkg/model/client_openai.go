package model

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient wraps an OpenAI SDK client bound to a model
type OpenAIClient struct {
	client  openai.Client
	modelID string
}

// NewOpenAIClient creates a new OpenAI client for the given model
func NewOpenAIClient(modelID, apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		modelID: modelID,
	}
}

// Provider returns the provider name
func (c *OpenAIClient) Provider() string {
	return "openai"
}

// ModelID returns the model identifier the client is bound to
func (c *OpenAIClient) ModelID() string {
	return c.modelID
}

// SDK returns the underlying OpenAI client
func (c *OpenAIClient) SDK() openai.Client {
	return c.client
}
