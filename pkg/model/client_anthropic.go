package model

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient wraps an Anthropic SDK client bound to a model
type AnthropicClient struct {
	client  anthropic.Client
	modelID string
}

// NewAnthropicClient creates a new Anthropic client for the given model
func NewAnthropicClient(modelID, apiKey string) *AnthropicClient {
	return &AnthropicClient{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		modelID: modelID,
	}
}

// Provider returns the provider name
func (c *AnthropicClient) Provider() string {
	return "anthropic"
}

// ModelID returns the model identifier the client is bound to
func (c *AnthropicClient) ModelID() string {
	return c.modelID
}

// SDK returns the underlying Anthropic client
func (c *AnthropicClient) SDK() anthropic.Client {
	return c.client
}
