package port

import "context"

// AIProvider abstracts the generative-text backend.
// Implementations can target DeepSeek, OpenAI, or any compatible API.
type AIProvider interface {
	// ModelName returns the identifier of the model being used.
	ModelName() string

	// Chat sends a system and user prompt and returns the completion text.
	Chat(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
