package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// systemInstruction frames the assistant as a software mentor; replies are
// injected verbatim into the room.
const systemInstruction = "You are an expert software developer and an " +
	"effective, helpful mentor. You write optimal, industry grade code, " +
	"follow best practices, use proper naming conventions and add clear, " +
	"readable comments. Provide code examples wherever possible, handle " +
	"edge cases and errors, and keep your answers scalable, reliable, " +
	"safe, efficient and maintainable."

const defaultModel = "gemini-2.5-flash"

// GeminiResponder implements Responder over the Google GenAI API.
type GeminiResponder struct {
	client *genai.Client
	model  string
}

// NewGeminiResponder creates a Gemini-backed responder.
func NewGeminiResponder(ctx context.Context, apiKey, model string) (*GeminiResponder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiResponder{client: client, model: model}, nil
}

// Generate runs a single non-streaming completion for the prompt.
func (r *GeminiResponder) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := r.client.Models.GenerateContent(ctx,
		r.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no text returned")
	}
	return text, nil
}
