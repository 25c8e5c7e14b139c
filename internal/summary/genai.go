package summary

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const systemPrompt = `You summarize progress updates for a construction company's admin panel.
Write at most five short bullet points in plain English.
Mention completed work, blockers, upcoming work and anything the client must decide.
Do not invent facts that are not in the update.`

const userPromptTemplate = "Summarize this project update:\n\n%s"

// GenAISummarizer produces summaries with a Gemini model.
type GenAISummarizer struct {
	client *genai.Client
	model  string
}

func NewGenAISummarizer(ctx context.Context, apiKey, model string) (*GenAISummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAISummarizer{client: client, model: model}, nil
}

func (s *GenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx,
		s.model,
		genai.Text(BuildPrompt(text)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.2),
			MaxOutputTokens:   512,
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return "", fmt.Errorf("GenAI returned an empty summary")
	}
	return summary, nil
}

// Model returns the model name, used to key cached results.
func (s *GenAISummarizer) Model() string {
	return s.model
}

func BuildPrompt(text string) string {
	return fmt.Sprintf(userPromptTemplate, strings.TrimSpace(text))
}
