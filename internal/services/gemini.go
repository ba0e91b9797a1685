package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"youapi-backend/internal/models"
)

// GeminiService wraps the generation provider: buffered text, streamed text,
// and schema-constrained structured output.
type GeminiService struct {
	client       *genai.Client
	defaultModel string
}

// Model names requests may ask for. Anything else falls back to the default.
var allowedModels = map[string]bool{
	"gemini-3-flash-preview": true,
	"gemini-2.5-flash":       true,
	"gemini-2.5-pro":         true,
}

func NewGeminiService(apiKey, defaultModel string) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:       client,
		defaultModel: defaultModel,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) model(name string) *genai.GenerativeModel {
	if !allowedModels[name] {
		name = s.defaultModel
	}
	m := s.client.GenerativeModel(name)
	m.SetTemperature(0.3)
	m.SetTopP(0.95)
	return m
}

// StreamText generates from a single prompt, invoking fn once per non-empty
// text chunk. A non-nil error from fn aborts the stream.
func (s *GeminiService) StreamText(ctx context.Context, modelName, prompt string, fn func(chunk string) error) error {
	iter := s.model(modelName).GenerateContentStream(ctx, genai.Text(prompt))
	return drainStream(iter, fn)
}

// StreamChat generates a chat reply from a system instruction plus the
// caller's conversation history, streaming chunks through fn. The final
// message must be from the user; everything before it becomes history in the
// caller's order.
func (s *GeminiService) StreamChat(ctx context.Context, modelName, systemPrompt string, messages []models.ChatMessage, fn func(chunk string) error) error {
	if len(messages) == 0 {
		return fmt.Errorf("chat requires at least one message")
	}

	model := s.model(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	session := model.StartChat()
	for _, msg := range messages[:len(messages)-1] {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	last := messages[len(messages)-1]
	iter := session.SendMessageStream(ctx, genai.Text(last.Content))
	return drainStream(iter, fn)
}

// GenerateQuestions returns up to 3 suggested questions via structured output.
func (s *GeminiService) GenerateQuestions(ctx context.Context, modelName, prompt string) ([]string, error) {
	model := s.model(modelName)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.GenerationConfig.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"questions"},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	var out struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(extractText(resp))), &out); err != nil {
		return nil, fmt.Errorf("failed to parse suggested questions: %w", err)
	}

	if len(out.Questions) > 3 {
		out.Questions = out.Questions[:3]
	}
	return out.Questions, nil
}

// GenerateChapters returns model-inferred chapters via structured output.
// Start times are whatever the model produced; no local repair is applied.
func (s *GeminiService) GenerateChapters(ctx context.Context, modelName, prompt string) ([]models.Chapter, error) {
	model := s.model(modelName)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.GenerationConfig.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"chapters": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title": {Type: genai.TypeString},
						"start": {Type: genai.TypeNumber},
					},
					Required: []string{"title", "start"},
				},
			},
		},
		Required: []string{"chapters"},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	var out struct {
		Chapters []models.Chapter `json:"chapters"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(extractText(resp))), &out); err != nil {
		return nil, fmt.Errorf("failed to parse chapters: %w", err)
	}

	return out.Chapters, nil
}

// Helper functions

func drainStream(iter *genai.GenerateContentResponseIterator, fn func(chunk string) error) error {
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Gemini stream error: %w", err)
		}

		if chunk := extractText(resp); chunk != "" {
			if err := fn(chunk); err != nil {
				return err
			}
		}
	}
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func stripJSONFences(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}
