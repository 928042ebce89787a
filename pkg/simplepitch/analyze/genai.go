// Package analyze suggests a brand name and description for uploaded
// marketing material using Google's Gemini API.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

const prompt = "Analyze this pharmaceutical marketing material. Identify the Brand Name and a short 1-sentence description of the promotion. Return as JSON with keys 'brandName' and 'description'."

// generator is the part of *genai.Models the analyzer calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIAnalyzer implements simplepitch.Analyzer with a structured-output
// Gemini request.
type GenAIAnalyzer struct {
	models generator
	model  string
}

var _ simplepitch.Analyzer = (*GenAIAnalyzer)(nil)

// NewGenAIAnalyzer creates an analyzer using the Gemini API.
func NewGenAIAnalyzer(ctx context.Context, apiKey, model string) (*GenAIAnalyzer, error) {
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
	return newAnalyzer(client.Models, model), nil
}

func newAnalyzer(models generator, model string) *GenAIAnalyzer {
	if model == "" {
		model = DefaultModel
	}
	return &GenAIAnalyzer{models: models, model: model}
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"brandName":   {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
		},
		Required: []string{"brandName", "description"},
	}
}

// Analyze sends the content inline with the analysis prompt and decodes the
// JSON reply.
func (a *GenAIAnalyzer) Analyze(ctx context.Context, data []byte, mimeType string) (simplepitch.Analysis, error) {
	if len(data) == 0 {
		return simplepitch.Analysis{}, errors.New("no content to analyze")
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := a.models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return simplepitch.Analysis{}, fmt.Errorf("GenAI analysis failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return simplepitch.Analysis{}, errors.New("no response text from GenAI")
	}

	var out simplepitch.Analysis
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return simplepitch.Analysis{}, fmt.Errorf("decode GenAI analysis: %w", err)
	}
	return out, nil
}
