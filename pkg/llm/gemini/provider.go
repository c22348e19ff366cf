package gemini

import (
	"context"
	"fmt"
	"strings"

	"cim-memo-be/pkg/llm"

	"google.golang.org/genai"
)

// Provider calls Gemini through the Vertex AI backend of the official SDK.
type Provider struct {
	client            *genai.Client
	model             string
	systemInstruction string
}

// NewProvider creates a Gemini gateway bound to one model and one system
// instruction. Pass an empty instruction for the plain (summary/formatting)
// variant.
func NewProvider(ctx context.Context, projectID, location, model, systemInstruction string) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  projectID,
		Location: location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Provider{
		client:            client,
		model:             model,
		systemInstruction: systemInstruction,
	}, nil
}

func (p *Provider) Generate(ctx context.Context, files []llm.FileRef, texts []string, options ...llm.Option) (string, error) {
	opts := &llm.Options{Temperature: 0.7}
	for _, opt := range options {
		opt(opts)
	}

	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	parts := make([]*genai.Part, 0, len(files)+len(texts))
	for _, f := range files {
		parts = append(parts, genai.NewPartFromURI(f.URI, f.MimeType))
	}
	for _, t := range texts {
		parts = append(parts, genai.NewPartFromText(t))
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(opts.Temperature)),
	}
	if p.systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: p.systemInstruction}},
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
