package service

import (
	"context"
	"time"

	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/pkg/events"
	"cim-memo-be/pkg/llm"
	"cim-memo-be/pkg/store"
)

// GatewayFactory builds a model gateway for one model option and chatbot
// function. The bootstrap wires it to the provider factory; tests substitute
// fakes.
type GatewayFactory func(ctx context.Context, modelOption, chatbotFunction string) (llm.Gateway, error)

// generate runs one timed gateway call and emits the audit event for it. The
// returned error is already classified.
func generate(
	ctx context.Context,
	publisher IPublisherService,
	gateway llm.Gateway,
	workspaceID, stage, function, modelOption string,
	temperature float64,
	files []llm.FileRef,
	texts []string,
) (string, error) {
	start := time.Now()
	text, err := gateway.Generate(ctx, files, texts, llm.WithTemperature(temperature))
	durationMs := time.Since(start).Milliseconds()

	payload := map[string]interface{}{
		"workspace_id": workspaceID,
		"stage":        stage,
		"function":     function,
		"model_option": modelOption,
		"temperature":  temperature,
		"duration_ms":  durationMs,
		"success":      err == nil,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	if publisher != nil {
		// Event delivery failures never fail the generation itself.
		_ = publisher.Publish(ctx, events.New(events.TypeModelCall, payload))
	}

	if err != nil {
		if apperror.KindOf(err) != "" {
			return "", err
		}
		return "", apperror.Generation("model call failed", err)
	}
	return text, nil
}

func fileRefsFor(records []*store.FileRecord) []llm.FileRef {
	refs := make([]llm.FileRef, 0, len(records))
	for _, record := range records {
		refs = append(refs, llm.FileRef{URI: record.StorageURI, MimeType: record.MimeType})
	}
	return refs
}

// formatMarkdown runs the formatting pass over a raw response. The formatting
// gateway carries no system instruction; the prompt does the work.
func formatMarkdown(
	ctx context.Context,
	publisher IPublisherService,
	factory GatewayFactory,
	workspaceID, modelOption, raw string,
) (string, error) {
	gateway, err := factory(ctx, modelOption, constant.ChatbotFunctionNone)
	if err != nil {
		return "", err
	}
	texts := []string{constant.MarkdownFormatPrompt, raw}
	return generate(ctx, publisher, gateway,
		workspaceID, "formatting", constant.ChatbotFunctionNone, modelOption,
		constant.FormattingTemperature, nil, texts)
}
