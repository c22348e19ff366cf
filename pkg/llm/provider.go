package llm

import (
	"context"
)

// FileRef points the model at an uploaded document by its remote storage URI.
type FileRef struct {
	URI      string
	MimeType string
}

// Option allows for optional parameters like Temperature or a model override.
type Option func(*Options)

type Options struct {
	Temperature float64
	Model       string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Gateway is the contract for a hosted generative-model backend. The system
// instruction (behavior variant) is fixed when the gateway is constructed and
// never changes mid-session. Files are handed to the model as remote
// references; texts follow in the given order.
type Gateway interface {
	Generate(ctx context.Context, files []FileRef, texts []string, options ...Option) (string, error)
}
