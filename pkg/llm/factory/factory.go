package factory

import (
	"context"
	"fmt"
	"strings"

	"cim-memo-be/internal/config"
	"cim-memo-be/internal/constant"
	"cim-memo-be/pkg/llm"
	"cim-memo-be/pkg/llm/gemini"
	"cim-memo-be/pkg/llm/securegpt"
)

// NewGateway builds a model gateway for one model option and one chatbot
// function. The function tag binds the system instruction once; it must not
// change for the lifetime of the gateway.
func NewGateway(ctx context.Context, cfg *config.Config, modelOption, chatbotFunction string) (llm.Gateway, error) {
	instruction, err := systemInstructionFor(chatbotFunction)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(modelOption, "gemini"):
		return gemini.NewProvider(ctx, cfg.Google.ProjectID, cfg.Google.Location, modelOption, instruction)
	case modelOption == "secure-gpt":
		return securegpt.NewProvider(cfg.SecureGPT.TokenURL, cfg.SecureGPT.ClientID, cfg.SecureGPT.ClientSecret), nil
	default:
		return nil, fmt.Errorf("unsupported model option: %s", modelOption)
	}
}

func systemInstructionFor(chatbotFunction string) (string, error) {
	switch chatbotFunction {
	case constant.ChatbotFunctionNone, "":
		return "", nil
	case constant.ChatbotFunctionEditor:
		return constant.EditorSystemInstructions, nil
	case constant.ChatbotFunctionQA:
		return constant.QASystemInstructions, nil
	default:
		return "", fmt.Errorf("unsupported chatbot function: %s", chatbotFunction)
	}
}
