package dto

import "time"

type CreateConversationRequest struct {
	Function string `json:"function" validate:"required,oneof=editor qa"`
}

type CreateConversationResponse struct {
	Function string   `json:"function"`
	Intro    *TurnDTO `json:"intro"`
}

type SubmitChatRequest struct {
	Function    string `json:"function" validate:"required,oneof=editor qa"`
	Prompt      string `json:"prompt"`
	ModelOption string `json:"model_option"`
}

type SubmitChatResponse struct {
	Function string   `json:"function"`
	Sent     *TurnDTO `json:"sent,omitempty"`
	Reply    *TurnDTO `json:"reply,omitempty"`
}

type ClearConversationRequest struct {
	Function string `json:"function" validate:"required,oneof=editor qa"`
}

type TurnDTO struct {
	Role           string    `json:"role"`
	RawContent     string    `json:"raw_content"`
	DisplayContent string    `json:"display_content"`
	CreatedAt      time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	Function string     `json:"function"`
	Turns    []*TurnDTO `json:"turns"`
}
