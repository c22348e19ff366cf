package securegpt

import (
	"context"

	"cim-memo-be/internal/constant"
	"cim-memo-be/internal/pkg/apperror"
	"cim-memo-be/pkg/llm"

	"golang.org/x/oauth2/clientcredentials"
)

// Provider covers the Secure GPT model option. The upstream answer API is not
// integrated yet: the token handshake is performed so credential problems
// surface early, then a fixed placeholder response is returned.
type Provider struct {
	oauth *clientcredentials.Config
}

func NewProvider(tokenURL, clientID, clientSecret string) *Provider {
	return &Provider{
		oauth: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
	}
}

func (p *Provider) Generate(ctx context.Context, files []llm.FileRef, texts []string, options ...llm.Option) (string, error) {
	if _, err := p.oauth.Token(ctx); err != nil {
		return "", apperror.UpstreamAuth("error fetching access token", err)
	}
	return constant.SecureGPTPlaceholderResponse, nil
}
