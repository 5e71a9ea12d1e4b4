package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"voyago/config"
	"voyago/models"
)

// Gateway is the stateless transport to the chat-completion provider: one
// round trip, no retries, no caching.
type Gateway interface {
	Send(ctx context.Context, messages []models.ChatMessage) (string, error)
	SendRaw(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// HTTPGateway talks to an OpenAI-compatible /chat/completions endpoint.
type HTTPGateway struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

// NewHTTPGateway builds a gateway from the loaded configuration.
func NewHTTPGateway() *HTTPGateway {
	return &HTTPGateway{
		BaseURL: config.AppConfig.OpenAIBaseURL,
		APIKey:  config.AppConfig.OpenAIAPIKey,
		Model:   config.AppConfig.OpenAIModel,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

// SendRaw performs the upstream round trip and returns the provider-shaped
// payload. Non-2xx statuses and transport failures surface as *GatewayError.
func (g *HTTPGateway) SendRaw(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if req.Model == "" {
		req.Model = g.Model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, &GatewayError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayError{Status: resp.StatusCode, Body: truncateSnippet(string(respBody))}
	}

	var chatResp models.ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, &GatewayError{Status: resp.StatusCode, Body: truncateSnippet(string(respBody)), Err: err}
	}
	return &chatResp, nil
}

// Send returns the reply text of choices[0] for the given message list.
func (g *HTTPGateway) Send(ctx context.Context, messages []models.ChatMessage) (string, error) {
	resp, err := g.SendRaw(ctx, models.ChatRequest{Messages: messages})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &GatewayError{Status: http.StatusOK, Body: "provider returned no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}
