package models

// ChatMessage is a single entry of a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the upstream chat-completion request body. Model is optional;
// the gateway fills in the configured default when empty.
type ChatRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []ChatMessage `json:"messages"`
}

// ChatChoice is one completion candidate in the provider response.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

// ChatResponse is the provider-shaped completion payload. Only
// choices[0].message.content is consumed by the orchestrator; the full payload
// is passed through unchanged on the proxy route.
type ChatResponse struct {
	ID      string       `json:"id,omitempty"`
	Model   string       `json:"model,omitempty"`
	Choices []ChatChoice `json:"choices"`
}
