package dto

// ChatMessage mirrors the OpenAI-compatible message shape so the payload
// can be forwarded upstream untouched.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

func (r ChatRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ChatRuleResponse struct {
	Reply   string `json:"reply"`
	Matched bool   `json:"matched"`
}
