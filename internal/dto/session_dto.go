package dto

type SessionResponse struct {
	SessionId string             `json:"session_id"`
	Token     string             `json:"token,omitempty"`
	Render    *RenderInstruction `json:"render"`
}
