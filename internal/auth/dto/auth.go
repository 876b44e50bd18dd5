package dto

type LoginResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
}
