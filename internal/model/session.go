package model

// SessionResponse represents response for GET /session
type SessionResponse struct {
	SessionID string   `json:"sessionId"`
	Chain     Chain    `json:"chain"`
	State     string   `json:"state"`
	Address   string   `json:"address,omitempty"`
	Balance   *Balance `json:"balance,omitempty"`
}

// EndSessionResponse represents response for POST /session/end
type EndSessionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
