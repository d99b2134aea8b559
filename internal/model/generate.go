package model

// GenerateResponse represents response for POST /tron/wallet
type GenerateResponse struct {
	SessionID string   `json:"sessionId"`
	Address   string   `json:"address"`
	PublicKey string   `json:"publicKey"`
	Scheme    string   `json:"scheme"`
	QR        string   `json:"QR"`
	Balance   *Balance `json:"balance,omitempty"`
}

// ConnectRequest represents request for POST /solana/connect
type ConnectRequest struct {
	Address string `json:"address"`
}

// ConnectResponse represents response for POST /solana/connect
type ConnectResponse struct {
	SessionID string   `json:"sessionId"`
	Address   string   `json:"address"`
	QR        string   `json:"QR"`
	Balance   *Balance `json:"balance,omitempty"`
}

// EndSessionRequest represents request for POST /session/end
type EndSessionRequest struct {
	SessionID string `json:"sessionId"`
}
