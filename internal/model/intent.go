package model

import "github.com/shopspring/decimal"

// TransferIntent is a validated, unsigned transfer. It is never broadcast.
type TransferIntent struct {
	Recipient     string          `json:"recipient"`
	AmountDisplay decimal.Decimal `json:"amount"`
	AmountRaw     uint64          `json:"amountRaw"`
	Unit          string          `json:"unit,omitempty"`
}

// SwapIntent is a validated swap request without routing or pricing.
type SwapIntent struct {
	FromToken     string          `json:"fromToken"`
	ToToken       string          `json:"toToken"`
	AmountDisplay decimal.Decimal `json:"amount"`
}

// TransferRequest represents request for POST /tron/transfer
type TransferRequest struct {
	SessionID string `json:"sessionId"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// SwapRequest represents request for POST /solana/swap
type SwapRequest struct {
	SessionID string `json:"sessionId"`
	FromToken string `json:"fromToken"`
	ToToken   string `json:"toToken"`
	Amount    string `json:"amount"`
}
