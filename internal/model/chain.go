package model

import "github.com/okmeme/okmeme-wallet/internal/common"

// Chain identifies one of the supported networks.
type Chain string

const (
	ChainTron   Chain = "tron"
	ChainSolana Chain = "solana"
)

// ScaleFactor returns the number of raw units in one display unit.
func (c Chain) ScaleFactor() uint64 {
	switch c {
	case ChainTron:
		return common.SUNPerTRX
	case ChainSolana:
		return common.LamportsPerSOL
	default:
		return 0
	}
}

// Unit returns the display ticker of the chain's native coin.
func (c Chain) Unit() string {
	switch c {
	case ChainTron:
		return "TRX"
	case ChainSolana:
		return "SOL"
	default:
		return ""
	}
}
