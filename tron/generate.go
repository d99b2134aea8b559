package tron

import (
	"fmt"

	"github.com/okmeme/okmeme-wallet/internal/common"
	"github.com/okmeme/okmeme-wallet/internal/crypto"
)

// Wallet is a freshly generated Tron keypair and its address.
type Wallet struct {
	Keypair *crypto.Keypair
	Address string
	QR      string // base64 PNG of Address
}

// GenerateWallet generates a new keypair and derives its Tron address.
// Nothing is written to disk; the caller owns the key and must zero it.
func GenerateWallet(scheme crypto.Scheme) (*Wallet, error) {
	kp, err := crypto.GenerateKeypair(scheme)
	if err != nil {
		return nil, err
	}

	address, err := crypto.DeriveTronAddress(kp.PublicKey)
	if err != nil {
		kp.Zero()
		return nil, fmt.Errorf("failed to derive address: %w", err)
	}

	qr, err := common.AddressQRCode(address)
	if err != nil {
		kp.Zero()
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return &Wallet{
		Keypair: kp,
		Address: address,
		QR:      qr,
	}, nil
}
