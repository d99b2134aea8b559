package crypto

import (
	"github.com/okmeme/okmeme-wallet/internal/errs"

	"github.com/fbsobreira/gotron-sdk/pkg/address"
	"golang.org/x/crypto/sha3"
)

// TronAddressPrefix is the mainnet version byte of a Tron address.
const TronAddressPrefix byte = address.TronBytePrefix

// DeriveTronAddress derives a Tron address from a raw public key:
// Base58Check(0x41 || Keccak256(pubKey)[12:]).
func DeriveTronAddress(pubKey []byte) (string, error) {
	if len(pubKey) == 0 {
		return "", errs.Validation("public key is empty")
	}

	h := sha3.NewLegacyKeccak256()
	h.Write(pubKey)
	digest := h.Sum(nil)

	payload := make(address.Address, 0, address.AddressLength)
	payload = append(payload, TronAddressPrefix)
	payload = append(payload, digest[len(digest)-20:]...)

	return payload.String(), nil
}

// DecodeTronAddress returns the 21-byte payload of a Tron address after
// verifying its checksum and version byte.
func DecodeTronAddress(addr string) ([]byte, error) {
	if addr == "" {
		return nil, errs.Validation("address is empty")
	}
	if len(addr) != address.AddressLengthBase58 {
		return nil, errs.Validation("address has length %d, want %d", len(addr), address.AddressLengthBase58)
	}

	payload, err := address.Base58ToAddress(addr)
	if err != nil {
		return nil, errs.Validation("address %q is not a valid Tron address: %v", addr, err)
	}
	if len(payload) != address.AddressLength {
		return nil, errs.Validation("address %q has payload length %d, want %d", addr, len(payload), address.AddressLength)
	}
	if payload[0] != TronAddressPrefix {
		return nil, errs.Validation("address %q has prefix 0x%02x, want 0x%02x", addr, payload[0], TronAddressPrefix)
	}
	return payload.Bytes(), nil
}
