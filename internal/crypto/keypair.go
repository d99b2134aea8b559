package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/okmeme/okmeme-wallet/internal/errs"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Scheme is the asymmetric key scheme of a Keypair.
type Scheme string

const (
	SchemeEd25519   Scheme = "ed25519"
	SchemeSecp256k1 Scheme = "secp256k1"
)

// ParseScheme converts a config value to a Scheme.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeEd25519, SchemeSecp256k1:
		return Scheme(s), nil
	default:
		return "", fmt.Errorf("unknown key scheme %q", s)
	}
}

// Keypair holds a 32-byte private key and the matching public key.
// For ed25519 the public key is 32 bytes; for secp256k1 it is the
// 64-byte uncompressed point without the 0x04 prefix.
type Keypair struct {
	Scheme     Scheme
	PrivateKey []byte
	PublicKey  []byte
}

// Zero wipes the private key.
func (k *Keypair) Zero() {
	clear(k.PrivateKey)
}

// GenerateKeypair creates a keypair from crypto/rand.
func GenerateKeypair(scheme Scheme) (*Keypair, error) {
	return GenerateKeypairFrom(scheme, rand.Reader)
}

// GenerateKeypairFrom creates a keypair reading entropy from r.
// A failing reader aborts generation with a FatalEntropy error.
func GenerateKeypairFrom(scheme Scheme, r io.Reader) (*Keypair, error) {
	switch scheme {
	case SchemeEd25519:
		seed := make([]byte, ed25519.SeedSize)
		if _, err := io.ReadFull(r, seed); err != nil {
			return nil, errs.FatalEntropy(err)
		}
		priv := ed25519.NewKeyFromSeed(seed)
		defer clear(priv)
		pub := make([]byte, ed25519.PublicKeySize)
		copy(pub, priv.Public().(ed25519.PublicKey))
		return &Keypair{Scheme: scheme, PrivateKey: seed, PublicKey: pub}, nil

	case SchemeSecp256k1:
		key, err := secp256k1.GeneratePrivateKeyFromRand(r)
		if err != nil {
			return nil, errs.FatalEntropy(err)
		}
		defer key.Zero()
		// uncompressed form is 0x04 || X || Y
		pub := key.PubKey().SerializeUncompressed()[1:]
		return &Keypair{Scheme: scheme, PrivateKey: key.Serialize(), PublicKey: pub}, nil

	default:
		return nil, fmt.Errorf("unknown key scheme %q", scheme)
	}
}
