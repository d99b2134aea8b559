package solana

import (
	"strings"

	"github.com/okmeme/okmeme-wallet/internal/errs"
)

// Connect accepts the public address reported by an externally held wallet.
// There is no handshake with the signing agent; any non-empty address is
// taken as is and validated only when it is used for an RPC call.
func Connect(reportedAddress string) (string, error) {
	address := strings.TrimSpace(reportedAddress)
	if address == "" {
		return "", errs.Validation("wallet did not report an address")
	}
	return address, nil
}
