package tron

import (
	"strings"

	"github.com/okmeme/okmeme-wallet/internal/common"
	"github.com/okmeme/okmeme-wallet/internal/errs"
	"github.com/okmeme/okmeme-wallet/internal/model"
)

// BuildTransferIntent validates a transfer and scales the amount to raw units.
// The raw amount is amount*scaleFactor rounded half to even. Nothing is signed or sent.
func BuildTransferIntent(recipient, amountDisplay string, scaleFactor uint64) (*model.TransferIntent, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, errs.Validation("recipient address is required")
	}

	amount, err := common.ParseAmount(amountDisplay)
	if err != nil {
		return nil, err
	}

	raw, err := common.ScaleAmount(amount, scaleFactor)
	if err != nil {
		return nil, err
	}

	return &model.TransferIntent{
		Recipient:     recipient,
		AmountDisplay: amount,
		AmountRaw:     raw,
	}, nil
}
