package solana

import (
	"strings"

	"github.com/okmeme/okmeme-wallet/internal/common"
	"github.com/okmeme/okmeme-wallet/internal/errs"
	"github.com/okmeme/okmeme-wallet/internal/model"
)

// BuildSwapIntent validates a token swap request. No route or quote is resolved.
func BuildSwapIntent(fromToken, toToken, amountDisplay string) (*model.SwapIntent, error) {
	fromToken = strings.TrimSpace(fromToken)
	toToken = strings.TrimSpace(toToken)

	if fromToken == "" || toToken == "" {
		return nil, errs.Validation("both fromToken and toToken are required")
	}

	amount, err := common.ParseAmount(amountDisplay)
	if err != nil {
		return nil, err
	}

	return &model.SwapIntent{
		FromToken:     fromToken,
		ToToken:       toToken,
		AmountDisplay: amount,
	}, nil
}
