package common

import (
	"math/big"
	"strings"

	"github.com/okmeme/okmeme-wallet/internal/errs"

	"github.com/shopspring/decimal"
)

const (
	SOLDecimals = 9 // SOL has 9 decimals (lamports)
	TRXDecimals = 6 // TRX has 6 decimals (SUN)
)

const (
	LamportsPerSOL uint64 = 1_000_000_000
	SUNPerTRX      uint64 = 1_000_000
)

// Bounds on user supplied amounts. Decimal exponents are otherwise
// unbounded and "1e20000000" would expand to millions of digits.
const (
	maxAmountLen      = 64
	maxAmountExponent = 18
)

// LamportsToSOL converts lamports to SOL without float precision loss
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return unitsToDecimal(lamports, SOLDecimals)
}

// SUNToTRX converts SUN to TRX without float precision loss
func SUNToTRX(sun uint64) decimal.Decimal {
	return unitsToDecimal(sun, TRXDecimals)
}

// unitsToDecimal shifts the decimal point of value left by decimals places.
// Example: unitsToDecimal(24981836, 9) = 0.024981836
func unitsToDecimal(value uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(value), -decimals)
}

// ParseAmount parses a user supplied amount. Only positive finite decimals are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errs.Validation("amount is required")
	}

	if len(s) > maxAmountLen {
		return decimal.Zero, errs.Validation("amount is longer than %d characters", maxAmountLen)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.Validation("amount %q is not a valid decimal", s)
	}
	if err := checkExponent(amount); err != nil {
		return decimal.Zero, err
	}
	if !amount.IsPositive() {
		return decimal.Zero, errs.Validation("amount must be positive, got %q", s)
	}
	return amount, nil
}

// ScaleAmount converts a display amount to raw units: amount*scale rounded half to even.
// Amounts that round to zero or do not fit in uint64 are rejected.
func ScaleAmount(amount decimal.Decimal, scale uint64) (uint64, error) {
	if scale == 0 {
		return 0, errs.Validation("scale factor must be positive")
	}

	if err := checkExponent(amount); err != nil {
		return 0, err
	}

	factor := decimal.NewFromBigInt(new(big.Int).SetUint64(scale), 0)
	raw := amount.Mul(factor).RoundBank(0).BigInt()

	if raw.Sign() <= 0 {
		return 0, errs.Validation("amount is below the smallest unit")
	}
	if !raw.IsUint64() {
		return 0, errs.Validation("amount is too large")
	}
	return raw.Uint64(), nil
}

func checkExponent(amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp > maxAmountExponent {
		return errs.Validation("amount is too large")
	}
	if exp < -maxAmountExponent {
		return errs.Validation("amount has more than %d decimal places", maxAmountExponent)
	}
	return nil
}
