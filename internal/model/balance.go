package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a point-in-time balance snapshot.
type Balance struct {
	Chain        Chain           `json:"chain"`
	Address      string          `json:"address"`
	RawUnits     uint64          `json:"raw"`
	DisplayValue decimal.Decimal `json:"balance"`
	Unit         string          `json:"unit"`
	FetchedAt    time.Time       `json:"fetchedAt"`
}
