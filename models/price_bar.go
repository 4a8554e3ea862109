package models

import (
	"github.com/guregu/null/v6"
)

// PriceBar is one trading day's OHLCV observation. The numeric fields are
// nullable because the provider may hand back partial rows; coercion failures
// null a single field rather than dropping the bar at the fetch layer.
type PriceBar struct {
	Date   string     `json:"date"`
	Open   null.Float `json:"open"`
	High   null.Float `json:"high"`
	Low    null.Float `json:"low"`
	Close  null.Float `json:"close"`
	Volume null.Int   `json:"volume"`
}

// Complete reports whether all five numeric fields survived coercion. Only
// complete bars are persisted.
func (b *PriceBar) Complete() bool {
	return b.Open.Valid && b.High.Valid && b.Low.Valid && b.Close.Valid && b.Volume.Valid
}
