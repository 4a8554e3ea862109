package models

// Asset identifies a tradable instrument. Rows are created lazily on first
// collection for a ticker and never mutated afterwards.
type Asset struct {
	Id     int64  `json:"id"`
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}
