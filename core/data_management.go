package core

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/larokaa/projeto-acoes/api"
	ex "github.com/larokaa/projeto-acoes/extensions"
	m "github.com/larokaa/projeto-acoes/models"
)

// CollectResult reports how a collection run went.
type CollectResult struct {
	Ticker   string
	Inserted int
	Skipped  int
}

// CollectAndStore runs the full collection flow for a raw ticker: validate,
// fetch five years of daily bars, drop incomplete ones, ensure the asset row,
// and upsert the remainder.
//
// A nil result with a nil error means the collection ran but found nothing:
// a rejected ticker, a failed provider call, and a genuinely empty history
// all present the same way to the caller. The distinction lives in the logs.
func (sc *ServiceContext) CollectAndStore(rawTicker string) (*CollectResult, error) {
	ticker, err := api.ValidateTicker(rawTicker)
	if err != nil {
		log.Warn().Err(err).Str("ticker", rawTicker).Msg("ticker rejected before provider call")
		return nil, nil
	}

	bars, err := sc.Fetcher.FetchDailyHistory(ticker)
	if err != nil {
		log.Error().Err(err).Str("ticker", ticker).Msg("provider fetch failed")
		return nil, nil
	}
	log.Info().Str("ticker", ticker).Int("bars", len(bars)).Msg("provider returned history")

	if len(bars) == 0 {
		return nil, nil
	}

	asset, err := sc.Store.GetOrCreateAsset(sc.Context, ticker, "")
	if err != nil {
		return nil, fmt.Errorf("resolving asset %s: %w", ticker, err)
	}

	complete := ex.FilterMultiplePtr(bars, func(b *m.PriceBar) bool { return b.Complete() })
	for _, bar := range complete {
		if err := sc.Store.UpsertPrice(sc.Context, asset.Id, bar); err != nil {
			return nil, fmt.Errorf("storing bar %s for %s: %w", bar.Date, ticker, err)
		}
	}

	res := &CollectResult{
		Ticker:   ticker,
		Inserted: len(complete),
		Skipped:  len(bars) - len(complete),
	}
	log.Info().Str("ticker", ticker).Int("inserted", res.Inserted).Int("skipped", res.Skipped).Msg("collection stored")
	return res, nil
}
