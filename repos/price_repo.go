package repos

import (
	"context"
	"fmt"

	m "github.com/larokaa/projeto-acoes/models"
	"github.com/larokaa/projeto-acoes/queries"
)

// UpsertPrice writes or fully replaces the bar for (assetID, bar.Date). The
// INSERT OR REPLACE rides on the UNIQUE(asset_id, date) constraint, so insert
// vs update is not distinguished.
func (s *Store) UpsertPrice(ctx context.Context, assetID int64, bar *m.PriceBar) error {
	_, err := s.db.ExecContext(ctx, queries.Get(queries.QueryHelper.Insert.PriceUpsert),
		assetID, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	if err != nil {
		return fmt.Errorf("upsert price %s: %w", bar.Date, err)
	}
	return nil
}

// GetPricesByTicker returns all bars stored for ticker in ascending date
// order. An unknown ticker yields an empty slice, not an error.
func (s *Store) GetPricesByTicker(ctx context.Context, ticker string) ([]*m.PriceBar, error) {
	rows, err := s.db.QueryContext(ctx, queries.Get(queries.QueryHelper.Select.PricesByTicker), ticker)
	if err != nil {
		return nil, fmt.Errorf("select prices for %s: %w", ticker, err)
	}
	defer rows.Close()

	bars := make([]*m.PriceBar, 0)
	for rows.Next() {
		var b m.PriceBar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan price row: %w", err)
		}
		bars = append(bars, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price rows: %w", err)
	}

	return bars, nil
}
