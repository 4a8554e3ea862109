package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	m "github.com/larokaa/projeto-acoes/models"
	"github.com/larokaa/projeto-acoes/queries"
)

// GetAssetByTicker returns the asset for ticker, or nil when none exists.
func (s *Store) GetAssetByTicker(ctx context.Context, ticker string) (*m.Asset, error) {
	var asset m.Asset
	err := s.db.QueryRowContext(ctx, queries.Get(queries.QueryHelper.Select.AssetByTicker), ticker).
		Scan(&asset.Id, &asset.Ticker, &asset.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select asset %s: %w", ticker, err)
	}
	return &asset, nil
}

// GetOrCreateAsset returns the asset for ticker, inserting a new row when
// none exists. Name defaults to the ticker itself. The select-then-insert is
// not guarded against concurrent creation; the UNIQUE constraint on ticker is
// the only backstop under the single-writer model.
func (s *Store) GetOrCreateAsset(ctx context.Context, ticker, name string) (*m.Asset, error) {
	asset, err := s.GetAssetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if asset != nil {
		return asset, nil
	}

	if name == "" {
		name = ticker
	}

	res, err := s.db.ExecContext(ctx, queries.Get(queries.QueryHelper.Insert.Asset), ticker, name)
	if err != nil {
		return nil, fmt.Errorf("insert asset %s: %w", ticker, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("asset id for %s: %w", ticker, err)
	}

	return &m.Asset{Id: id, Ticker: ticker, Name: name}, nil
}
