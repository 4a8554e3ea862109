package core

import (
	"context"

	m "github.com/larokaa/projeto-acoes/models"
	r "github.com/larokaa/projeto-acoes/repos"
)

// BarFetcher is the provider-side contract the service depends on.
type BarFetcher interface {
	FetchDailyHistory(ticker string) ([]*m.PriceBar, error)
}

type ServiceContext struct {
	Context context.Context
	Store   *r.Store
	Fetcher BarFetcher
}
