package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/guregu/null/v6"

	c "github.com/larokaa/projeto-acoes/api"
	ex "github.com/larokaa/projeto-acoes/extensions"
	m "github.com/larokaa/projeto-acoes/models"
)

// public
const (
	HostDefault = "query1.finance.yahoo.com"
)

// private
const (
	defaultTimeout = time.Second * 30

	// chart API query parameters
	historyRange  = "5y"
	dailyInterval = "1d"
)

type Client struct {
	*c.Client
}

func GetClient(host string) Client {
	if host == "" {
		host = HostDefault
	}
	return Client{
		c.ClientFactory(host, defaultTimeout),
	}
}

// chartResponse mirrors the Yahoo Finance v8 chart payload. The numeric
// columns are position-aligned with the timestamp array and may hold nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyHistory requests the last five years of daily bars for an
// already-validated ticker and normalizes them into ascending date order.
// A payload without rows is a normal outcome and returns an empty slice;
// transport and provider errors are returned to the caller.
func (yc *Client) FetchDailyHistory(ticker string) ([]*m.PriceBar, error) {
	endpoint := buildChartPath(ticker)

	response, err := yc.Client.Connection.Request(endpoint)
	if err != nil {
		return nil, fmt.Errorf("yahoo request for %s: %w", ticker, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d for %s", response.StatusCode, ticker)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return []*m.PriceBar{}, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]*m.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bars = append(bars, &m.PriceBar{
			Date:   ex.FmtShort(time.Unix(ts, 0).UTC()),
			Open:   toNullFloat(at(quote.Open, i)),
			High:   toNullFloat(at(quote.High, i)),
			Low:    toNullFloat(at(quote.Low, i)),
			Close:  toNullFloat(at(quote.Close, i)),
			Volume: toNullInt(at(quote.Volume, i)),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	return bars, nil
}

func buildChartPath(ticker string) *url.URL {
	endpoint := &url.URL{}
	endpoint.Path = "/v8/finance/chart/" + ticker

	query := endpoint.Query()
	query.Set("interval", dailyInterval)
	query.Set("range", historyRange)
	endpoint.RawQuery = query.Encode()

	return endpoint
}

// at guards against quote columns shorter than the timestamp array.
func at(column []*float64, i int) *float64 {
	if i >= len(column) {
		return nil
	}
	return column[i]
}

// toNullFloat nulls values that are absent or not a number.
func toNullFloat(v *float64) null.Float {
	if v == nil || math.IsNaN(*v) {
		return null.Float{}
	}
	return null.FloatFrom(*v)
}

// toNullInt nulls values that are absent, not a number, or not integral.
func toNullInt(v *float64) null.Int {
	if v == nil || math.IsNaN(*v) || *v != math.Trunc(*v) {
		return null.Int{}
	}
	return null.IntFrom(int64(*v))
}
