package core

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v6"

	ex "github.com/larokaa/projeto-acoes/extensions"
	m "github.com/larokaa/projeto-acoes/models"
	r "github.com/larokaa/projeto-acoes/repos"
)

// stubFetcher returns canned bars and counts how often it was called.
type stubFetcher struct {
	bars  []*m.PriceBar
	err   error
	calls int
}

func (f *stubFetcher) FetchDailyHistory(_ string) ([]*m.PriceBar, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.bars, nil
}

func getTestServer(t *testing.T, fetcher *stubFetcher) (*http.Server, *r.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := r.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("error opening test store: %s", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("error initializing test store: %s", err)
	}

	sc := ServiceContext{
		Context: context.Background(),
		Store:   store,
		Fetcher: fetcher,
	}
	return GetHttpServer(sc, "", ""), store
}

func postFetchAndSave(t *testing.T, s *http.Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/fetch-and-save", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler.ServeHTTP(w, req)
	return w
}

func getPricesFor(t *testing.T, s *http.Server, ticker string) m.PricesResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/prices/"+ticker, nil)
	w := httptest.NewRecorder()
	s.Handler.ServeHTTP(w, req)

	ex.AssertAreEqual(t, "prices status code", http.StatusOK, w.Code)

	var resp m.PricesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decoding prices response: %s", err)
	}
	return resp
}

func testBars() []*m.PriceBar {
	incomplete := &m.PriceBar{
		Date:  "2024-01-03",
		Open:  null.FloatFrom(187.0),
		High:  null.FloatFrom(188.0),
		Low:   null.FloatFrom(186.7),
		Close: null.FloatFrom(187.5),
		// volume left null
	}
	return []*m.PriceBar{
		{
			Date:   "2024-01-01",
			Open:   null.FloatFrom(185.0),
			High:   null.FloatFrom(186.2),
			Low:    null.FloatFrom(184.3),
			Close:  null.FloatFrom(185.6),
			Volume: null.IntFrom(39500000),
		},
		{
			Date:   "2024-01-02",
			Open:   null.FloatFrom(186.1),
			High:   null.FloatFrom(187.9),
			Low:    null.FloatFrom(185.5),
			Close:  null.FloatFrom(187.2),
			Volume: null.IntFrom(41000000),
		},
		incomplete,
	}
}

func Test_FetchAndSave_StoresCompleteBarsOnly(t *testing.T) {
	fetcher := &stubFetcher{bars: testBars()}
	s, _ := getTestServer(t, fetcher)

	w := postFetchAndSave(t, s, `{"ticker":"AAPL"}`)
	ex.AssertAreEqual(t, "status code", http.StatusOK, w.Code)

	var resp m.CollectResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decoding collect response: %s", err)
	}
	ex.AssertAreEqual(t, "status", m.StatusSuccess, resp.Status)
	ex.AssertAreEqual(t, "inserted", 2, resp.Inserted)
	ex.AssertAreEqual(t, "skipped", 1, resp.Skipped)

	prices := getPricesFor(t, s, "AAPL")
	ex.AssertAreEqual(t, "count", 2, prices.Count)
	ex.AssertAreEqual(t, "first date", "2024-01-01", prices.Prices[0].Date)
	ex.AssertAreEqual(t, "second date", "2024-01-02", prices.Prices[1].Date)
}

func Test_FetchAndSave_LowerCaseTickerIsNormalized(t *testing.T) {
	fetcher := &stubFetcher{bars: testBars()}
	s, _ := getTestServer(t, fetcher)

	w := postFetchAndSave(t, s, `{"ticker":"  aapl "}`)
	ex.AssertAreEqual(t, "status code", http.StatusOK, w.Code)

	prices := getPricesFor(t, s, "AAPL")
	ex.AssertAreEqual(t, "count", 2, prices.Count)
	ex.AssertAreEqual(t, "ticker", "AAPL", prices.Ticker)
}

func Test_FetchAndSave_BlankTickerIsRejected(t *testing.T) {
	fetcher := &stubFetcher{bars: testBars()}
	s, store := getTestServer(t, fetcher)

	w := postFetchAndSave(t, s, `{"ticker":"   "}`)
	ex.AssertAreEqual(t, "status code", http.StatusBadRequest, w.Code)

	var resp m.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decoding error response: %s", err)
	}
	ex.AssertAreEqual(t, "status", m.StatusError, resp.Status)
	ex.AssertAreEqual(t, "message", "ticker required", resp.Message)

	// No provider call and no store mutation.
	ex.AssertAreEqual(t, "fetcher calls", 0, fetcher.calls)
	bars, err := store.GetPricesByTicker(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("error querying prices: %s", err)
	}
	ex.AssertAreEqual(t, "stored bars", 0, len(bars))
}

func Test_FetchAndSave_MalformedTickerSkipsProvider(t *testing.T) {
	fetcher := &stubFetcher{bars: testBars()}
	s, _ := getTestServer(t, fetcher)

	w := postFetchAndSave(t, s, `{"ticker":"AA PL"}`)
	ex.AssertAreEqual(t, "status code", http.StatusOK, w.Code)

	var resp m.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decoding response: %s", err)
	}
	ex.AssertAreEqual(t, "status", m.StatusWarning, resp.Status)
	ex.AssertAreEqual(t, "fetcher calls", 0, fetcher.calls)
}

func Test_FetchAndSave_EmptyHistoryIsAWarning(t *testing.T) {
	fetcher := &stubFetcher{bars: []*m.PriceBar{}}
	s, _ := getTestServer(t, fetcher)

	w := postFetchAndSave(t, s, `{"ticker":"NOPE"}`)
	ex.AssertAreEqual(t, "status code", http.StatusOK, w.Code)

	var resp m.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decoding response: %s", err)
	}
	ex.AssertAreEqual(t, "status", m.StatusWarning, resp.Status)
	ex.AssertAreEqual(t, "message", "no data found", resp.Message)
}

func Test_FetchAndSave_ProviderFailurePresentsAsNoData(t *testing.T) {
	fetcher := &stubFetcher{err: context.DeadlineExceeded}
	s, _ := getTestServer(t, fetcher)

	w := postFetchAndSave(t, s, `{"ticker":"AAPL"}`)
	ex.AssertAreEqual(t, "status code", http.StatusOK, w.Code)

	var resp m.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decoding response: %s", err)
	}
	ex.AssertAreEqual(t, "status", m.StatusWarning, resp.Status)
}

func Test_FetchAndSave_RecollectionReplacesRows(t *testing.T) {
	fetcher := &stubFetcher{bars: testBars()}
	s, _ := getTestServer(t, fetcher)

	if w := postFetchAndSave(t, s, `{"ticker":"AAPL"}`); w.Code != http.StatusOK {
		t.Fatalf("first collection failed with status %d", w.Code)
	}

	// Second collection re-fetches the same window; rows replace, not stack.
	fetcher.bars[1].Close = null.FloatFrom(190.1)
	if w := postFetchAndSave(t, s, `{"ticker":"AAPL"}`); w.Code != http.StatusOK {
		t.Fatalf("second collection failed with status %d", w.Code)
	}

	prices := getPricesFor(t, s, "AAPL")
	ex.AssertAreEqual(t, "count", 2, prices.Count)
	ex.AssertAreEqual(t, "replaced close", 190.1, prices.Prices[1].Close.Float64)
}

func Test_GetPrices_UnknownTickerIsEmptySuccess(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := getTestServer(t, fetcher)

	prices := getPricesFor(t, s, "UNKNOWN")
	ex.AssertAreEqual(t, "status", m.StatusSuccess, prices.Status)
	ex.AssertAreEqual(t, "ticker", "UNKNOWN", prices.Ticker)
	ex.AssertAreEqual(t, "count", 0, prices.Count)
	if prices.Prices == nil {
		t.Fatalf("expected an empty prices array, got null")
	}
}
