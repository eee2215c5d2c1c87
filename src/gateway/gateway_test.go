package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rsi-tracker/src/helpers"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/models"
	"rsi-tracker/src/network"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func testConfig(chartBase, summaryURL string) *models.MConfig {
	return &models.MConfig{
		LogLevel: "INFO",
		Network: models.MNetworkConfig{
			RequestTimeout:      5,
			MaxRetries:          0,
			ReachabilityTimeout: 1,
			ReachabilityURL:     "http://127.0.0.1:1",
		},
		Provider: models.MProviderConfig{
			ChartBaseURL:  chartBase,
			ChartRange:    "1y",
			ChartInterval: "1d",
			SummaryURL:    summaryURL,
		},
	}
}

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*YahooGateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL, srv.URL+"/summary")
	netMgr := network.NewAsyncNetworkManager(cfg, logger.NewLogger("INFO", "test-network"))
	return NewYahooGateway(cfg, netMgr), srv
}

// -----------------------------------------------------------------------------

// chartPayload builds a minimal provider response with n closes, the given
// null indices, and the given meta figures.
func chartPayload(n int, nullAt map[int]bool, marketPrice, high float64) []byte {
	closes := make([]interface{}, n)
	timestamps := make([]int64, n)
	for i := 0; i < n; i++ {
		if nullAt[i] {
			closes[i] = nil
		} else {
			closes[i] = 100 + float64(i)
		}
		timestamps[i] = int64(1700000000 + i*86400)
	}

	payload := map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []interface{}{
				map[string]interface{}{
					"meta": map[string]interface{}{
						"symbol":             "TEST.NS",
						"regularMarketPrice": marketPrice,
						"fiftyTwoWeekHigh":   high,
					},
					"timestamp": timestamps,
					"indicators": map[string]interface{}{
						"quote": []interface{}{
							map[string]interface{}{"close": closes},
						},
					},
				},
			},
			"error": nil,
		},
	}
	b, _ := json.Marshal(payload)
	return b
}

// -----------------------------------------------------------------------------
// FetchPriceSeries
// -----------------------------------------------------------------------------

func TestFetchPriceSeries(t *testing.T) {
	nullAt := map[int]bool{3: true, 50: true}
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "RELIANCE.NS") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("range") != "1y" || r.URL.Query().Get("interval") != "1d" {
			http.Error(w, "bad params", http.StatusBadRequest)
			return
		}
		w.Write(chartPayload(130, nullAt, 250.5, 260))
	})

	got := g.FetchPriceSeries(context.Background(), "RELIANCE.NS")

	if got.Symbol != "RELIANCE.NS" {
		t.Errorf("symbol = %q", got.Symbol)
	}
	// 130 raw points minus 2 nulls
	if len(got.AllPrices) != 128 {
		t.Fatalf("valid prices = %d, want 128", len(got.AllPrices))
	}
	if len(got.ClosingPrices) != 30 {
		t.Errorf("closing window = %d, want 30", len(got.ClosingPrices))
	}
	if got.CurrentPrice == nil || *got.CurrentPrice != 250.5 {
		t.Errorf("current price = %v, want 250.5", got.CurrentPrice)
	}
	if got.FiftyTwoWeekHigh == nil || *got.FiftyTwoWeekHigh != 260 {
		t.Errorf("52w high = %v, want 260", got.FiftyTwoWeekHigh)
	}

	// 128 valid closes supports every offset up to six months.
	for name, r := range map[string]*float64{
		"1d": got.OneDayReturn, "1w": got.OneWeekReturn, "1m": got.OneMonthReturn,
		"3m": got.ThreeMonthReturn, "6m": got.SixMonthReturn,
	} {
		if r == nil {
			t.Errorf("%s return is nil, want value", name)
		}
	}

	// Spot-check: one week back is the 6th-from-last valid close.
	base := got.AllPrices[len(got.AllPrices)-6]
	want := ((250.5 - base) / base) * 100
	if math.Abs(*got.OneWeekReturn-want) > 1e-9 {
		t.Errorf("1w return = %f, want %f", *got.OneWeekReturn, want)
	}
}

func TestFetchPriceSeriesShortSeries(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(chartPayload(10, nil, 109, 0))
	})

	got := g.FetchPriceSeries(context.Background(), "NEWIPO.NS")

	if got.OneWeekReturn == nil {
		t.Error("1w return should exist with 10 closes")
	}
	if got.OneMonthReturn != nil {
		t.Error("1m return should be nil with only 10 closes")
	}
	// No meta high: falls back to the series max (100..109).
	if got.FiftyTwoWeekHigh == nil || *got.FiftyTwoWeekHigh != 109 {
		t.Errorf("52w high = %v, want series max 109", got.FiftyTwoWeekHigh)
	}
}

func TestFetchPriceSeriesDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{not json"))
		}},
		{"provider error block", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data"}}}`))
		}},
		{"all closes null", func(w http.ResponseWriter, r *http.Request) {
			w.Write(chartPayload(5, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}, 0, 0))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGateway(t, tt.handler)
			got := g.FetchPriceSeries(context.Background(), "BAD.NS")

			if got.Symbol != "BAD.NS" {
				t.Errorf("symbol = %q", got.Symbol)
			}
			if len(got.AllPrices) != 0 || len(got.ClosingPrices) != 0 {
				t.Error("expected empty price slices")
			}
			if got.CurrentPrice != nil || got.FiftyTwoWeekHigh != nil || got.OneDayReturn != nil {
				t.Error("expected nil derived values")
			}
		})
	}
}

// -----------------------------------------------------------------------------
// FetchBatchSummary
// -----------------------------------------------------------------------------

func TestFetchBatchSummary(t *testing.T) {
	body := `[
		{"symbol":"INFY.NS","details":{
			"recordDate":"2026-08-28","lastClosePrice":"1450.20","lastDayVolume":"1200000",
			"downFrom2YearHigh":"12.50","dailyRSI":"45.10","weeklyRSI":"52.00","monthlyRSI":"60.30",
			"1weekReturns":"1.20","1monthReturns":"3.40","1yearReturns":"18.00","2yearReturns":"40.00",
			"2yNiftyReturns":"25.00","priceToEarning":"24.50","niftyPriceToEarning":"22.10",
			"priceRange":{"weeklyRange":{"min":"1400","max":"1460","current":"1450.20"}}
		}},
		{"symbol":"TCS.NS","details":{"lastClosePrice":"3900.00","dailyRSI":""}}
	]`

	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summary" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})

	entries, err := g.FetchBatchSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Symbol != "INFY.NS" || entries[0].Details.DailyRSI != "45.10" {
		t.Errorf("first entry parsed wrong: %+v", entries[0])
	}
	if entries[0].Details.PriceRange == nil || entries[0].Details.PriceRange.WeeklyRange.Max != "1460" {
		t.Error("weekly range not parsed")
	}
}

func TestFetchBatchSummaryFailsLoudly(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"unexpected":"object"}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGateway(t, tt.handler)
			_, err := g.FetchBatchSummary(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			var sfe *helpers.SummaryFetchError
			if !errors.As(err, &sfe) {
				t.Errorf("error type = %T, want SummaryFetchError", err)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// NormalizeSummary
// -----------------------------------------------------------------------------

func TestNormalizeSummary(t *testing.T) {
	entry := models.MSummaryEntry{
		Symbol: "INFY.NS",
		Details: models.MSummaryDetails{
			RecordDate:        "2026-08-28",
			LastClosePrice:    "1450.20",
			LastDayVolume:     "1,200,000",
			DownFrom2YearHigh: "12.50%",
			DailyRSI:          "45.10",
			OneYearReturns:    "18.00",
			PriceToEarning:    "",
			PriceRange: &models.MSummaryRanges{
				WeeklyRange: &models.MSummaryRange{Min: "1400", Max: "1460", Current: "1450.20"},
			},
		},
	}

	rec := NormalizeSummary(entry)

	if rec.Ticker != "INFY.NS" {
		t.Errorf("ticker = %q", rec.Ticker)
	}
	if rec.RecordDate != "2026-08-28" {
		t.Errorf("record date = %q", rec.RecordDate)
	}
	if rec.CurrentPrice != "1450.20" || rec.RawCurrentPrice == nil || *rec.RawCurrentPrice != 1450.20 {
		t.Errorf("price = %q raw %v", rec.CurrentPrice, rec.RawCurrentPrice)
	}
	if rec.RawLastDayVolume == nil || *rec.RawLastDayVolume != 1200000 {
		t.Errorf("volume raw = %v, want 1200000", rec.RawLastDayVolume)
	}
	if rec.Discount != "12.50%" || rec.RawDiscount == nil || *rec.RawDiscount != 12.5 {
		t.Errorf("discount = %q raw %v", rec.Discount, rec.RawDiscount)
	}
	// Blank provider field reads as unavailable.
	if rec.PriceToEarning != models.ValueNA || rec.RawPriceToEarning != nil {
		t.Errorf("blank P/E = %q raw %v, want N/A nil", rec.PriceToEarning, rec.RawPriceToEarning)
	}
	// Fields the summary never carries stay at the empty-record default.
	if rec.Volatility != models.ValueNA {
		t.Errorf("volatility = %q, want N/A", rec.Volatility)
	}
	if rec.PriceRanges == nil || rec.PriceRanges.Weekly == nil || *rec.PriceRanges.Weekly.Max != 1460 {
		t.Error("weekly range not normalized")
	}
	if rec.PriceRanges.Monthly != nil {
		t.Error("absent monthly range should stay nil")
	}
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantNil bool
	}{
		{"12.34", 12.34, false},
		{" -5.6 ", -5.6, false},
		{"12.50%", 12.5, false},
		{"1,200,000", 1200000, false},
		{"", 0, true},
		{"N/A", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got := ParseNumeric(tt.in)
		if tt.wantNil {
			if got != nil {
				t.Errorf("ParseNumeric(%q) = %f, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("ParseNumeric(%q) = %v, want %f", tt.in, got, tt.want)
		}
	}
}
