package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"rsi-tracker/src/interfaces"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/models"
	"rsi-tracker/src/utils"
)

type YahooGateway struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewYahooGateway(cfg *models.MConfig, netMgr interfaces.INetworkManager) *YahooGateway {
	return &YahooGateway{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "YahooGateway"),
	}
}

// -----------------------------------------------------------------------------

type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`  // Use pointers to handle null
					Volume []*float64 `json:"volume"` // Use pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

// FetchPriceSeries fetches a year of daily closes and derives the per-symbol
// figures. It never returns an error: any provider failure degrades to the
// empty all-null shape so one bad symbol cannot poison a batch.
func (g *YahooGateway) FetchPriceSeries(ctx context.Context, symbol string) models.MPriceData {
	params := map[string]string{
		"range":    g.Config.Provider.ChartRange,
		"interval": g.Config.Provider.ChartInterval,
	}

	url := fmt.Sprintf("%s/%s", g.Config.Provider.ChartBaseURL, symbol)

	respBytes, err := g.Network.Get(ctx, url, params)
	if err != nil {
		g.Logger.Info("Chart fetch failed for %s: %v", symbol, err)
		return models.NewEmptyPriceData(symbol)
	}

	data, err := g.parseChartResponse(symbol, respBytes)
	if err != nil {
		g.Logger.Info("Chart parse failed for %s: %v", symbol, err)
		return models.NewEmptyPriceData(symbol)
	}

	return data
}

// -----------------------------------------------------------------------------

func (g *YahooGateway) parseChartResponse(symbol string, data []byte) (models.MPriceData, error) {
	empty := models.NewEmptyPriceData(symbol)

	var resp YahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return empty, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return empty, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 {
		return empty, fmt.Errorf("no result in response for %s", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return empty, fmt.Errorf("no quote data in response for %s", symbol)
	}

	// Drop null entries, keeping chronological order. Timestamps ride along
	// only when the provider's arrays line up.
	closes := result.Indicators.Quote[0].Close
	withTimestamps := len(result.Timestamp) == len(closes)

	var validPrices []float64
	var validTimes []int64
	for i, p := range closes {
		if p == nil {
			continue
		}
		validPrices = append(validPrices, *p)
		if withTimestamps {
			validTimes = append(validTimes, result.Timestamp[i])
		}
	}
	if len(validPrices) == 0 {
		return empty, fmt.Errorf("no valid closing prices for %s", symbol)
	}

	out := models.MPriceData{
		Symbol:     symbol,
		AllPrices:  validPrices,
		Timestamps: validTimes,
	}

	// Keep the last 30 closes for the indicator window.
	start := 0
	if len(validPrices) > utils.ClosingPricesKept {
		start = len(validPrices) - utils.ClosingPricesKept
	}
	out.ClosingPrices = append([]float64{}, validPrices[start:]...)

	// Prefer the live market price; fall back to the last valid close.
	current := result.Meta.RegularMarketPrice
	if current <= 0 {
		current = validPrices[len(validPrices)-1]
	}
	out.CurrentPrice = &current

	out.OneDayReturn = returnAtOffset(validPrices, current, utils.OffsetOneDay)
	out.OneWeekReturn = returnAtOffset(validPrices, current, utils.OffsetOneWeek)
	out.OneMonthReturn = returnAtOffset(validPrices, current, utils.OffsetOneMonth)
	out.ThreeMonthReturn = returnAtOffset(validPrices, current, utils.OffsetThreeMonth)
	out.SixMonthReturn = returnAtOffset(validPrices, current, utils.OffsetSixMonth)

	// 52-week high: provider figure first, then the series max, then the
	// current price itself.
	high := result.Meta.FiftyTwoWeekHigh
	if high <= 0 {
		for _, p := range validPrices {
			if p > high {
				high = p
			}
		}
	}
	if high <= 0 {
		high = current
	}
	out.FiftyTwoWeekHigh = &high

	g.Logger.Debug("Fetched %s: %d valid closes, current=%.2f", symbol, len(validPrices), current)

	return out, nil
}

// -----------------------------------------------------------------------------

// returnAtOffset computes the percentage return against the close `offset`
// trading days back. The base sits at index len-1-offset, so the series must
// be strictly longer than the offset.
func returnAtOffset(prices []float64, current float64, offset int) *float64 {
	if len(prices) <= offset {
		return nil
	}
	past := prices[len(prices)-1-offset]
	if past == 0 {
		return nil
	}
	r := ((current - past) / past) * 100
	return &r
}
