package indicators

import (
	"fmt"
	"math"

	"rsi-tracker/src/models"
	"rsi-tracker/src/utils"
)

// lossEpsilon stands in for a zero average loss so the relative strength
// stays finite. A monotonically rising series therefore reads just under
// 100 rather than exactly 100.
const lossEpsilon = 0.001

// -----------------------------------------------------------------------------
// RSI (Wilder smoothing)
// -----------------------------------------------------------------------------

// CalculateRSI returns the full RSI sequence for the price series, one value
// per bar starting at index period. Needs at least period+1 prices; anything
// shorter yields an empty slice.
func CalculateRSI(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period+1 {
		return []float64{}
	}

	gains := make([]float64, 0, len(prices)-1)
	losses := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	var avgGain, avgLoss float64
	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	result := make([]float64, 0, len(gains)-period+1)
	result = append(result, rsiFromAverages(avgGain, avgLoss))

	for i := period; i < len(gains); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		result = append(result, rsiFromAverages(avgGain, avgLoss))
	}

	return result
}

// -----------------------------------------------------------------------------

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		avgLoss = lossEpsilon
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// -----------------------------------------------------------------------------

// LatestRSI is the convenience form used for display: the last value of the
// sequence, or nil when the series is too short.
func LatestRSI(prices []float64, period int) *float64 {
	seq := CalculateRSI(prices, period)
	if len(seq) == 0 {
		return nil
	}
	v := seq[len(seq)-1]
	return &v
}

// -----------------------------------------------------------------------------
// Annualized volatility
// -----------------------------------------------------------------------------

// CalculateVolatility annualizes the standard deviation of simple daily
// returns over 252 trading days and formats it as a percentage. Returns the
// N/A sentinel with a nil raw value when fewer than two prices are given.
func CalculateVolatility(prices []float64) (string, *float64) {
	if len(prices) < 2 {
		return models.ValueNA, nil
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	if len(returns) == 0 {
		return models.ValueNA, nil
	}

	_, std := MeanStd(returns)
	vol := std * math.Sqrt(utils.TradingDaysPerYear) * 100

	return fmt.Sprintf("%.2f%%", vol), &vol
}

// -----------------------------------------------------------------------------

// MeanStd computes the mean and population standard deviation.
func MeanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

// -----------------------------------------------------------------------------
// Period returns
// -----------------------------------------------------------------------------

// CalculateReturn is the percentage change from past to current. A zero past
// price has no meaningful return and yields nil.
func CalculateReturn(current, past float64) *float64 {
	if past == 0 {
		return nil
	}
	r := ((current - past) / past) * 100
	return &r
}

// -----------------------------------------------------------------------------
// Discount from high
// -----------------------------------------------------------------------------

// CalculateDiscount measures how far the current price sits below its
// 52-week high, as a percentage of the high. The high is lifted to the
// current price when the provider's figure lags a fresh peak, so the result
// is never negative. Missing inputs format as a zero discount.
func CalculateDiscount(currentPrice, high *float64) (string, *float64) {
	if currentPrice == nil || high == nil || *high <= 0 {
		zero := 0.0
		return "0.00%", &zero
	}

	highPrice := math.Max(*currentPrice, *high)
	discount := ((highPrice - *currentPrice) / highPrice) * 100
	if discount < 0 {
		discount = 0
	}

	return fmt.Sprintf("%.2f%%", discount), &discount
}
