package collection

import (
	"sort"
	"strings"

	"rsi-tracker/src/models"
)

// -----------------------------------------------------------------------------
// Sorting
// -----------------------------------------------------------------------------

// rawValue maps a sort key to the record's raw numeric field. Formatted
// strings never drive ordering; "9.00%" must not land between "80%" and
// "95%".
func rawValue(r *models.MAssetRecord, key string) *float64 {
	switch key {
	case "current_price":
		return r.RawCurrentPrice
	case "rsi":
		return r.RawRSI
	case "weekly_rsi":
		return r.RawWeeklyRSI
	case "monthly_rsi":
		return r.RawMonthlyRSI
	case "one_day_return":
		return r.RawOneDayReturn
	case "one_week_return":
		return r.RawOneWeekReturn
	case "one_month_return":
		return r.RawOneMonthReturn
	case "three_month_return":
		return r.RawThreeMonthReturn
	case "six_month_return":
		return r.RawSixMonthReturn
	case "one_year_return":
		return r.RawOneYearReturn
	case "two_year_return":
		return r.RawTwoYearReturn
	case "two_year_nifty_return":
		return r.RawTwoYearNiftyReturn
	case "price_to_earning":
		return r.RawPriceToEarning
	case "nifty_price_to_earning":
		return r.RawNiftyPriceToEarning
	case "last_day_volume":
		return r.RawLastDayVolume
	case "volatility":
		return r.RawVolatility
	case "discount":
		return r.RawDiscount
	default:
		return nil
	}
}

// -----------------------------------------------------------------------------

// ValidSortKey reports whether a key is sortable.
func ValidSortKey(key string) bool {
	switch key {
	case "", "ticker",
		"current_price", "rsi", "weekly_rsi", "monthly_rsi",
		"one_day_return", "one_week_return", "one_month_return",
		"three_month_return", "six_month_return", "one_year_return",
		"two_year_return", "two_year_nifty_return", "price_to_earning",
		"nifty_price_to_earning", "last_day_volume", "volatility", "discount":
		return true
	}
	return false
}

// -----------------------------------------------------------------------------

// Sort stores the spec and reorders the current records. The spec survives
// subsequent fetches.
func (c *Container) Sort(key, direction string) error {
	if !ValidSortKey(key) {
		return ErrInvalidSortKey
	}
	if direction != models.SortAsc && direction != models.SortDesc {
		direction = models.SortAsc
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sortSpec = models.MSortSpec{Key: key, Direction: direction}
	c.applySortLocked()
	return nil
}

// -----------------------------------------------------------------------------

// applySortLocked orders records by the stored spec. Records with a nil raw
// value sink to the end whichever direction is asked; ties keep their
// current relative order.
func (c *Container) applySortLocked() {
	key := c.sortSpec.Key
	if key == "" {
		return
	}

	desc := c.sortSpec.Direction == models.SortDesc

	if key == "ticker" {
		sort.SliceStable(c.records, func(i, j int) bool {
			a, b := strings.ToUpper(c.records[i].Ticker), strings.ToUpper(c.records[j].Ticker)
			if desc {
				return a > b
			}
			return a < b
		})
		return
	}

	sort.SliceStable(c.records, func(i, j int) bool {
		a := rawValue(&c.records[i], key)
		b := rawValue(&c.records[j], key)

		if a == nil && b == nil {
			return false
		}
		if a == nil {
			return false // nulls last
		}
		if b == nil {
			return true
		}
		if desc {
			return *a > *b
		}
		return *a < *b
	})
}
