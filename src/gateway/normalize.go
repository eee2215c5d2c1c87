package gateway

import (
	"strconv"
	"strings"

	"rsi-tracker/src/models"
)

// -----------------------------------------------------------------------------
// Summary normalization
// -----------------------------------------------------------------------------

// NormalizeSummary converts one provider summary block into the canonical
// record. The provider sends every value as a string, so each field lands
// twice: the display string as-is (or the N/A sentinel when blank) and the
// parsed float for numeric sorting.
func NormalizeSummary(entry models.MSummaryEntry) models.MAssetRecord {
	d := entry.Details
	rec := models.NewEmptyAssetRecord(entry.Symbol)

	rec.RecordDate = strings.TrimSpace(d.RecordDate)

	rec.CurrentPrice, rec.RawCurrentPrice = normalizeField(d.LastClosePrice)
	rec.LastDayVolume, rec.RawLastDayVolume = normalizeField(d.LastDayVolume)
	rec.Discount, rec.RawDiscount = normalizeField(d.DownFrom2YearHigh)

	rec.RSI, rec.RawRSI = normalizeField(d.DailyRSI)
	rec.WeeklyRSI, rec.RawWeeklyRSI = normalizeField(d.WeeklyRSI)
	rec.MonthlyRSI, rec.RawMonthlyRSI = normalizeField(d.MonthlyRSI)

	rec.OneWeekReturn, rec.RawOneWeekReturn = normalizeField(d.OneWeekReturns)
	rec.OneMonthReturn, rec.RawOneMonthReturn = normalizeField(d.OneMonthReturns)
	rec.OneYearReturn, rec.RawOneYearReturn = normalizeField(d.OneYearReturns)
	rec.TwoYearReturn, rec.RawTwoYearReturn = normalizeField(d.TwoYearReturns)
	rec.TwoYearNiftyReturn, rec.RawTwoYearNiftyReturn = normalizeField(d.TwoYNiftyReturns)

	rec.PriceToEarning, rec.RawPriceToEarning = normalizeField(d.PriceToEarning)
	rec.NiftyPriceToEarning, rec.RawNiftyPriceToEarning = normalizeField(d.NiftyPriceToEarning)

	if d.PriceRange != nil {
		rec.PriceRanges = &models.MPriceRanges{
			Weekly:    normalizeRange(d.PriceRange.WeeklyRange),
			Monthly:   normalizeRange(d.PriceRange.MonthlyRange),
			Yearly:    normalizeRange(d.PriceRange.YearlyRange),
			TwoYearly: normalizeRange(d.PriceRange.TwoYearlyRange),
		}
	}

	return rec
}

// -----------------------------------------------------------------------------

// normalizeField keeps the provider's display string and extracts a sortable
// float. Blank strings read as unavailable; an unparseable non-blank string
// keeps its text but sorts as null.
func normalizeField(value string) (string, *float64) {
	s := strings.TrimSpace(value)
	if s == "" {
		return models.ValueNA, nil
	}
	return s, ParseNumeric(s)
}

// -----------------------------------------------------------------------------

// ParseNumeric reads a float out of a display string, tolerating percent
// suffixes and thousands separators. Returns nil when no number is present.
func ParseNumeric(value string) *float64 {
	s := strings.TrimSpace(value)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == models.ValueNA {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// -----------------------------------------------------------------------------

func normalizeRange(r *models.MSummaryRange) *models.MPriceRange {
	if r == nil {
		return nil
	}
	return &models.MPriceRange{
		Min:     ParseNumeric(r.Min),
		Max:     ParseNumeric(r.Max),
		Current: ParseNumeric(r.Current),
	}
}
