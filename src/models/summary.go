package models

// -----------------------------------------------------------------------------
// MSummaryEntry - one per-symbol block from the batch summary endpoint
// -----------------------------------------------------------------------------

// The provider sends every numeric field as a string ("12.34", "" or absent).
// The gateway normalizes these into MAssetRecord once at the boundary.
type MSummaryEntry struct {
	Symbol  string          `json:"symbol"`
	Details MSummaryDetails `json:"details"`
}

type MSummaryDetails struct {
	RecordDate        string `json:"recordDate"`
	LastClosePrice    string `json:"lastClosePrice"`
	LastDayVolume     string `json:"lastDayVolume"`
	DownFrom2YearHigh string `json:"downFrom2YearHigh"`

	DailyRSI   string `json:"dailyRSI"`
	WeeklyRSI  string `json:"weeklyRSI"`
	MonthlyRSI string `json:"monthlyRSI"`

	OneWeekReturns  string `json:"1weekReturns"`
	OneMonthReturns string `json:"1monthReturns"`
	OneYearReturns  string `json:"1yearReturns"`
	TwoYearReturns  string `json:"2yearReturns"`
	TwoYNiftyReturns string `json:"2yNiftyReturns"`

	PriceToEarning      string `json:"priceToEarning"`
	NiftyPriceToEarning string `json:"niftyPriceToEarning"`

	PriceRange *MSummaryRanges `json:"priceRange"`
}

type MSummaryRanges struct {
	WeeklyRange    *MSummaryRange `json:"weeklyRange"`
	MonthlyRange   *MSummaryRange `json:"monthlyRange"`
	YearlyRange    *MSummaryRange `json:"yearlyRange"`
	TwoYearlyRange *MSummaryRange `json:"2yearlyRange"`
}

type MSummaryRange struct {
	Min     string `json:"min"`
	Max     string `json:"max"`
	Current string `json:"current"`
}
