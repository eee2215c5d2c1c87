package models

// ValueNA is the sentinel used for any formatted field with no data.
// Display fields are never left empty so sorting and rendering stay total.
const ValueNA = "N/A"

// -----------------------------------------------------------------------------
// MPricePoint - a single dated price, used for detail history
// -----------------------------------------------------------------------------

type MPricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// -----------------------------------------------------------------------------
// MPriceRange - min/max/current block from the summary provider
// -----------------------------------------------------------------------------

type MPriceRange struct {
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Current *float64 `json:"current"`
}

type MPriceRanges struct {
	Weekly    *MPriceRange `json:"weeklyRange,omitempty"`
	Monthly   *MPriceRange `json:"monthlyRange,omitempty"`
	Yearly    *MPriceRange `json:"yearlyRange,omitempty"`
	TwoYearly *MPriceRange `json:"twoYearlyRange,omitempty"`
}

// -----------------------------------------------------------------------------
// MAssetRecord - the canonical per-symbol snapshot
// -----------------------------------------------------------------------------

// MAssetRecord carries every value twice: formatted for display and raw for
// numeric sorting. Raw fields are nil when the value is unavailable; the
// matching formatted field then holds ValueNA.
type MAssetRecord struct {
	Ticker string `json:"ticker"`

	RecordDate   string `json:"record_date,omitempty"`
	CurrentPrice string `json:"current_price"`

	RSI        string `json:"rsi"`
	WeeklyRSI  string `json:"weekly_rsi"`
	MonthlyRSI string `json:"monthly_rsi"`

	OneDayReturn     string `json:"one_day_return"`
	OneWeekReturn    string `json:"one_week_return"`
	OneMonthReturn   string `json:"one_month_return"`
	ThreeMonthReturn string `json:"three_month_return"`
	SixMonthReturn   string `json:"six_month_return"`
	OneYearReturn    string `json:"one_year_return"`
	TwoYearReturn    string `json:"two_year_return"`

	TwoYearNiftyReturn  string `json:"two_year_nifty_return"`
	PriceToEarning      string `json:"price_to_earning"`
	NiftyPriceToEarning string `json:"nifty_price_to_earning"`

	LastDayVolume string `json:"last_day_volume"`
	Volatility    string `json:"volatility"`
	Discount      string `json:"discount"`

	FiftyTwoWeekHigh *float64 `json:"fifty_two_week_high"`

	RawCurrentPrice     *float64 `json:"raw_current_price"`
	RawRSI              *float64 `json:"raw_rsi"`
	RawWeeklyRSI        *float64 `json:"raw_weekly_rsi"`
	RawMonthlyRSI       *float64 `json:"raw_monthly_rsi"`
	RawOneDayReturn     *float64 `json:"raw_one_day_return"`
	RawOneWeekReturn    *float64 `json:"raw_one_week_return"`
	RawOneMonthReturn   *float64 `json:"raw_one_month_return"`
	RawThreeMonthReturn *float64 `json:"raw_three_month_return"`
	RawSixMonthReturn   *float64 `json:"raw_six_month_return"`
	RawOneYearReturn    *float64 `json:"raw_one_year_return"`
	RawTwoYearReturn    *float64 `json:"raw_two_year_return"`
	RawTwoYearNiftyReturn *float64 `json:"raw_two_year_nifty_return"`
	RawPriceToEarning     *float64 `json:"raw_price_to_earning"`
	RawNiftyPriceToEarning *float64 `json:"raw_nifty_price_to_earning"`
	RawLastDayVolume    *float64 `json:"raw_last_day_volume"`
	RawVolatility       *float64 `json:"raw_volatility"`
	RawDiscount         *float64 `json:"raw_discount"`

	AllPrices   []MPricePoint `json:"all_prices,omitempty"`
	PriceRanges *MPriceRanges `json:"price_ranges,omitempty"`
}

// -----------------------------------------------------------------------------

// NewEmptyAssetRecord returns the explicit "unavailable" record used when a
// symbol's fetch fails in the per-symbol flow. The collection keeps one record
// per tracked symbol, failures included.
func NewEmptyAssetRecord(symbol string) MAssetRecord {
	return MAssetRecord{
		Ticker:              symbol,
		CurrentPrice:        ValueNA,
		RSI:                 ValueNA,
		WeeklyRSI:           ValueNA,
		MonthlyRSI:          ValueNA,
		OneDayReturn:        ValueNA,
		OneWeekReturn:       ValueNA,
		OneMonthReturn:      ValueNA,
		ThreeMonthReturn:    ValueNA,
		SixMonthReturn:      ValueNA,
		OneYearReturn:       ValueNA,
		TwoYearReturn:       ValueNA,
		TwoYearNiftyReturn:  ValueNA,
		PriceToEarning:      ValueNA,
		NiftyPriceToEarning: ValueNA,
		LastDayVolume:       ValueNA,
		Volatility:          ValueNA,
		Discount:            ValueNA,
		AllPrices:           []MPricePoint{},
	}
}
