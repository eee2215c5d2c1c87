package utils

import (
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar resolves trading days for a symbol's home exchange using
// scmhub/calendar. Crypto pairs trade continuously and always report open.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Crypto   bool
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// suffixToMIC maps exchange suffixes to ISO 10383 MIC codes understood by
// scmhub/calendar. Unqualified symbols default to NYSE.
var suffixToMIC = map[string]string{
	".NS": "xbom",
	".BO": "xbom",
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".AS": "xams",
	".MI": "xmil",
	".MC": "xmad",
	".SW": "xswx",
	".TO": "xtse",
	".T":  "xtks",
	".HK": "xhkg",
	".AX": "xasx",
	".KS": "xkrx",
	".SS": "xshg",
	".SZ": "xshe",
}

// -----------------------------------------------------------------------------

func GetCalendar(symbol string) *TradingCalendar {
	if IsCryptoPair(symbol) {
		return &TradingCalendar{Crypto: true, Timezone: time.UTC}
	}

	mic := "xnys"
	for suffix, m := range suffixToMIC {
		if strings.HasSuffix(symbol, suffix) {
			mic = m
			break
		}
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		// Simple fallback: Mon-Fri in New York time.
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

// IsCryptoPair recognizes crypto pairs by their ticker shape: trailing USD
// quote or a BTC/ETH token anywhere in the symbol.
func IsCryptoPair(symbol string) bool {
	s := strings.ToUpper(symbol)
	return strings.HasSuffix(s, "USD") || strings.Contains(s, "BTC") || strings.Contains(s, "ETH")
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Crypto {
		return true
	}
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}
	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenAt checks whether the market is open at a specific instant.
func (tc *TradingCalendar) IsOpenAt(t time.Time) bool {
	if tc.Crypto {
		return true
	}
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}
	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}
		hour, minute := t.Hour(), t.Minute()
		// 9:30 - 16:00 local exchange time
		return (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16
	}
	return tc.Calendar.IsOpen(t)
}
