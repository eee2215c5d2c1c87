package utils

import (
	"testing"
	"time"
)

// -----------------------------------------------------------------------------

func TestSameCalendarDay(t *testing.T) {
	day := func(y int, m time.Month, d, hh, mm, ss int) time.Time {
		return time.Date(y, m, d, hh, mm, ss, 0, time.Local)
	}

	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"same instant", day(2026, 8, 30, 12, 0, 0), day(2026, 8, 30, 12, 0, 0), true},
		{"morning and evening", day(2026, 8, 30, 0, 0, 1), day(2026, 8, 30, 23, 59, 59), true},
		{"two seconds across midnight", day(2026, 8, 30, 23, 59, 59), day(2026, 8, 31, 0, 0, 1), false},
		{"same day-of-month different month", day(2026, 7, 30, 12, 0, 0), day(2026, 8, 30, 12, 0, 0), false},
		{"same date different year", day(2025, 8, 30, 12, 0, 0), day(2026, 8, 30, 12, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameCalendarDay(tt.a, tt.b); got != tt.want {
				t.Errorf("SameCalendarDay(%v, %v) = %t, want %t", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestHoursSince(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"zero", 0, 0},
		{"rounds down", 3*time.Hour + 20*time.Minute, 3},
		{"rounds up", 3*time.Hour + 40*time.Minute, 4},
		{"just over a day", 25 * time.Hour, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp := now.Add(-tt.elapsed).UnixMilli()
			if got := HoursSince(stamp, now); got != tt.want {
				t.Errorf("HoursSince(%v ago) = %d, want %d", tt.elapsed, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  reliance ", "RELIANCE.NS"},
		{"tcs", "TCS.NS"},
		{"MSFT.BO", "MSFT.BO"},
		{"BRK-B", "BRK-B"},
		{"btcusd", "BTCUSD"},
		{"ETH-USD", "ETH-USD"},
		{"ethinr", "ETHINR"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeSymbol(tt.in); got != tt.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsCryptoPair(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"BTC-USD", true},
		{"btcusd", true},
		{"ETHINR", true},
		{"SOLUSD", true},
		{"RELIANCE.NS", false},
		{"AAPL", false},
	}

	for _, tt := range tests {
		if got := IsCryptoPair(tt.in); got != tt.want {
			t.Errorf("IsCryptoPair(%q) = %t, want %t", tt.in, got, tt.want)
		}
	}
}

// -----------------------------------------------------------------------------

func TestTradingCalendarCrypto(t *testing.T) {
	cal := GetCalendar("BTC-USD")
	if !cal.Crypto {
		t.Fatal("BTC-USD should resolve to the crypto calendar")
	}

	// Crypto trades every instant, weekends included.
	sunday := time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC)
	if !cal.IsTradingDay(sunday) || !cal.IsOpenAt(sunday) {
		t.Error("crypto calendar should always be open")
	}
}

func TestTradingCalendarEquity(t *testing.T) {
	cal := GetCalendar("RELIANCE.NS")
	if cal.Crypto {
		t.Fatal("RELIANCE.NS should not resolve to the crypto calendar")
	}
	if cal.Timezone == nil {
		t.Fatal("equity calendar must carry an exchange timezone")
	}

	// 2026-08-30 is a Sunday everywhere that matters here.
	sunday := time.Date(2026, 8, 30, 12, 0, 0, 0, cal.Timezone)
	if cal.IsTradingDay(sunday) {
		t.Error("Sunday should not be a trading day")
	}
	if cal.IsOpenAt(sunday) {
		t.Error("market should be closed on Sunday")
	}
}
