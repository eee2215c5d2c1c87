package indicators

import "time"

// -----------------------------------------------------------------------------
// Downsampling
// -----------------------------------------------------------------------------

// WeeklyCloses collapses a chronological daily series to one close per ISO
// week (the week's last trading day).
func WeeklyCloses(timestamps []int64, closes []float64) []float64 {
	return lastClosePerBucket(timestamps, closes, func(t time.Time) int {
		year, week := t.ISOWeek()
		return year*100 + week
	})
}

// -----------------------------------------------------------------------------

// MonthlyCloses collapses a chronological daily series to one close per
// calendar month.
func MonthlyCloses(timestamps []int64, closes []float64) []float64 {
	return lastClosePerBucket(timestamps, closes, func(t time.Time) int {
		return t.Year()*100 + int(t.Month())
	})
}

// -----------------------------------------------------------------------------

// lastClosePerBucket walks the series in order and keeps each bucket's final
// close. Timestamps and closes must be aligned; a length mismatch yields nil.
func lastClosePerBucket(timestamps []int64, closes []float64, bucket func(time.Time) int) []float64 {
	if len(timestamps) != len(closes) || len(closes) == 0 {
		return nil
	}

	var out []float64
	prevKey := 0
	for i, ts := range timestamps {
		key := bucket(time.Unix(ts, 0).UTC())
		if len(out) == 0 || key != prevKey {
			out = append(out, closes[i])
			prevKey = key
		} else {
			out[len(out)-1] = closes[i]
		}
	}
	return out
}
