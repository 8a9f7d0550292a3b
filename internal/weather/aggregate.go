package weather

import (
	"sort"
	"time"
)

// representativeHour is the first UTC hour considered to describe a day.
const representativeHour = 12

// DayKey returns the UTC calendar date of ts.
// Buckets are UTC based, not local time: a sample at 22:00 in São Paulo
// (UTC-3) is counted on the following calendar day.
func DayKey(ts time.Time) string {
	return ts.UTC().Format(DateLayout)
}

// AggregateDaily collapses samples into one summary per UTC calendar day,
// ordered by date ascending. Input need not be sorted.
//
// Min/max are taken over every sample of the day. Description and icon come
// from the first sample (in input order) whose UTC hour is >= 12, falling
// back to the day's first sample. Empty input yields nil.
func AggregateDaily(samples []ForecastSample) []DailySummary {
	if len(samples) == 0 {
		return nil
	}

	buckets := make(map[string][]ForecastSample)
	for _, s := range samples {
		k := DayKey(s.Timestamp)
		buckets[k] = append(buckets[k], s)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]DailySummary, 0, len(keys))
	for _, k := range keys {
		days = append(days, summarizeDay(k, buckets[k]))
	}
	return days
}

func summarizeDay(date string, bucket []ForecastSample) DailySummary {
	minT, maxT := bucket[0].TemperatureC, bucket[0].TemperatureC
	for _, s := range bucket[1:] {
		if s.TemperatureC < minT {
			minT = s.TemperatureC
		}
		if s.TemperatureC > maxT {
			maxT = s.TemperatureC
		}
	}

	rep := representative(bucket)
	return DailySummary{
		Date:            date,
		MinTemperatureC: minT,
		MaxTemperatureC: maxT,
		Description:     rep.Description,
		IconCode:        rep.IconCode,
	}
}

func representative(bucket []ForecastSample) ForecastSample {
	for _, s := range bucket {
		if s.Timestamp.UTC().Hour() >= representativeHour {
			return s
		}
	}
	return bucket[0]
}
