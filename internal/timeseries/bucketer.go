// Package timeseries bins records into fixed-width trend buckets. Every
// series is fully populated: empty intervals are emitted with a zero count so
// consumers never handle sparse output.
package timeseries

import (
	"fmt"
	"time"

	"opsmetrics-service/internal/model"
)

// WeekStart anchors weekly buckets to the Sunday containing their anchor
// date. The dashboard's week boundaries depend on this staying fixed.
const WeekStart = time.Sunday

const (
	DailyWindowDays     = 30
	WeeklyWindowWeeks   = 8
	MonthlyWindowMonths = 12
)

// Bucket produces the series for one granularity. Bucket boundaries are
// computed in the reference instant's location; a record with no effective
// timestamp, or one outside the granularity's window, lands in no bucket.
func Bucket(records []model.NormalizedRecord, granularity model.Granularity, reference time.Time) ([]model.TimeBucket, error) {
	switch granularity {
	case model.GranularityHour:
		return hourOfDay(records, reference), nil
	case model.GranularityDay:
		return daily(records, reference), nil
	case model.GranularityWeek:
		return weekly(records, reference), nil
	case model.GranularityMonth:
		return monthly(records, reference), nil
	default:
		return nil, fmt.Errorf("unknown granularity %q", granularity)
	}
}

// hourOfDay ignores dates entirely: records are binned by local time of day
// for a typical-day load profile. Interval instants are anchored to the
// reference day so the half-open contract still holds.
func hourOfDay(records []model.NormalizedRecord, reference time.Time) []model.TimeBucket {
	loc := reference.Location()
	day := midnight(reference, loc)

	buckets := make([]model.TimeBucket, 24)
	for h := 0; h < 24; h++ {
		start := day.Add(time.Duration(h) * time.Hour)
		buckets[h] = model.TimeBucket{
			Label: fmt.Sprintf("%02d:00", h),
			Start: start,
			End:   start.Add(time.Hour),
		}
	}

	for _, rec := range records {
		ts := rec.EffectiveTimestamp()
		if ts == nil {
			continue
		}
		buckets[ts.In(loc).Hour()].Count++
	}
	return buckets
}

func daily(records []model.NormalizedRecord, reference time.Time) []model.TimeBucket {
	loc := reference.Location()
	last := midnight(reference, loc)

	buckets := make([]model.TimeBucket, DailyWindowDays)
	for i := range buckets {
		start := last.AddDate(0, 0, i-(DailyWindowDays-1))
		buckets[i] = model.TimeBucket{
			Label: start.Format("Mon 2"),
			Start: start,
			End:   start.AddDate(0, 0, 1),
		}
	}

	fill(buckets, records, loc)
	return buckets
}

func weekly(records []model.NormalizedRecord, reference time.Time) []model.TimeBucket {
	loc := reference.Location()
	day := midnight(reference, loc)
	currentWeek := day.AddDate(0, 0, -int(day.Weekday()-WeekStart))

	buckets := make([]model.TimeBucket, WeeklyWindowWeeks)
	for i := range buckets {
		start := currentWeek.AddDate(0, 0, -7*(WeeklyWindowWeeks-1-i))
		buckets[i] = model.TimeBucket{
			Label: fmt.Sprintf("Week %d", i+1),
			Start: start,
			End:   start.AddDate(0, 0, 7),
		}
	}

	fill(buckets, records, loc)
	return buckets
}

func monthly(records []model.NormalizedRecord, reference time.Time) []model.TimeBucket {
	loc := reference.Location()
	year, month, _ := reference.In(loc).Date()

	buckets := make([]model.TimeBucket, MonthlyWindowMonths)
	for i := range buckets {
		start := time.Date(year, month+time.Month(i-(MonthlyWindowMonths-1)), 1, 0, 0, 0, 0, loc)
		buckets[i] = model.TimeBucket{
			Label: start.Format("Jan"),
			Start: start,
			End:   start.AddDate(0, 1, 0),
		}
	}

	fill(buckets, records, loc)
	return buckets
}

// fill tallies each record into the bucket whose half-open interval contains
// its effective timestamp. Buckets must be contiguous and sorted.
func fill(buckets []model.TimeBucket, records []model.NormalizedRecord, loc *time.Location) {
	for _, rec := range records {
		ts := rec.EffectiveTimestamp()
		if ts == nil {
			continue
		}
		local := ts.In(loc)
		for i := range buckets {
			if !local.Before(buckets[i].Start) && local.Before(buckets[i].End) {
				buckets[i].Count++
				break
			}
		}
	}
}

func midnight(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
