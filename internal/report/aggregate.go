package report

import (
	"sort"
	"time"

	"github.com/sadopc/drivelog/internal/store"
)

// BucketSummary is the reduced view of one group of entries. Unlike the
// entry-level Metrics, bucket-level rates default to 0 when the denominator
// is 0; an empty bucket renders as zeros, not as missing data.
type BucketSummary struct {
	Key   string
	Label string

	TotalProfit   float64
	TotalEarnings float64
	TotalHours    float64
	TotalKm       float64
	EntryCount    int

	ProfitPerHour   float64
	EarningsPerHour float64
	AvgKm           float64
}

// Bucketer maps a parsed entry date to a grouping key and a key to a display
// label. Keys must sort lexicographically in chronological order.
type Bucketer struct {
	Key   func(time.Time) string
	Label func(string) string
}

var (
	ByWeek  = Bucketer{Key: WeekKey, Label: WeekLabel}
	ByMonth = Bucketer{Key: MonthKey, Label: MonthLabel}
	ByYear  = Bucketer{Key: YearKey, Label: YearLabel}
)

// GroupAndSum folds entries into per-bucket summaries. Entries with an
// unparseable date are skipped. The fold is order-independent; output is
// sorted ascending by key.
func GroupAndSum(entries []store.Entry, b Bucketer, costPerKm float64) []BucketSummary {
	groups := make(map[string]*BucketSummary)

	for _, e := range entries {
		date, ok := ParseDate(e.Date)
		if !ok {
			continue
		}
		key := b.Key(date)
		sum, ok := groups[key]
		if !ok {
			sum = &BucketSummary{Key: key, Label: b.Label(key)}
			groups[key] = sum
		}
		m := Compute(e, costPerKm)
		sum.TotalProfit += m.NetProfit
		sum.TotalEarnings += sanitize(e.TotalEarnings)
		sum.TotalHours += sanitize(e.HoursWorked)
		sum.TotalKm += sanitize(e.KmDriven)
		sum.EntryCount++
	}

	result := make([]BucketSummary, 0, len(groups))
	for _, sum := range groups {
		finishRates(sum)
		result = append(result, *sum)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

func finishRates(sum *BucketSummary) {
	if sum.TotalHours > 0 {
		sum.ProfitPerHour = sum.TotalProfit / sum.TotalHours
		sum.EarningsPerHour = sum.TotalEarnings / sum.TotalHours
	}
	if sum.EntryCount > 0 {
		sum.AvgKm = sum.TotalKm / float64(sum.EntryCount)
	}
}

// BestAndWorst returns the entries with the highest and lowest net profit.
// Entries with invalid dates are ignored. On ties the entry encountered
// first in input order wins; this is user-visible and must stay stable.
// Both results are nil when no entry qualifies.
func BestAndWorst(entries []store.Entry, costPerKm float64) (best, worst *store.Entry) {
	var bestProfit, worstProfit float64
	for i := range entries {
		if _, ok := ParseDate(entries[i].Date); !ok {
			continue
		}
		profit := Compute(entries[i], costPerKm).NetProfit
		if best == nil || profit > bestProfit {
			best = &entries[i]
			bestProfit = profit
		}
		if worst == nil || profit < worstProfit {
			worst = &entries[i]
			worstProfit = profit
		}
	}
	return best, worst
}

// PeriodStats summarizes an arbitrary set of entries. The average is per
// entry, not per calendar day: two entries on the same date count twice.
type PeriodStats struct {
	TotalProfit           float64
	AverageProfitPerEntry float64
	EntryCount            int
}

func PeriodStatistics(entries []store.Entry, costPerKm float64) PeriodStats {
	var stats PeriodStats
	for _, e := range entries {
		if _, ok := ParseDate(e.Date); !ok {
			continue
		}
		stats.TotalProfit += Compute(e, costPerKm).NetProfit
		stats.EntryCount++
	}
	if stats.EntryCount > 0 {
		stats.AverageProfitPerEntry = stats.TotalProfit / float64(stats.EntryCount)
	}
	return stats
}

// DayOfWeekBreakdown always returns exactly 7 buckets, Sunday..Saturday.
// Profit, earnings, km and the entry count accumulate over every valid-date
// entry; hours and the per-hour rates only count entries with tracked hours,
// so an untracked day cannot dilute an hourly figure. The exclusion is local
// to the hour rates, not global to the entry.
func DayOfWeekBreakdown(entries []store.Entry, costPerKm float64) [7]BucketSummary {
	var buckets [7]BucketSummary
	var hourProfit, hourEarnings [7]float64

	for i := range buckets {
		buckets[i].Key = DayOfWeekName(i)
		buckets[i].Label = DayOfWeekName(i)
	}

	for _, e := range entries {
		date, ok := ParseDate(e.Date)
		if !ok {
			continue
		}
		idx := DayOfWeekIndex(date)
		m := Compute(e, costPerKm)

		sum := &buckets[idx]
		sum.TotalProfit += m.NetProfit
		sum.TotalEarnings += sanitize(e.TotalEarnings)
		sum.TotalKm += sanitize(e.KmDriven)
		sum.EntryCount++

		if hours := sanitize(e.HoursWorked); hours > 0 {
			sum.TotalHours += hours
			hourProfit[idx] += m.NetProfit
			hourEarnings[idx] += sanitize(e.TotalEarnings)
		}
	}

	for i := range buckets {
		sum := &buckets[i]
		if sum.TotalHours > 0 {
			sum.ProfitPerHour = hourProfit[i] / sum.TotalHours
			sum.EarningsPerHour = hourEarnings[i] / sum.TotalHours
		}
		if sum.EntryCount > 0 {
			sum.AvgKm = sum.TotalKm / float64(sum.EntryCount)
		}
	}
	return buckets
}
