package analytics

import (
	"math"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/pkg/expiry"
)

const (
	// UnitCost is the assumed value of every item that did not go to waste.
	// It is a placeholder, not a pricing model.
	UnitCost = 3.0

	// BaselineWasteRate is the household waste rate the profile compares against.
	BaselineWasteRate = 30.0

	BucketExpired = "expired"
	Bucket0To3    = "0-3"
	Bucket4To7    = "4-7"
	Bucket8To14   = "8-14"
	Bucket15Plus  = "15+"
)

// Every function in this file is pure: results depend only on the arguments
// and the input slices are never modified.

// WindowItems keeps the items added within the last days days.
func WindowItems(items []entities.Item, days int, now time.Time) []entities.Item {
	start := now.Add(-time.Duration(days) * 24 * time.Hour)
	out := []entities.Item{}
	for _, it := range items {
		if !it.AddedDate.Before(start) {
			out = append(out, it)
		}
	}
	return out
}

func ExpiredCount(items []entities.Item, now time.Time) int {
	n := 0
	for _, it := range items {
		if expiry.IsExpired(it.ExpiryDate.Time, now) {
			n++
		}
	}
	return n
}

// WastePercentage is expired/total*100, or 0 for an empty list.
func WastePercentage(items []entities.Item, now time.Time) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(ExpiredCount(items, now)) / float64(len(items)) * 100
}

func MoneySaved(items []entities.Item, now time.Time) float64 {
	return float64(len(items)-ExpiredCount(items, now)) * UnitCost
}

// FormatMoney renders amount in the ISO currency code, defaulting to USD.
func FormatMoney(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}

// mostFrequent returns the key with the highest count. Ties go to the key
// seen first.
func mostFrequent(keys []string) string {
	counts := make(map[string]int, len(keys))
	var order []string
	for _, k := range keys {
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	best, bestCount := domain.NoneSentinel, 0
	for _, k := range order {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

// TopWastedItem names the item that expired most often.
func TopWastedItem(items []entities.Item, now time.Time) string {
	var names []string
	for _, it := range items {
		if expiry.IsExpired(it.ExpiryDate.Time, now) {
			names = append(names, it.Name)
		}
	}
	return mostFrequent(names)
}

// BestShoppingDay is the weekday, in now's location, on which most items were added.
func BestShoppingDay(items []entities.Item, now time.Time) string {
	days := make([]string, 0, len(items))
	for _, it := range items {
		days = append(days, it.AddedDate.In(now.Location()).Weekday().String())
	}
	return mostFrequent(days)
}

func TrendLabel(wasteRatePercent float64) string {
	switch {
	case wasteRatePercent < 20:
		return domain.TrendExcellent
	case wasteRatePercent < 40:
		return domain.TrendGood
	default:
		return domain.TrendNeedsImprovement
	}
}

// CategoryHistogram counts expired items per category, in first-seen order.
// Unlike the other histograms it ignores items that have not expired.
func CategoryHistogram(items []entities.Item, now time.Time) []domain.CategoryCount {
	out := []domain.CategoryCount{}
	index := map[string]int{}
	for _, it := range items {
		if !expiry.IsExpired(it.ExpiryDate.Time, now) {
			continue
		}
		i, ok := index[it.Category]
		if !ok {
			i = len(out)
			index[it.Category] = i
			out = append(out, domain.CategoryCount{Category: it.Category})
		}
		out[i].Count++
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DailyTrend returns one point per calendar day for the last days days, oldest
// first. Wasted and saved are judged as of now, not as of that day.
func DailyTrend(items []entities.Item, days int, now time.Time) []domain.DailyPoint {
	if days <= 0 {
		return []domain.DailyPoint{}
	}
	loc := now.Location()
	out := make([]domain.DailyPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		point := domain.DailyPoint{
			Date:  day.Format("2006-01-02"),
			Label: day.Format("Jan 2"),
		}
		for _, it := range items {
			if !sameDay(it.AddedDate.In(loc), day) {
				continue
			}
			if expiry.IsExpired(it.ExpiryDate.Time, now) {
				point.Wasted++
			} else {
				point.Saved++
			}
		}
		out = append(out, point)
	}
	return out
}

// ExpirationBuckets partitions items by days until expiry.
func ExpirationBuckets(items []entities.Item, now time.Time) []domain.ExpirationBucket {
	out := []domain.ExpirationBucket{
		{Label: BucketExpired},
		{Label: Bucket0To3},
		{Label: Bucket4To7},
		{Label: Bucket8To14},
		{Label: Bucket15Plus},
	}
	for _, it := range items {
		days := expiry.DaysUntil(it.ExpiryDate.Time, now)
		switch {
		case expiry.IsExpired(it.ExpiryDate.Time, now):
			out[0].Count++
		case days <= 3:
			out[1].Count++
		case days <= 7:
			out[2].Count++
		case days <= 14:
			out[3].Count++
		default:
			out[4].Count++
		}
	}
	return out
}

// MonthlyComparison counts, for each of the last monthCount calendar months
// (oldest first), the items added that month which are expired now.
func MonthlyComparison(items []entities.Item, monthCount int, now time.Time) []domain.MonthlyPoint {
	if monthCount <= 0 {
		return []domain.MonthlyPoint{}
	}
	loc := now.Location()
	out := make([]domain.MonthlyPoint, 0, monthCount)
	for i := monthCount - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0)
		point := domain.MonthlyPoint{Month: start.Format("Jan"), Year: start.Year()}
		for _, it := range items {
			added := it.AddedDate.Time
			if added.Before(start) || !added.Before(end) {
				continue
			}
			if expiry.IsExpired(it.ExpiryDate.Time, now) {
				point.Wasted++
			}
		}
		out = append(out, point)
	}
	return out
}

// DaysActive counts whole days since the first item was added, at least 1.
func DaysActive(items []entities.Item, now time.Time) int {
	if len(items) == 0 {
		return 0
	}
	first := items[0].AddedDate.Time
	for _, it := range items[1:] {
		if it.AddedDate.Before(first) {
			first = it.AddedDate.Time
		}
	}
	days := int(math.Floor(now.Sub(first).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// WasteReduced is how far the current waste rate sits below the baseline.
func WasteReduced(items []entities.Item, now time.Time) float64 {
	if len(items) == 0 {
		return 0
	}
	return math.Max(0, BaselineWasteRate-WastePercentage(items, now))
}
