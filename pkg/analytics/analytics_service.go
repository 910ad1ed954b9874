package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/expiry"
	"wastenot/pkg/item"
)

type (
	AnalyticsService interface {
		GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error)
		GetReport(ctx context.Context, days int) (domain.AnalyticsReport, error)
		GetProfileStats(ctx context.Context) (domain.ProfileStatsResponse, error)
	}

	analyticsService struct {
		state *appstate.State
		loc   *time.Location
		now   func() time.Time
	}
)

// NewAnalyticsService reports calendar days and weekdays in loc.
func NewAnalyticsService(state *appstate.State, loc *time.Location) AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &analyticsService{
		state: state,
		loc:   loc,
		now:   time.Now,
	}
}

func (s *analyticsService) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *analyticsService) snapshot(ctx context.Context) (appstate.Snapshot, error) {
	if err := s.state.Reload(ctx); err != nil {
		return appstate.Snapshot{}, err
	}
	return s.state.Snapshot(), nil
}

func (s *analyticsService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}
	now := s.clock()
	return Dashboard(snap.Items, len(snap.Recipes), now), nil
}

// Dashboard summarizes the inventory for the landing page.
func Dashboard(items []entities.Item, recipesFound int, now time.Time) domain.DashboardStatsResponse {
	var soon []entities.Item
	expired := 0
	for _, it := range items {
		switch expiry.Classify(it.ExpiryDate.Time, now) {
		case expiry.ExpiringSoon:
			soon = append(soon, it)
		case expiry.Expired:
			expired++
		}
	}
	return domain.DashboardStatsResponse{
		TotalItems:    len(items),
		ExpiringSoon:  len(soon),
		ExpiredItems:  expired,
		RecipesFound:  recipesFound,
		RecentItems:   item.ToItemResponses(item.MostRecent(items, domain.DefaultRecentItems), now),
		ExpiringItems: item.ToItemResponses(soonestFirst(soon), now),
	}
}

func soonestFirst(items []entities.Item) []entities.Item {
	out := append([]entities.Item{}, items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryDate.Before(out[j].ExpiryDate.Time)
	})
	return out
}

func (s *analyticsService) GetReport(ctx context.Context, days int) (domain.AnalyticsReport, error) {
	if days < 1 || days > domain.MaxAnalyticsPeriod {
		return domain.AnalyticsReport{}, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidPeriod)
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.AnalyticsReport{}, err
	}
	currencyCode := snap.Preferences.String(entities.PrefCurrency, "USD")
	return Report(snap.Items, len(snap.Recipes), days, currencyCode, s.clock()), nil
}

// Report builds the analytics view. Headline metrics and insights cover the
// items added in the window; the charts cover the whole inventory.
func Report(items []entities.Item, recipesFound, days int, currencyCode string, now time.Time) domain.AnalyticsReport {
	window := WindowItems(items, days, now)
	waste := WastePercentage(window, now)
	saved := MoneySaved(window, now)

	insights := domain.Insights{
		HasData:          len(window) > 0,
		TopWastedItem:    domain.NoneSentinel,
		BestShoppingDay:  domain.NoneSentinel,
		ImprovementTrend: domain.NoneSentinel,
		RecipesFound:     recipesFound,
	}
	if insights.HasData {
		insights.ImprovementTrend = TrendLabel(waste)
		insights.TopWastedItem = TopWastedItem(window, now)
		insights.BestShoppingDay = BestShoppingDay(window, now)
	}

	return domain.AnalyticsReport{
		PeriodDays:        days,
		TotalItems:        len(window),
		WastedItems:       ExpiredCount(window, now),
		WastePercentage:   waste,
		MoneySaved:        saved,
		MoneySavedDisplay: FormatMoney(saved, currencyCode),
		Insights:          insights,
		CategoryHistogram: CategoryHistogram(items, now),
		DailyTrend:        DailyTrend(items, days, now),
		ExpirationBuckets: ExpirationBuckets(items, now),
		MonthlyComparison: MonthlyComparison(items, domain.DefaultMonthCount, now),
	}
}

func (s *analyticsService) GetProfileStats(ctx context.Context) (domain.ProfileStatsResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.ProfileStatsResponse{}, err
	}
	now := s.clock()
	return domain.ProfileStatsResponse{
		TotalItems:   len(snap.Items),
		DaysActive:   DaysActive(snap.Items, now),
		WasteReduced: WasteReduced(snap.Items, now),
	}, nil
}
