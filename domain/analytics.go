package domain

import (
	"errors"
)

const (
	DefaultAnalyticsPeriod = 7
	MaxAnalyticsPeriod     = 365
	DefaultMonthCount      = 3

	TrendExcellent        = "excellent"
	TrendGood             = "good"
	TrendNeedsImprovement = "needs-improvement"
)

var (
	MessageSuccessGetAnalytics    = "analytics retrieved successfully"
	MessageSuccessGetProfileStats = "profile statistics retrieved successfully"
	MessageFailedGetAnalytics     = "failed to retrieve analytics"
	MessageFailedGetProfileStats  = "failed to retrieve profile statistics"

	ErrInvalidPeriod = errors.New("period must be between 1 and 365 days")
)

type (
	DashboardStatsResponse struct {
		TotalItems    int            `json:"total_items"`
		ExpiringSoon  int            `json:"expiring_soon"`
		ExpiredItems  int            `json:"expired_items"`
		RecipesFound  int            `json:"recipes_found"`
		RecentItems   []ItemResponse `json:"recent_items"`
		ExpiringItems []ItemResponse `json:"expiring_items"`
	}

	CategoryCount struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}

	DailyPoint struct {
		Date   string `json:"date"`
		Label  string `json:"label"`
		Wasted int    `json:"wasted"`
		Saved  int    `json:"saved"`
	}

	ExpirationBucket struct {
		Label string `json:"label"`
		Count int    `json:"count"`
	}

	MonthlyPoint struct {
		Month  string `json:"month"`
		Year   int    `json:"year"`
		Wasted int    `json:"wasted"`
	}

	Insights struct {
		HasData          bool   `json:"has_data"`
		TopWastedItem    string `json:"top_wasted_item"`
		BestShoppingDay  string `json:"best_shopping_day"`
		ImprovementTrend string `json:"improvement_trend"`
		RecipesFound     int    `json:"recipes_found"`
	}

	AnalyticsReport struct {
		PeriodDays        int                `json:"period_days"`
		TotalItems        int                `json:"total_items"`
		WastedItems       int                `json:"wasted_items"`
		WastePercentage   float64            `json:"waste_percentage"`
		MoneySaved        float64            `json:"money_saved"`
		MoneySavedDisplay string             `json:"money_saved_display"`
		Insights          Insights           `json:"insights"`
		CategoryHistogram []CategoryCount    `json:"category_histogram"`
		DailyTrend        []DailyPoint       `json:"daily_trend"`
		ExpirationBuckets []ExpirationBucket `json:"expiration_buckets"`
		MonthlyComparison []MonthlyPoint     `json:"monthly_comparison"`
	}

	ProfileStatsResponse struct {
		TotalItems   int     `json:"total_items"`
		DaysActive   int     `json:"days_active"`
		WasteReduced float64 `json:"waste_reduced"`
	}
)
