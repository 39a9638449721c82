package service

import (
	"encoding/json"
	"fmt"

	"github.com/nutrilens/backend/internal/metabolic"
	"github.com/nutrilens/backend/internal/types"
)

// primaryPayload is the exact payload shape for a primary analysis call.
type primaryPayload struct {
	FoodQuery      string                `json:"food_query"`
	UserProfile    types.AnalysisProfile `json:"user_profile"`
	Mode           types.AnalysisMode    `json:"mode"`
	DownloadReport bool                  `json:"download_report"`
}

// deepPayload is the exact payload shape for a deep-analysis call.
type deepPayload struct {
	FoodData           *types.FoodAnalysis      `json:"food_data"`
	UserProfile        types.AnalysisProfile    `json:"user_profile"`
	DietHistorySummary types.DietHistorySummary `json:"diet_history_summary"`
}

// placeholderDietHistory is the fixed dietary baseline used until a real
// intake tracker exists.
var placeholderDietHistory = types.DietHistorySummary{
	AvgDailyCalories: 2000,
	AvgDailyProtein:  70,
	AvgDailySugar:    40,
	AvgDailyFiber:    20,
	AvgDailySodium:   2300,
}

// mergedProfile combines the raw profile with freshly computed metabolic
// metrics. Metrics are recomputed on every request.
func mergedProfile(profile types.UserProfile) types.AnalysisProfile {
	return types.AnalysisProfile{
		UserProfile:      profile,
		MetabolicMetrics: metabolic.Calculate(profile),
	}
}

func newPrimaryPayload(query string, profile types.UserProfile, mode types.AnalysisMode, downloadReport bool) *primaryPayload {
	return &primaryPayload{
		FoodQuery:      query,
		UserProfile:    mergedProfile(profile),
		Mode:           mode,
		DownloadReport: downloadReport,
	}
}

func newDeepPayload(food *types.FoodAnalysis, profile types.UserProfile) *deepPayload {
	return &deepPayload{
		FoodData:           food,
		UserProfile:        mergedProfile(profile),
		DietHistorySummary: placeholderDietHistory,
	}
}

func marshalPayload(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return body, nil
}
