package api

import "github.com/nutrilens/backend/internal/types"

// CreateSessionRequest opens a new analysis session, optionally seeding the
// user profile.
type CreateSessionRequest struct {
	UserProfile *types.UserProfile `json:"user_profile,omitempty"`
}

// AnalyzeRequest is the body of a primary analysis call.
type AnalyzeRequest struct {
	FoodQuery      string             `json:"food_query"`
	UserProfile    types.UserProfile  `json:"user_profile" binding:"required"`
	Mode           types.AnalysisMode `json:"mode"`
	DownloadReport bool               `json:"download_report"`
	ImageData      string             `json:"image_data,omitempty"`
}

// DeepAnalyzeRequest triggers the preventive-health report for the current
// analysis.
type DeepAnalyzeRequest struct {
	UserProfile types.UserProfile `json:"user_profile" binding:"required"`
}

// AudioRequest asks for a spoken rendition of a summary text.
type AudioRequest struct {
	Text string `json:"text" binding:"required"`
}

// QuickScanRequest asks for a best-effort macro estimate.
type QuickScanRequest struct {
	FoodName string `json:"food_name" binding:"required"`
}
