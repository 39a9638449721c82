package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/types"
)

// AnalysisRecord is the durable archive row written for every successful
// primary analysis. The full response is kept as JSON so the archive can
// replay old reports without re-fetching.
type AnalysisRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID    uuid.UUID `gorm:"type:uuid;index;not null" json:"session_id"`
	FoodQuery    string    `gorm:"size:512;not null" json:"food_query"`
	Mode         string    `gorm:"size:32;not null" json:"mode"`
	Calories     float64   `gorm:"type:float" json:"calories"`
	HealthScore  float64   `gorm:"type:float" json:"health_score"`
	ResponseJSON string    `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate assigns the record ID.
func (r *AnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewAnalysisRecord builds an archive row from a completed response.
func NewAnalysisRecord(sessionID uuid.UUID, query string, mode types.AnalysisMode, resp *types.AnalysisResponse) (*AnalysisRecord, error) {
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}

	rec := &AnalysisRecord{
		SessionID:    sessionID,
		FoodQuery:    query,
		Mode:         string(mode),
		ResponseJSON: string(body),
	}
	if resp.FoodAnalysis != nil {
		rec.Calories = resp.FoodAnalysis.Calories
		rec.HealthScore = resp.FoodAnalysis.HealthScore
	}
	return rec, nil
}

// Response decodes the archived response body.
func (r *AnalysisRecord) Response() (*types.AnalysisResponse, error) {
	var resp types.AnalysisResponse
	if err := json.Unmarshal([]byte(r.ResponseJSON), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
