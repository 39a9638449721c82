package service

import (
	"context"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/types"
)

// StructuredRequest is one schema-constrained generation call.
type StructuredRequest struct {
	System      string
	Prompt      string
	ImageData   string // optional base64-encoded JPEG
	Schema      *Schema
	Temperature float64
}

// AIProvider is a generative backend that accepts a schema and returns
// schema-conformant structured data. The gateway is written against this
// interface so providers are swappable without changing callers.
type AIProvider interface {
	// GenerateStructured issues one generation call and unmarshals the
	// structured JSON response into out.
	GenerateStructured(ctx context.Context, req StructuredRequest, out any) error

	// SynthesizeSpeech converts text to headerless 16-bit mono PCM samples.
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

// AnalyzeInput is the caller-supplied portion of a primary analysis request.
type AnalyzeInput struct {
	Query          string
	Profile        types.UserProfile
	Mode           types.AnalysisMode
	DownloadReport bool
	ImageData      string
}

// IAnalysisService defines the operations the HTTP layer depends on.
type IAnalysisService interface {
	Analyze(ctx context.Context, sessionID string, in AnalyzeInput) (*types.AnalysisResponse, error)
	AnalyzeDeep(ctx context.Context, sessionID string, profile types.UserProfile) (*types.PreventiveHealthData, error)
	SynthesizeSummaryAudio(ctx context.Context, text string) (string, error)
	QuickScan(ctx context.Context, foodName string) *types.MacroEstimate
	History(ctx context.Context, sessionID string) ([]*types.AnalysisResponse, error)
	ArchivedAnalyses(ctx context.Context, sessionID string) ([]models.AnalysisRecord, error)
	ClearData(ctx context.Context, sessionID string) error
}
