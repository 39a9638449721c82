package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/sanitize"
	"github.com/nutrilens/backend/internal/types"
)

// AnalysisService orchestrates the full analysis flow: sanitize, compute
// metabolic metrics, build the provider payload, issue the schema-constrained
// call, classify failures and merge results into session state.
type AnalysisService struct {
	provider AIProvider
	sessions *SessionStore
	db       *gorm.DB
	images   *ImageArchive
}

// NewAnalysisService creates a new AnalysisService instance. db and images may
// be nil; archiving is then skipped.
func NewAnalysisService(provider AIProvider, sessions *SessionStore, db *gorm.DB, images *ImageArchive) *AnalysisService {
	return &AnalysisService{
		provider: provider,
		sessions: sessions,
		db:       db,
		images:   images,
	}
}

// Sessions exposes the underlying session store.
func (s *AnalysisService) Sessions() *SessionStore {
	return s.sessions
}

// Analyze runs one primary analysis. The returned error, if any, is always a
// *sanitize.SecurityError or a *ClassifiedError; raw provider failures never
// propagate. DownloadReport=true marks a report regeneration: the previous
// response's preventive attachment is preserved and history is not appended.
func (s *AnalysisService) Analyze(ctx context.Context, sessionID string, in AnalyzeInput) (*types.AnalysisResponse, error) {
	query, err := sanitize.Clean(in.Query)
	if err != nil {
		// Rejected before any network call.
		return nil, err
	}

	token, err := s.sessions.BeginAnalysis(ctx, sessionID)
	if err != nil {
		return nil, Classify(err)
	}

	history, _ := s.sessionHistory(ctx, sessionID)

	payload := newPrimaryPayload(query, in.Profile, in.Mode, in.DownloadReport)
	prompt, err := buildPrimaryPrompt(payload, history)
	if err != nil {
		return nil, Classify(err)
	}

	var resp types.AnalysisResponse
	callErr := s.provider.GenerateStructured(ctx, StructuredRequest{
		System:      primarySystemInstruction(in.Mode, in.DownloadReport),
		Prompt:      prompt,
		ImageData:   in.ImageData,
		Schema:      primaryAnalysisSchema(),
		Temperature: 0.2,
	}, &resp)
	if callErr != nil {
		classified := Classify(callErr)
		if recErr := s.sessions.RecordFailure(ctx, sessionID, classified.Message); recErr != nil {
			log.Printf("[AnalysisService] failed to record error on session %s: %v", sessionID, recErr)
		}
		return nil, classified
	}

	applied, err := s.sessions.CommitPrimary(ctx, sessionID, token, query, in.Mode, &resp, in.DownloadReport)
	if err != nil {
		return nil, Classify(err)
	}
	if !applied {
		// A newer analysis superseded this one; its result is discarded.
		log.Printf("[AnalysisService] discarding stale analysis result for session %s (token %d)", sessionID, token)
		return &resp, nil
	}

	if !in.DownloadReport && resp.Complete() {
		s.archiveAnalysis(ctx, sessionID, query, in.Mode, &resp)
	}

	if in.ImageData != "" && s.images.Enabled() {
		// Best-effort audit copy of the submitted photo.
		go func(data string) {
			archiveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := s.images.ArchivePhoto(archiveCtx, sessionID, data); err != nil {
				log.Printf("[AnalysisService] photo archive failed for session %s: %v", sessionID, err)
			}
		}(in.ImageData)
	}

	return &resp, nil
}

// AnalyzeDeep fetches the preventive-health report for the current analysis
// and attaches it in place. A failure leaves the displayed base analysis
// untouched.
func (s *AnalysisService) AnalyzeDeep(ctx context.Context, sessionID string, profile types.UserProfile) (*types.PreventiveHealthData, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, Classify(err)
	}
	if !state.Current.Complete() {
		return nil, ErrNoCurrentAnalysis
	}

	payload := newDeepPayload(state.Current.FoodAnalysis, profile)
	prompt, err := buildDeepPrompt(payload)
	if err != nil {
		return nil, Classify(err)
	}

	var data types.PreventiveHealthData
	callErr := s.provider.GenerateStructured(ctx, StructuredRequest{
		System:      deepSystemInstruction,
		Prompt:      prompt,
		Schema:      deepAnalysisSchema(),
		Temperature: 0.3,
	}, &data)
	if callErr != nil {
		classified := Classify(callErr)
		if recErr := s.sessions.RecordFailure(ctx, sessionID, classified.Message); recErr != nil {
			log.Printf("[AnalysisService] failed to record error on session %s: %v", sessionID, recErr)
		}
		return nil, classified
	}

	// Re-read so a primary analysis that finished meanwhile is not clobbered.
	state, err = s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, Classify(err)
	}
	if state.AttachDeepAnalysis(&data) {
		if err := s.sessions.Save(ctx, state); err != nil {
			return nil, Classify(err)
		}
	}

	return &data, nil
}

// SynthesizeSummaryAudio converts a report summary to spoken audio and returns
// the WAV container, base64-encoded for transport to the playback layer.
func (s *AnalysisService) SynthesizeSummaryAudio(ctx context.Context, text string) (string, error) {
	pcm, err := s.provider.SynthesizeSpeech(ctx, audioSummaryInstruction+text)
	if err != nil {
		return "", Classify(err)
	}
	return base64.StdEncoding.EncodeToString(wrapPCM(pcm)), nil
}

// QuickScan returns a best-effort macro estimate for a food name. It is the
// one operation permitted to swallow errors: any failure logs and yields nil
// because the estimate is a non-critical hint.
func (s *AnalysisService) QuickScan(ctx context.Context, foodName string) *types.MacroEstimate {
	var estimate types.MacroEstimate
	err := s.provider.GenerateStructured(ctx, StructuredRequest{
		System:      quickScanInstruction,
		Prompt:      foodName,
		Schema:      quickScanSchema(),
		Temperature: 0,
	}, &estimate)
	if err != nil {
		log.Printf("[AnalysisService] quick scan failed for %q: %v", foodName, err)
		return nil
	}
	return &estimate
}

// History returns the session's bounded recent-history list, most recent
// first.
func (s *AnalysisService) History(ctx context.Context, sessionID string) ([]*types.AnalysisResponse, error) {
	return s.sessionHistory(ctx, sessionID)
}

func (s *AnalysisService) sessionHistory(ctx context.Context, sessionID string) ([]*types.AnalysisResponse, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, Classify(err)
	}
	return state.History, nil
}

// ArchivedAnalyses lists the session's persisted archive rows, newest first.
func (s *AnalysisService) ArchivedAnalyses(ctx context.Context, sessionID string) ([]models.AnalysisRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}

	var records []models.AnalysisRecord
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sid).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list archived analyses: %w", err)
	}
	return records, nil
}

// ClearData performs the confirmed destructive reset of session state.
func (s *AnalysisService) ClearData(ctx context.Context, sessionID string) error {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Classify(err)
	}
	state.Clear()
	if err := s.sessions.Save(ctx, state); err != nil {
		return Classify(err)
	}
	return nil
}

func (s *AnalysisService) archiveAnalysis(ctx context.Context, sessionID, query string, mode types.AnalysisMode, resp *types.AnalysisResponse) {
	if s.db == nil {
		return
	}
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		log.Printf("[AnalysisService] skipping archive, invalid session id %q: %v", sessionID, err)
		return
	}
	record, err := models.NewAnalysisRecord(sid, query, mode, resp)
	if err != nil {
		log.Printf("[AnalysisService] failed to build archive record: %v", err)
		return
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		log.Printf("[AnalysisService] failed to archive analysis: %v", err)
	}
}
