package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nutrilens/backend/internal/types"
)

// historyCapacity bounds the recent-history list.
const historyCapacity = 10

// sessionTTL is refreshed on every save.
const sessionTTL = 24 * time.Hour

// SessionState is the explicit per-session context object. All session
// mutation goes through its methods so the merge rules stay testable without
// a store.
type SessionState struct {
	ID           string                    `json:"id"`
	Profile      *types.UserProfile        `json:"profile,omitempty"`
	CurrentQuery string                    `json:"current_query,omitempty"`
	CurrentMode  types.AnalysisMode        `json:"current_mode,omitempty"`
	Current      *types.AnalysisResponse   `json:"current,omitempty"`
	LastError    string                    `json:"last_error,omitempty"`
	History      []*types.AnalysisResponse `json:"history,omitempty"`
	// Epoch fences stale completions: each primary analysis takes a token and
	// a completion commits only while its token is still current.
	Epoch     uint64    `json:"epoch"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyPrimary installs a fresh primary analysis as the current response and
// prepends it to history, evicting beyond capacity.
func (s *SessionState) ApplyPrimary(query string, mode types.AnalysisMode, resp *types.AnalysisResponse) {
	s.CurrentQuery = query
	s.CurrentMode = mode
	s.Current = resp
	s.LastError = ""
	s.History = append([]*types.AnalysisResponse{resp}, s.History...)
	if len(s.History) > historyCapacity {
		s.History = s.History[:historyCapacity]
	}
}

// ApplyReport installs a regenerated report response. If the previous current
// response carried preventive health data, it is copied onto the fresh
// response first so deep-analysis work survives report regeneration. Report
// responses do not enter history.
func (s *SessionState) ApplyReport(resp *types.AnalysisResponse) {
	if s.Current != nil && s.Current.PreventiveHealthData != nil && resp.PreventiveHealthData == nil {
		resp.PreventiveHealthData = s.Current.PreventiveHealthData
	}
	s.Current = resp
	s.LastError = ""
}

// AttachDeepAnalysis replaces the preventive health data on the current
// response in place, leaving every other field untouched. Returns false when
// there is no current response to attach to.
func (s *SessionState) AttachDeepAnalysis(data *types.PreventiveHealthData) bool {
	if s.Current == nil {
		return false
	}
	s.Current.PreventiveHealthData = data
	return true
}

// Clear is the destructive clear-data reset: query, result, error and history
// all go. Irreversible within the session.
func (s *SessionState) Clear() {
	s.CurrentQuery = ""
	s.CurrentMode = ""
	s.Current = nil
	s.LastError = ""
	s.History = nil
}

// SessionStore persists session state in Redis with a TTL.
type SessionStore struct {
	redis *redis.Client
}

// NewSessionStore creates a new SessionStore instance.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{redis: client}
}

func sessionKey(id string) string {
	return fmt.Sprintf("analysis:session:%s", id)
}

// Create initializes an empty session.
func (st *SessionStore) Create(ctx context.Context, profile *types.UserProfile) (*SessionState, error) {
	now := time.Now()
	state := &SessionState{
		ID:        uuid.New().String(),
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Get retrieves a session from Redis.
func (st *SessionStore) Get(ctx context.Context, id string) (*SessionState, error) {
	data, err := st.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &state, nil
}

// Save writes a session back to Redis, refreshing its TTL.
func (st *SessionStore) Save(ctx context.Context, state *SessionState) error {
	state.UpdatedAt = time.Now()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := st.redis.Set(ctx, sessionKey(state.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}

	return nil
}

// Delete removes a session from Redis.
func (st *SessionStore) Delete(ctx context.Context, id string) error {
	if err := st.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}

// BeginAnalysis stamps a new primary analysis with a monotonically increasing
// token. Taking a token supersedes any in-flight analysis on the session.
func (st *SessionStore) BeginAnalysis(ctx context.Context, id string) (uint64, error) {
	state, err := st.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	state.Epoch++
	if err := st.Save(ctx, state); err != nil {
		return 0, err
	}
	return state.Epoch, nil
}

// CommitPrimary applies a completed primary analysis only while its token is
// still current. A stale completion is discarded and reported via the bool.
func (st *SessionStore) CommitPrimary(ctx context.Context, id string, token uint64, query string, mode types.AnalysisMode, resp *types.AnalysisResponse, report bool) (bool, error) {
	state, err := st.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if state.Epoch != token {
		return false, nil
	}
	if report {
		state.ApplyReport(resp)
	} else {
		state.ApplyPrimary(query, mode, resp)
	}
	if err := st.Save(ctx, state); err != nil {
		return false, err
	}
	return true, nil
}

// RecordFailure stores the classified message for the UI without disturbing
// the already-displayed analysis.
func (st *SessionStore) RecordFailure(ctx context.Context, id string, message string) error {
	state, err := st.Get(ctx, id)
	if err != nil {
		return err
	}
	state.LastError = message
	return st.Save(ctx, state)
}
