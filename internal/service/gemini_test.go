package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilens/backend/internal/types"
)

// newTestGeminiService points the provider at a local test server.
func newTestGeminiService(t *testing.T, handler http.Handler) *GeminiService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_API_KEY_FILE", "")
	t.Setenv("GEMINI_API_URL", srv.URL)
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("GEMINI_TTS_MODEL", "")

	svc, err := NewGeminiService()
	require.NoError(t, err)
	return svc
}

func candidateEnvelope(text string) []byte {
	envelope := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	body, _ := json.Marshal(envelope)
	return body
}

func TestGenerateStructuredParsesResponse(t *testing.T) {
	var captured geminiRequest
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write(candidateEnvelope(`{"calories":52,"protein_g":0.3,"carbs_g":14,"fat_g":0.2}`))
	}))

	var estimate types.MacroEstimate
	err := svc.GenerateStructured(context.Background(), StructuredRequest{
		System:      quickScanInstruction,
		Prompt:      "apple",
		Schema:      quickScanSchema(),
		Temperature: 0,
	}, &estimate)

	require.NoError(t, err)
	assert.InDelta(t, 52, estimate.Calories, 0.001)

	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMIMEType)
	require.NotNil(t, captured.GenerationConfig.ResponseSchema)
	require.NotNil(t, captured.SystemInstruction)
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "apple", captured.Contents[0].Parts[0].Text)
}

func TestGenerateStructuredAttachesImagePart(t *testing.T) {
	var captured geminiRequest
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write(candidateEnvelope(`{}`))
	}))

	var out map[string]any
	err := svc.GenerateStructured(context.Background(), StructuredRequest{
		Prompt:    "what is in this photo",
		ImageData: "aGVsbG8=",
		Schema:    quickScanSchema(),
	}, &out)

	require.NoError(t, err)
	require.Len(t, captured.Contents[0].Parts, 2)
	part := captured.Contents[0].Parts[1]
	require.NotNil(t, part.InlineData)
	assert.Equal(t, "image/jpeg", part.InlineData.MimeType)
	assert.Equal(t, "aGVsbG8=", part.InlineData.Data)
}

func TestGenerateStructuredEmptyCandidates(t *testing.T) {
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))

	var out map[string]any
	err := svc.GenerateStructured(context.Background(), StructuredRequest{Prompt: "apple"}, &out)
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestGenerateStructuredNonObjectText(t *testing.T) {
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateEnvelope("I cannot answer that."))
	}))

	var out map[string]any
	err := svc.GenerateStructured(context.Background(), StructuredRequest{Prompt: "apple"}, &out)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, CategoryDataError, Classify(err).Category)
}

func TestGenerateStructuredProviderStatus(t *testing.T) {
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Resource has been exhausted"}}`))
	}))

	var out map[string]any
	err := svc.GenerateStructured(context.Background(), StructuredRequest{Prompt: "apple"}, &out)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
	assert.Equal(t, CategoryRateLimited, Classify(err).Category)
}

func TestGenerateStructuredBlockedPrompt(t *testing.T) {
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))

	var out map[string]any
	err := svc.GenerateStructured(context.Background(), StructuredRequest{Prompt: "apple"}, &out)

	require.Error(t, err)
	assert.Equal(t, CategoryContentBlocked, Classify(err).Category)
}

func TestSynthesizeSpeechDecodesPCM(t *testing.T) {
	pcm := []byte{0x10, 0x20, 0x30, 0x40}
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash-preview-tts:generateContent", r.URL.Path)

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, []string{"AUDIO"}, req.GenerationConfig.ResponseModalities)
		require.NotNil(t, req.GenerationConfig.SpeechConfig)
		assert.Equal(t, "Kore", req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)

		envelope := map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"parts": []map[string]any{
							{"inlineData": map[string]any{
								"mimeType": "audio/L16;codec=pcm;rate=24000",
								"data":     base64.StdEncoding.EncodeToString(pcm),
							}},
						},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(envelope)
	}))

	got, err := svc.SynthesizeSpeech(context.Background(), "read this")
	require.NoError(t, err)
	assert.Equal(t, pcm, got)
}

func TestSynthesizeSpeechWithoutAudioPart(t *testing.T) {
	svc := newTestGeminiService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateEnvelope("no audio here"))
	}))

	_, err := svc.SynthesizeSpeech(context.Background(), "read this")
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestNewGeminiServiceRequiresKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY_FILE", "")

	_, err := NewGeminiService()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
