package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// GeminiService talks to the Gemini generateContent REST API. It is the single
// integration point for all outbound provider calls.
type GeminiService struct {
	apiKey   string
	baseURL  string
	model    string
	ttsModel string
	client   *http.Client
}

// NewGeminiService creates a new GeminiService instance from the environment.
func NewGeminiService() (*GeminiService, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("GEMINI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	baseURL := os.Getenv("GEMINI_API_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	ttsModel := os.Getenv("GEMINI_TTS_MODEL")
	if ttsModel == "" {
		ttsModel = "gemini-2.5-flash-preview-tts"
	}

	return &GeminiService{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		model:    model,
		ttsModel: ttsModel,
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
	}, nil
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature        float64       `json:"temperature,omitempty"`
	ResponseMIMEType   string        `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema       `json:"responseSchema,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type geminiRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// generateContent issues one call against the given model and returns the
// decoded response envelope.
func (s *GeminiService) generateContent(ctx context.Context, model string, reqBody *geminiRequest) (*geminiResponse, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	if len(body) == 0 {
		return nil, ErrNoResponse
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &MalformedResponseError{cause: err}
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("candidate was blocked: %s", result.PromptFeedback.BlockReason)
	}

	return &result, nil
}

// candidateText returns the first text part of the first candidate.
func candidateText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}

// GenerateStructured issues a schema-constrained generation call and
// unmarshals the JSON response into out.
func (s *GeminiService) GenerateStructured(ctx context.Context, req StructuredRequest, out any) error {
	parts := []geminiPart{{Text: req.Prompt}}
	if req.ImageData != "" {
		parts = append(parts, geminiPart{
			InlineData: &inlineData{MimeType: "image/jpeg", Data: req.ImageData},
		})
	}

	body := &geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &generationConfig{
			Temperature:      req.Temperature,
			ResponseMIMEType: "application/json",
			ResponseSchema:   req.Schema,
		},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	resp, err := s.generateContent(ctx, s.model, body)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(candidateText(resp))
	if text == "" {
		return ErrNoResponse
	}
	if !strings.HasPrefix(text, "{") {
		return &MalformedResponseError{cause: fmt.Errorf("response is not a JSON object")}
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &MalformedResponseError{cause: err}
	}

	return nil
}

// SynthesizeSpeech converts text to raw PCM samples. The provider emits
// headerless 16-bit mono PCM at 24000 Hz; container wrapping is the caller's
// concern.
func (s *GeminiService) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	body := &geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: "Kore"},
				},
			},
		},
	}

	resp, err := s.generateContent(ctx, s.ttsModel, body)
	if err != nil {
		return nil, err
	}

	var encoded string
	if len(resp.Candidates) > 0 {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				encoded = part.InlineData.Data
				break
			}
		}
	}
	if encoded == "" {
		return nil, ErrNoResponse
	}

	pcm, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &MalformedResponseError{cause: err}
	}

	return pcm, nil
}
