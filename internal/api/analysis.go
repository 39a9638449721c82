package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/sanitize"
	"github.com/nutrilens/backend/internal/service"
	"github.com/nutrilens/backend/internal/types"
)

// incompleteNotice is shown when a response parses but lacks the mandatory
// food_analysis substructure. This is a display condition, not an error.
const incompleteNotice = "The analysis came back incomplete. Try a simpler query."

// securityMessage is the single message surfaced for rejected input; the
// matched phrase itself is not echoed back.
const securityMessage = "This query contains content that cannot be processed. Please rephrase it."

// AnalysisHandler handles analysis-related requests
type AnalysisHandler struct {
	service service.IAnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler instance
func NewAnalysisHandler(analysisService service.IAnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: analysisService}
}

// Analyze handles primary analysis requests.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	h.runAnalysis(c, false)
}

// RegenerateReport re-fetches the current analysis with report generation
// enabled. The deep-analysis attachment on the previous response survives.
func (h *AnalysisHandler) RegenerateReport(c *gin.Context) {
	h.runAnalysis(c, true)
}

func (h *AnalysisHandler) runAnalysis(c *gin.Context, report bool) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FoodQuery == "" && req.ImageData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_query or image_data is required"})
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = types.ModeSingleFood
	}
	if req.ImageData != "" {
		mode = types.ModeImageAnalysis
	}

	resp, err := h.service.Analyze(c.Request.Context(), sessionID(c), service.AnalyzeInput{
		Query:          req.FoodQuery,
		Profile:        req.UserProfile,
		Mode:           mode,
		DownloadReport: report || req.DownloadReport,
		ImageData:      req.ImageData,
	})
	if err != nil {
		writeClassified(c, err)
		return
	}

	body := gin.H{"analysis": resp}
	if !resp.Complete() {
		body["notice"] = incompleteNotice
	}
	c.JSON(http.StatusOK, body)
}

// AnalyzeDeep handles deep preventive-health analysis requests.
func (h *AnalysisHandler) AnalyzeDeep(c *gin.Context) {
	var req DeepAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.service.AnalyzeDeep(c.Request.Context(), sessionID(c), req.UserProfile)
	if err != nil {
		writeClassified(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preventive_health_data": data})
}

// SynthesizeAudio handles audio summary requests.
func (h *AnalysisHandler) SynthesizeAudio(c *gin.Context) {
	var req AudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audio, err := h.service.SynthesizeSummaryAudio(c.Request.Context(), req.Text)
	if err != nil {
		writeClassified(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audio_base64": audio,
		"mime_type":    "audio/wav",
	})
}

// QuickScan handles best-effort macro estimate requests. A failed scan is not
// an error; the estimate is simply null.
func (h *AnalysisHandler) QuickScan(c *gin.Context) {
	var req QuickScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate := h.service.QuickScan(c.Request.Context(), req.FoodName)
	c.JSON(http.StatusOK, gin.H{"estimate": estimate})
}

// History returns the bounded in-session history, most recent first.
func (h *AnalysisHandler) History(c *gin.Context) {
	history, err := h.service.History(c.Request.Context(), sessionID(c))
	if err != nil {
		writeClassified(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// ArchivedHistory returns the persisted analysis archive for the session.
func (h *AnalysisHandler) ArchivedHistory(c *gin.Context) {
	records, err := h.service.ArchivedAnalyses(c.Request.Context(), sessionID(c))
	if err != nil {
		writeClassified(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"archive": records})
}

// ClearData performs the destructive session reset.
func (h *AnalysisHandler) ClearData(c *gin.Context) {
	if err := h.service.ClearData(c.Request.Context(), sessionID(c)); err != nil {
		writeClassified(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func sessionID(c *gin.Context) string {
	if id, exists := c.Get("session_id"); exists {
		return id.(string)
	}
	return ""
}

// writeClassified maps gateway failures onto HTTP statuses. Only the
// classified message reaches the client.
func writeClassified(c *gin.Context, err error) {
	var secErr *sanitize.SecurityError
	if errors.As(err, &secErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": securityMessage})
		return
	}

	var cls *service.ClassifiedError
	if errors.As(err, &cls) {
		status := http.StatusInternalServerError
		switch cls.Category {
		case service.CategoryRateLimited:
			status = http.StatusTooManyRequests
		case service.CategoryContentBlocked:
			status = http.StatusUnprocessableEntity
		case service.CategoryUnauthorized,
			service.CategoryProviderUnavailable,
			service.CategoryNetworkError,
			service.CategoryDataError:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": cls.Message, "category": string(cls.Category)})
		return
	}

	if errors.Is(err, service.ErrNoCurrentAnalysis) {
		c.JSON(http.StatusConflict, gin.H{"error": "Run a food analysis before requesting the deep health report."})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong during the analysis. Please try again."})
}
