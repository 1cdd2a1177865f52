package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wandile0157/smartdoc-ai-backend/internal/analysis"
	"github.com/wandile0157/smartdoc-ai-backend/internal/analyzer"
	"github.com/wandile0157/smartdoc-ai-backend/internal/config"
	"github.com/wandile0157/smartdoc-ai-backend/internal/store"
)

// analysisService is the subset of *analysis.Service used by the handlers.
// Declaring it as an interface allows test doubles to be injected.
type analysisService interface {
	Text(ctx context.Context, text string) (*analyzer.TextReport, error)
	Legal(ctx context.Context, text, documentType string) (*analyzer.LegalReport, error)
	Feedback(ctx context.Context, text string) (*analysis.FeedbackReport, error)
	Compare(ctx context.Context, doc1, doc2 string) (*analysis.Comparison, error)
	Batch(ctx context.Context, texts []string, kind analysis.Kind) (*analysis.BatchResult, error)
	Summary(text string, kind analysis.Kind) string
}

// Handler holds the dependencies shared across all HTTP handlers.
type Handler struct {
	svc      analysisService
	store    store.Store
	verifier TokenVerifier
	app      config.AppConfig
	dbReady  bool
}

// NewHandler wires the handler dependencies. verifier may be nil when
// Supabase is not configured; dbReady reports whether the store is backed by
// a real database.
func NewHandler(svc analysisService, st store.Store, verifier TokenVerifier, app config.AppConfig, dbReady bool) *Handler {
	return &Handler{svc: svc, store: st, verifier: verifier, app: app, dbReady: dbReady}
}

// documentTypes accepted by the legal analysis request.
var documentTypes = map[string]struct{}{
	"employment_contract": {},
	"lease_agreement":     {},
	"nda":                 {},
	"service_agreement":   {},
	"sales_agreement":     {},
	"other":               {},
}

// Root handles GET /.
// It returns service identity and pointers to the docs and health routes.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":          h.app.Name,
		"version":       h.app.Version,
		"description":   "AI-powered legal document analysis for South African businesses",
		"documentation": "/docs",
		"health_check":  "/api/v1/health",
		"status":        "operational",
		"environment":   h.app.Environment,
	})
}

// Health handles GET /api/v1/health.
//
//	@Summary	Health check
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/api/v1/health [get]
func (h *Handler) Health(c *gin.Context) {
	database := "not configured"
	if h.dbReady {
		database = "operational"
	}
	auth := "not configured"
	if h.verifier != nil {
		auth = "configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   h.app.Version,
		"timestamp": time.Now().UTC(),
		"services": gin.H{
			"api":      "operational",
			"database": database,
			"auth":     auth,
		},
	})
}

type textAnalysisRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeText handles POST /api/v1/analyze/text.
//
//	@Summary	Analyze text content
//	@Tags		Analysis
//	@Accept		json
//	@Produce	json
//	@Param		request	body		textAnalysisRequest	true	"Text to analyze"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	map[string]any
//	@Router		/api/v1/analyze/text [post]
func (h *Handler) AnalyzeText(c *gin.Context) {
	var req textAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	report, err := h.svc.Text(c.Request.Context(), req.Text)
	if err != nil {
		respondAnalysisError(c, err, "Text analysis failed")
		return
	}

	h.saveIfAuthenticated(c, req.Text, analysis.KindText, "", report.BasicStats.WordCount, nil)

	c.JSON(http.StatusOK, successBody("Text analysis completed successfully", gin.H{
		"basic_stats":  report.BasicStats,
		"readability":  report.Readability,
		"sentiment":    report.Sentiment,
		"top_keywords": report.TopKeywords,
	}))
}

type legalAnalysisRequest struct {
	Text         string `json:"text" binding:"required"`
	DocumentType string `json:"document_type"`
}

// AnalyzeLegal handles POST /api/v1/analyze/legal.
//
//	@Summary	Analyze a legal document
//	@Tags		Analysis
//	@Accept		json
//	@Produce	json
//	@Param		request	body		legalAnalysisRequest	true	"Legal document to analyze"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	map[string]any
//	@Router		/api/v1/analyze/legal [post]
func (h *Handler) AnalyzeLegal(c *gin.Context) {
	var req legalAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if req.DocumentType != "" {
		if _, ok := documentTypes[req.DocumentType]; !ok {
			respondError(c, http.StatusBadRequest, "unknown document type: "+req.DocumentType)
			return
		}
	}

	report, err := h.svc.Legal(c.Request.Context(), req.Text, req.DocumentType)
	if err != nil {
		respondAnalysisError(c, err, "Legal analysis failed")
		return
	}

	h.saveIfAuthenticated(c, req.Text, analysis.KindLegal, req.DocumentType,
		report.TextStatistics.BasicStats.WordCount, &report.RiskAssessment)

	c.JSON(http.StatusOK, successBody("Legal analysis completed successfully", gin.H{
		"document_info":      report.DocumentInfo,
		"parties":            report.Parties,
		"key_dates":          report.KeyDates,
		"monetary_amounts":   report.MonetaryAmounts,
		"identified_clauses": report.IdentifiedClauses,
		"risk_assessment":    report.RiskAssessment,
		"text_statistics":    report.TextStatistics,
	}))
}

type feedbackAnalysisRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source"`
}

// AnalyzeFeedback handles POST /api/v1/analyze/feedback.
//
//	@Summary	Analyze feedback or reviews
//	@Tags		Analysis
//	@Accept		json
//	@Produce	json
//	@Param		request	body		feedbackAnalysisRequest	true	"Feedback to analyze"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	map[string]any
//	@Router		/api/v1/analyze/feedback [post]
func (h *Handler) AnalyzeFeedback(c *gin.Context) {
	var req feedbackAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	report, err := h.svc.Feedback(c.Request.Context(), req.Text)
	if err != nil {
		respondAnalysisError(c, err, "Feedback analysis failed")
		return
	}

	h.saveIfAuthenticated(c, req.Text, analysis.KindFeedback, "", report.WordCount, nil)

	c.JSON(http.StatusOK, successBody("Feedback analysis completed successfully", gin.H{
		"sentiment":   report.Sentiment,
		"key_points":  report.KeyPoints,
		"word_count":  report.WordCount,
		"readability": report.Readability,
	}))
}

type batchAnalysisRequest struct {
	Texts        []string `json:"texts" binding:"required"`
	AnalysisType string   `json:"analysis_type"`
}

// AnalyzeBatch handles POST /api/v1/analyze/batch.
//
//	@Summary	Batch analyze up to ten texts
//	@Tags		Analysis
//	@Accept		json
//	@Produce	json
//	@Param		request	body		batchAnalysisRequest	true	"Texts to analyze"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	map[string]any
//	@Router		/api/v1/analyze/batch [post]
func (h *Handler) AnalyzeBatch(c *gin.Context) {
	var req batchAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	kind := analysis.Kind(req.AnalysisType)
	if req.AnalysisType == "" {
		kind = analysis.KindText
	}

	result, err := h.svc.Batch(c.Request.Context(), req.Texts, kind)
	if err != nil {
		respondAnalysisError(c, err, "Batch analysis failed")
		return
	}

	c.JSON(http.StatusOK, successBody(
		"Batch analysis completed: "+strconv.Itoa(result.TotalProcessed)+" texts processed",
		gin.H{
			"total_processed": result.TotalProcessed,
			"results":         result.Results,
			"failed_count":    result.FailedCount,
			"errors":          result.Errors,
		}))
}

type comparisonRequest struct {
	Document1 string `json:"document1" binding:"required"`
	Document2 string `json:"document2" binding:"required"`
}

// Compare handles POST /api/v1/analyze/compare.
//
//	@Summary	Compare two documents
//	@Tags		Analysis
//	@Accept		json
//	@Produce	json
//	@Param		request	body		comparisonRequest	true	"Documents to compare"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	map[string]any
//	@Router		/api/v1/analyze/compare [post]
func (h *Handler) Compare(c *gin.Context) {
	var req comparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.svc.Compare(c.Request.Context(), req.Document1, req.Document2)
	if err != nil {
		respondAnalysisError(c, err, "Document comparison failed")
		return
	}

	c.JSON(http.StatusOK, successBody("Document comparison completed successfully", gin.H{
		"similarity_score": result.SimilarityScore,
		"key_differences":  result.KeyDifferences,
		"common_elements":  result.CommonElements,
		"recommendation":   result.Recommendation,
	}))
}

// History handles GET /api/v1/history. Requires authentication.
//
//	@Summary	Analysis history for the authenticated user
//	@Tags		User
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum records"	default(10)
//	@Success	200		{object}	map[string]any
//	@Failure	401		{object}	map[string]any
//	@Router		/api/v1/history [get]
func (h *Handler) History(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			respondError(c, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	records, err := h.store.ListAnalyses(c.Request.Context(), user.ID, limit)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "listing history failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	c.JSON(http.StatusOK, successBody("History retrieved successfully", gin.H{
		"analyses": records,
		"total":    len(records),
	}))
}

// Stats handles GET /api/v1/stats. Requires authentication.
//
//	@Summary	Usage statistics for the authenticated user
//	@Tags		User
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Failure	401	{object}	map[string]any
//	@Router		/api/v1/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	stats, err := h.store.UserStats(c.Request.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "fetching stats failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve user statistics")
		return
	}

	c.JSON(http.StatusOK, successBody("User statistics retrieved successfully", gin.H{
		"stats": stats,
	}))
}

// saveIfAuthenticated persists an analysis record for logged-in callers.
// Storage failures are logged and swallowed; the analysis response is not
// affected.
func (h *Handler) saveIfAuthenticated(c *gin.Context, text string, kind analysis.Kind, documentType string, wordCount int, risk *analyzer.RiskAssessment) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rec := store.Record{
		UserID:       user.ID,
		AnalysisType: string(kind),
		DocumentType: documentType,
		TextPreview:  preview(text, 200),
		WordCount:    wordCount,
		Summary:      h.svc.Summary(text, kind),
	}
	if risk != nil {
		rec.RiskScore = risk.RiskScore
		rec.RiskLevel = risk.RiskLevel
	}

	if _, err := h.store.SaveAnalysis(c.Request.Context(), rec); err != nil {
		slog.WarnContext(c.Request.Context(), "failed to save analysis",
			"user_id", user.ID, "type", kind, "error", err)
		return
	}
	slog.InfoContext(c.Request.Context(), "analysis saved",
		"user_id", user.ID, "type", kind)
}

// --- response shaping ---

func successBody(message string, payload gin.H) gin.H {
	body := gin.H{
		"success":   true,
		"message":   message,
		"timestamp": time.Now().UTC(),
	}
	for k, v := range payload {
		body[k] = v
	}
	return body
}

func errorBody(errMsg, detail string) gin.H {
	body := gin.H{
		"success":   false,
		"error":     errMsg,
		"timestamp": time.Now().UTC(),
	}
	if detail != "" {
		body["message"] = detail
	}
	return body
}

func respondError(c *gin.Context, code int, msg string) {
	c.JSON(code, errorBody(msg, ""))
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, errorBody("Validation error", err.Error()))
}

// respondAnalysisError maps service validation errors to 400 and everything
// else to a 500 with a generic message.
func respondAnalysisError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, analysis.ErrEmptyText),
		errors.Is(err, analysis.ErrTextTooShort),
		errors.Is(err, analysis.ErrLegalTooShort),
		errors.Is(err, analysis.ErrBatchSize),
		errors.Is(err, analysis.ErrUnknownType):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "analysis failed", "error", err)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
