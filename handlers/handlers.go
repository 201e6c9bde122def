// Package handlers exposes the service over HTTP.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"wefix/location"
	"wefix/models"
	"wefix/service"
)

// Handlers binds the HTTP routes to the service.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Register mounts all routes on the router.
func (h *Handlers) Register(router *gin.Engine) {
	router.GET("/health", h.Health)

	v3 := router.Group("/api/v3")
	{
		v3.GET("/health", h.Health)
		v3.POST("/analyze", h.Analyze)
		v3.POST("/chat", h.Chat)
		v3.POST("/issues", h.CreateIssue)
		v3.POST("/issues/:id/resolve", h.ResolveIssue)
		v3.GET("/issues/similar", h.SimilarIssues)
		v3.GET("/issues/nearby", h.NearbyIssues)
		v3.GET("/stats", h.Stats)
		v3.GET("/leaderboard", h.Leaderboard)
	}
}

// AnalyzeRequest is the analysis endpoint payload. ImageData carries a
// base64-encoded image; gin decodes it from the JSON string.
type AnalyzeRequest struct {
	Text      string   `json:"text"`
	ImageData []byte   `json:"image_data,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Analyze runs the pipeline without persisting anything.
func (h *Handlers) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Text == "" && len(req.ImageData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text or image_data is required"})
		return
	}

	result, err := h.svc.AnalyzeIssue(c.Request.Context(), req.Text, req.ImageData, device(req.Latitude, req.Longitude))
	if err != nil {
		log.Errorf("analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ChatRequest is one user message in a session.
type ChatRequest struct {
	SessionID string   `json:"session_id"`
	Message   string   `json:"message" binding:"required"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Chat answers one assistant message.
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	resp, err := h.svc.Chat(c.Request.Context(), req.SessionID, req.Message, device(req.Latitude, req.Longitude))
	if err != nil {
		log.Errorf("chat failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateIssueRequest is the submit-report payload.
type CreateIssueRequest struct {
	UserID      string   `json:"user_id" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ImageData   []byte   `json:"image_data,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// CreateIssue analyzes and persists a new report.
func (h *Handlers) CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and title are required"})
		return
	}

	ctx := c.Request.Context()
	result, err := h.svc.AnalyzeIssue(ctx, req.Description, req.ImageData, device(req.Latitude, req.Longitude))
	if err != nil {
		log.Errorf("analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	id, err := h.svc.CreateIssue(ctx, req.UserID, req.Title, req.Description, req.ImageURL, result)
	if err != nil {
		log.Errorf("failed to create issue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "analysis": result})
}

// ResolveIssueRequest names who resolved the issue.
type ResolveIssueRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// ResolveIssue marks an issue resolved.
func (h *Handlers) ResolveIssue(c *gin.Context) {
	issueID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue id"})
		return
	}
	var req ResolveIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if err := h.svc.ResolveIssue(c.Request.Context(), issueID, req.UserID); err != nil {
		log.Errorf("failed to resolve issue %d: %v", issueID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve issue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": issueID, "status": "Resolved"})
}

// SimilarIssues searches stored issues by text similarity.
func (h *Handlers) SimilarIssues(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text query parameter is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	issues, err := h.svc.FindSimilar(c.Request.Context(), text, limit)
	if err != nil {
		log.Errorf("similarity search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if issues == nil {
		issues = []models.IssueSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// NearbyIssues searches stored issues by proximity.
func (h *Handlers) NearbyIssues(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}
	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius_km", "0"), 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	issues, err := h.svc.FindNearby(c.Request.Context(), lat, lng, radius, limit)
	if err != nil {
		log.Errorf("nearby search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if issues == nil {
		issues = []models.IssueSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// Stats returns the platform counters.
func (h *Handlers) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		log.Errorf("stats lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Leaderboard returns the top point holders.
func (h *Handlers) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		log.Errorf("leaderboard lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func device(lat, lng *float64) *location.DeviceCoordinates {
	if lat == nil || lng == nil {
		return nil
	}
	return &location.DeviceCoordinates{Latitude: *lat, Longitude: *lng}
}
