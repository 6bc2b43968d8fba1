package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dealyield/internal/domain/models"
	"github.com/mamadbah2/dealyield/internal/engine"
	"github.com/mamadbah2/dealyield/internal/server/middleware"
	"github.com/mamadbah2/dealyield/internal/service/analysis"
)

// AnalysisService is the subset of the analysis service the handler needs.
type AnalysisService interface {
	Analyze(ctx context.Context, session models.Session, req models.AnalysisRequest) (models.AnalysisRecord, error)
	Preview(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error)
	List(ctx context.Context, session models.Session, limit int) ([]models.AnalysisRecord, error)
	Get(ctx context.Context, session models.Session, id string) (models.AnalysisRecord, error)
	Delete(ctx context.Context, session models.Session, id string) error
}

// AnalysisHandler exposes deal analyses over HTTP.
type AnalysisHandler struct {
	svc    AnalysisService
	logger *zap.Logger
}

// NewAnalysisHandler constructs the HTTP handler adapter.
func NewAnalysisHandler(svc AnalysisService, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{svc: svc, logger: logger}
}

// Create analyzes a deal and stores it for the caller's company.
func (h *AnalysisHandler) Create(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analysis payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.Analyze(c.Request.Context(), session, req)
	if err != nil {
		h.fail(c, "failed creating analysis", err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// Preview analyzes a deal without storing it.
func (h *AnalysisHandler) Preview(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analysis payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.Preview(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "failed previewing analysis", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// List returns the caller's newest analyses.
func (h *AnalysisHandler) List(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	limit := analysis.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > analysis.MaxListLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 100"})
			return
		}
		limit = n
	}

	records, err := h.svc.List(c.Request.Context(), session, limit)
	if err != nil {
		h.fail(c, "failed listing analyses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": records})
}

// Get returns one analysis.
func (h *AnalysisHandler) Get(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	record, err := h.svc.Get(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		h.fail(c, "failed fetching analysis", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// Delete removes one analysis.
func (h *AnalysisHandler) Delete(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), session, c.Param("id")); err != nil {
		h.fail(c, "failed deleting analysis", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AnalysisHandler) session(c *gin.Context) (models.Session, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return session, ok
}

func (h *AnalysisHandler) fail(c *gin.Context, msg string, err error) {
	var verr *engine.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, analysis.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
