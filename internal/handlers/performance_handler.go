package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/roi"
	"profitflow/internal/services"
)

// PerformanceHandler manages weekly stream performance and the public ROI proof.
type PerformanceHandler struct {
	performanceService services.PerformanceServicer
	auditService       services.AuditServicer
}

// NewPerformanceHandler creates a new PerformanceHandler.
func NewPerformanceHandler(performanceService services.PerformanceServicer, auditService services.AuditServicer) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService, auditService: auditService}
}

// UpsertPerformanceRequest records one week's stream returns.
type UpsertPerformanceRequest struct {
	WeekEnding string                     `json:"week_ending" binding:"required"`
	Streams    map[string]decimal.Decimal `json:"streams" binding:"required,min=1,dive,keys,revenue_stream,endkeys"`
	Notes      string                     `json:"notes" binding:"max=1000"`
}

// UpsertPerformance handles recording a week's performance.
// @Summary     Record weekly performance
// @Description Create or replace the stream returns of a week that has not been distributed
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpsertPerformanceRequest true "Performance"
// @Success     200 {object} models.PerformanceRecord "Stored record"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Week already distributed"
// @Router      /admin/performance [put]
func (h *PerformanceHandler) UpsertPerformance(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	weekEnding, err := services.ParseWeekEnding(req.WeekEnding)
	if err != nil {
		respondWithError(c, err)
		return
	}
	streams, err := roi.ParseStreams(req.Streams)
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.performanceService.Upsert(weekEnding, streams, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "UPSERT_PERFORMANCE", "performance_record", record.ID, clientIP(c),
		map[string]interface{}{"week": record.Week})

	c.JSON(http.StatusOK, gin.H{"performance": record})
}

// GetPerformance handles fetching one week's record.
// @Summary     Get weekly performance
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       week path string true "Week ending date (YYYY-MM-DD)"
// @Success     200 {object} models.PerformanceRecord "Record"
// @Failure     400 {object} ErrorResponse "Invalid week"
// @Failure     404 {object} ErrorResponse "No record"
// @Router      /admin/performance/{week} [get]
func (h *PerformanceHandler) GetPerformance(c *gin.Context) {
	weekEnding, err := services.ParseWeekEnding(c.Param("week"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.performanceService.GetByWeek(weekEnding)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"performance": record})
}

// ListPerformance handles listing stored weeks, newest first.
// @Summary     List weekly performance
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.PerformanceRecord] "Records"
// @Router      /admin/performance [get]
func (h *PerformanceHandler) ListPerformance(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.performanceService.List(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetROIProof handles the per-plan ROI published for a week.
// @Summary     Proof of ROI
// @Description Weighted ROI of every plan for a recorded week
// @Tags        proof
// @Produce     json
// @Security    BearerAuth
// @Param       week_ending query string true "Week ending (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.WeeklyProof "Per-plan ROI"
// @Failure     400 {object} ErrorResponse "Invalid week"
// @Failure     404 {object} ErrorResponse "No record"
// @Router      /proof/roi [get]
func (h *PerformanceHandler) GetROIProof(c *gin.Context) {
	raw := c.Query("week_ending")
	if raw == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "week_ending is required"))
		return
	}
	weekEnding, err := services.ParseWeekEnding(raw)
	if err != nil {
		respondWithError(c, err)
		return
	}

	proof, err := h.performanceService.WeeklyProof(weekEnding)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, proof)
}
