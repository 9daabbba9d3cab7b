package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/roi"
	"profitflow/internal/services"
)

// DistributionHandler triggers and inspects weekly profit runs.
type DistributionHandler struct {
	distributionService services.DistributionServicer
	now                 func() time.Time
}

// NewDistributionHandler creates a new DistributionHandler.
func NewDistributionHandler(distributionService services.DistributionServicer) *DistributionHandler {
	return &DistributionHandler{distributionService: distributionService, now: time.Now}
}

// DistributeRequest is the optional body of a distribution trigger.
type DistributeRequest struct {
	Performance map[string]decimal.Decimal `json:"performance" binding:"omitempty,dive,keys,revenue_stream,endkeys"`
}

// Distribute handles the admin trigger.
// @Summary     Distribute weekly profits
// @Description Compute and credit the week's profit to every ACTIVE investment. With dryRun=true
// @Description the breakdown is returned and nothing is written. A week can be settled once.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       dryRun     query bool              false "Preview only"
// @Param       weekEnding query string            false "Week ending (RFC3339 or YYYY-MM-DD); defaults to last Sunday"
// @Param       mode       query string            false "baseline (default) or stream"
// @Param       request    body  DistributeRequest false "Stream performance override"
// @Success     200 {object} services.DistributionResult "Run summary"
// @Failure     400 {object} RunErrorResponse "invalid_mode or invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     409 {object} RunErrorResponse "already_distributed"
// @Failure     500 {object} RunErrorResponse "Server error"
// @Router      /admin/distribute-profits [post]
func (h *DistributionHandler) Distribute(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.run(c, adminID)
}

// PipelineDistribute handles the cron trigger guarded by the pipeline API key.
// @Summary     Distribute weekly profits (pipeline)
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       dryRun     query bool              false "Preview only"
// @Param       weekEnding query string            false "Week ending; defaults to last Sunday"
// @Param       mode       query string            false "baseline (default) or stream"
// @Param       request    body  DistributeRequest false "Stream performance override"
// @Success     200 {object} services.DistributionResult "Run summary"
// @Failure     400 {object} RunErrorResponse "invalid_mode or invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     409 {object} RunErrorResponse "already_distributed"
// @Router      /pipeline/distribute-profits [post]
func (h *DistributionHandler) PipelineDistribute(c *gin.Context) {
	h.run(c, "")
}

func (h *DistributionHandler) run(c *gin.Context, runBy string) {
	req, err := h.parseRequest(c)
	if err != nil {
		respondWithRunError(c, err)
		return
	}
	req.RunBy = runBy

	result, err := h.distributionService.Run(c.Request.Context(), req)
	if err != nil {
		respondWithRunError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *DistributionHandler) parseRequest(c *gin.Context) (services.DistributionRequest, error) {
	var req services.DistributionRequest

	mode, err := services.ParseDistributionMode(c.Query("mode"))
	if err != nil {
		return req, err
	}
	req.Mode = mode

	if raw := c.Query("dryRun"); raw != "" {
		dry, err := strconv.ParseBool(raw)
		if err != nil {
			return req, apperrors.WithMessage(apperrors.ErrInvalidInput, "dryRun must be a boolean")
		}
		req.DryRun = dry
	}

	if raw := c.Query("weekEnding"); raw != "" {
		if req.WeekEnding, err = services.ParseWeekEnding(raw); err != nil {
			return req, err
		}
	} else {
		req.WeekEnding = services.LastWeekEnding(h.now())
	}

	var body DistributeRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		return req, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	if len(body.Performance) > 0 {
		if req.Performance, err = roi.ParseStreams(body.Performance); err != nil {
			return req, err
		}
	}
	return req, nil
}

// HasRun handles the idempotency check for a week.
// @Summary     Has the week been distributed
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       weekEnding query string true "Week ending (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{} "week and distributed flag"
// @Failure     400 {object} ErrorResponse "Invalid week"
// @Router      /admin/distributions/status [get]
func (h *DistributionHandler) HasRun(c *gin.Context) {
	weekEnding, err := services.ParseWeekEnding(c.Query("weekEnding"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	ran, err := h.distributionService.HasRunForWeek(weekEnding)
	if err != nil {
		respondWithError(c, err)
		return
	}

	week, _ := services.WeekKey(weekEnding)
	c.JSON(http.StatusOK, gin.H{"week": week, "distributed": ran})
}

// ListRuns handles listing settled weeks.
// @Summary     List distribution runs
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.ProfitLog] "Runs"
// @Router      /admin/distributions [get]
func (h *DistributionHandler) ListRuns(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.distributionService.ListRuns(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
