package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/wellbeing/internal/domain/intervention"
	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
	"github.com/yanqian/wellbeing/internal/interface/render"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	wellbeingSvc    wellbeing.Service
	interventionSvc intervention.Service
	logger          *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(wellbeingSvc wellbeing.Service, interventionSvc intervention.Service, logger *slog.Logger) *Handler {
	return &Handler{
		wellbeingSvc:    wellbeingSvc,
		interventionSvc: interventionSvc,
		logger:          logger.With("component", "http.handler"),
	}
}

type calculateRequest struct {
	Date string `json:"date"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RecordSignal stores a daily check-in and schedules its recalculation.
func (h *Handler) RecordSignal(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req wellbeing.SignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	signal, err := h.wellbeingSvc.RecordSignal(c.Request.Context(), userID, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, signal)
}

// CalculateDaily recomputes the composite score for one day.
func (h *Handler) CalculateDaily(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req calculateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
	}

	result, err := h.wellbeingSvc.CalculateDaily(c.Request.Context(), userID, req.Date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if result.Interventions == nil {
		result.Interventions = []intervention.Intervention{}
	}
	c.JSON(http.StatusOK, result)
}

// WeeklyReport returns the report as JSON or, with format=text, as plain text.
func (h *Handler) WeeklyReport(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "days must be an integer", err))
			return
		}
		days = parsed
	}
	format := strings.ToLower(c.DefaultQuery("format", "json"))
	if format != "json" && format != "text" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "format must be json or text", nil))
		return
	}

	report, err := h.wellbeingSvc.WeeklyReport(c.Request.Context(), userID, days)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if format == "text" {
		var buf bytes.Buffer
		if err := render.Text(&buf, report, render.Options{}); err != nil {
			abortWithError(c, NewHTTPError(http.StatusInternalServerError, "render_failed", "failed to render report", err))
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListInterventions returns the user's interventions, newest first.
func (h *Handler) ListInterventions(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var filter intervention.Filter
	if raw := c.Query("status"); raw != "" {
		status, valid := intervention.ParseStatus(raw)
		if !valid {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "unknown status "+raw, nil))
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err))
			return
		}
		filter.Limit = limit
	}

	items, err := h.interventionSvc.List(c.Request.Context(), userID, filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interventions": items})
}

// UpdateIntervention moves an intervention through its lifecycle.
func (h *Handler) UpdateIntervention(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "intervention id must be a UUID", err))
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	status, valid := intervention.ParseStatus(req.Status)
	if !valid {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "unknown status "+req.Status, nil))
		return
	}

	item, err := h.interventionSvc.UpdateStatus(c.Request.Context(), userID, id, status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func userIDParam(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil || userID == uuid.Nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "user id must be a UUID", err))
		return uuid.Nil, false
	}
	return userID, true
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
