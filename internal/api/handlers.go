package api

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/report"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/rules"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/schedule"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	readings   *store.Readings
	checklist  *store.Checklist
	thresholds rules.Table
	guidance   rules.ChecklistTable
	reminder   *schedule.Reminder
	logger     *logrus.Logger
}

func NewHandler(readings *store.Readings, checklist *store.Checklist, thresholds rules.Table, guidance rules.ChecklistTable, reminder *schedule.Reminder, logger *logrus.Logger) *Handler {
	return &Handler{
		readings:   readings,
		checklist:  checklist,
		thresholds: thresholds,
		guidance:   guidance,
		reminder:   reminder,
		logger:     logger,
	}
}

// CreateReading stores an operator reading, replacing any prior entry
// for the same date and slot, and returns the automatic analysis.
func (h *Handler) CreateReading(c *gin.Context) {
	var reading models.Reading
	if err := c.ShouldBindJSON(&reading); err != nil {
		h.logger.Errorf("invalid reading body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := reading.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.readings.Put(c.Request.Context(), reading); err != nil {
		h.logger.Errorf("failed to store reading %s: %v", reading.Key(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reading"})
		return
	}

	h.logger.Infof("stored reading %s by %s", reading.Key(), reading.Operator)
	c.JSON(http.StatusCreated, gin.H{
		"reading":  reading,
		"analysis": h.thresholds.AnalyzeReading(reading),
	})
}

// PreviewReading returns the analysis for a reading without storing it.
func (h *Handler) PreviewReading(c *gin.Context) {
	var reading models.Reading
	if err := c.ShouldBindJSON(&reading); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": h.thresholds.AnalyzeReading(reading)})
}

// ListReadings returns stored readings, optionally only the last N.
func (h *Handler) ListReadings(c *gin.Context) {
	readings, err := h.readings.All(c.Request.Context())
	if err != nil {
		h.logger.Errorf("failed to list readings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list readings"})
		return
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		if limit < len(readings) {
			readings = readings[len(readings)-limit:]
		}
	}
	c.JSON(http.StatusOK, readings)
}

// ExportReadings streams the readings inside [start, end] as a
// spreadsheet download.
func (h *Handler) ExportReadings(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	readings, err := h.readings.All(c.Request.Context())
	if err != nil {
		h.logger.Errorf("failed to load readings for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load readings"})
		return
	}
	filtered, err := report.FilterRange(readings, start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := report.WriteReadingsWorkbook(&buf, filtered); err != nil {
		h.logger.Errorf("failed to build readings export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}
	filename := fmt.Sprintf("metering_%s_to_%s.xlsx", start, end)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Trends returns per-parameter series and summary statistics for a day
// or a date range.
func (h *Handler) Trends(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	readings, err := h.readings.All(c.Request.Context())
	if err != nil {
		h.logger.Errorf("failed to load readings for trends: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load readings"})
		return
	}
	trend, err := report.BuildTrend(readings, start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trend)
}

type checklistRequest struct {
	Date       models.Date            `json:"date"`
	Shift      string                 `json:"shift"`
	Operator   string                 `json:"operator"`
	Conditions map[string]models.Tier `json:"conditions"`
}

// CreateChecklistEntry appends one shift checklist submission. Every
// submission is a new row, even for a date and shift already on file.
func (h *Handler) CreateChecklistEntry(c *gin.Context) {
	var req checklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	results, err := h.guidance.EvaluateChecklist(req.Conditions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry := models.ChecklistEntry{
		ID:       uuid.New().String(),
		Date:     req.Date,
		Shift:    req.Shift,
		Operator: req.Operator,
		Results:  results,
	}
	if err := entry.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.checklist.Append(c.Request.Context(), entry); err != nil {
		h.logger.Errorf("failed to append checklist entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store checklist entry"})
		return
	}

	h.logger.Infof("stored checklist entry %s for %s %s", entry.ID, entry.Date, entry.Shift)
	c.JSON(http.StatusCreated, entry)
}

// PreviewChecklist resolves guidance for chosen conditions without
// storing anything.
func (h *Handler) PreviewChecklist(c *gin.Context) {
	var req checklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	results, err := h.guidance.EvaluateChecklist(req.Conditions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ListChecklist returns stored checklist entries, newest last.
func (h *Handler) ListChecklist(c *gin.Context) {
	entries, err := h.checklist.All(c.Request.Context())
	if err != nil {
		h.logger.Errorf("failed to list checklist entries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list checklist entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ExportChecklist streams the full checklist log as a spreadsheet.
func (h *Handler) ExportChecklist(c *gin.Context) {
	entries, err := h.checklist.All(c.Request.Context())
	if err != nil {
		h.logger.Errorf("failed to load checklist for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checklist entries"})
		return
	}
	var buf bytes.Buffer
	if err := report.WriteChecklistWorkbook(&buf, entries); err != nil {
		h.logger.Errorf("failed to build checklist export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="daily_checklist.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

type vswrRequest struct {
	PowerOutput float64 `json:"power_output"`
	Reflected   float64 `json:"reflected"`
}

// ComputeVSWR runs the standing-wave-ratio calculator. An infinite
// ratio (reflected >= forward) is flagged rather than encoded, since
// JSON has no infinity.
func (h *Handler) ComputeVSWR(c *gin.Context) {
	var req vswrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	ratio := rules.ComputeVSWR(req.PowerOutput, req.Reflected)
	if math.IsInf(ratio, 1) {
		c.JSON(http.StatusOK, gin.H{"infinite": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"infinite": false, "vswr": ratio})
}

// RunReminder triggers one reminder cycle, normally driven by cron via
// the reminder binary. An explicit RFC 3339 instant may be supplied for
// diagnostics.
func (h *Handler) RunReminder(c *gin.Context) {
	now := time.Now()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid at parameter"})
			return
		}
		now = parsed
	}
	outcome := h.reminder.Run(c.Request.Context(), now)
	c.JSON(http.StatusOK, outcome)
}

// dateRange reads either ?date= or ?start=&?end= query parameters.
func dateRange(c *gin.Context) (models.Date, models.Date, error) {
	if raw := c.Query("date"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			return models.Date{}, models.Date{}, err
		}
		return d, d, nil
	}
	startRaw, endRaw := c.Query("start"), c.Query("end")
	if startRaw == "" || endRaw == "" {
		return models.Date{}, models.Date{}, fmt.Errorf("date or start/end query parameters are required")
	}
	start, err := models.ParseDate(startRaw)
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	end, err := models.ParseDate(endRaw)
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	return start, end, nil
}
