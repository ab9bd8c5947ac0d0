package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type timetableService interface {
	Upsert(ctx context.Context, req models.UpsertTimetableRequest) (*models.TimetableUpsertResult, error)
	List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error)
	Delete(ctx context.Context, key models.TimetableKey) error
}

// TimetableHandler manages weekly timetable slots.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Upsert godoc
// @Summary Create or replace a timetable slot
// @Description Entries are keyed by program, level, year, semester, week, day and time
// @Tags Timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.UpsertTimetableRequest true "Slot"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Router /timetable [post]
func (h *TimetableHandler) Upsert(c *gin.Context) {
	var req models.UpsertTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "Invalid timetable payload"))
		return
	}
	result, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	message := "Timetable entry updated"
	if result.Created {
		message = "Timetable entry created"
	}
	response.Message(c, http.StatusOK, message, "entry", result.Entry)
}

// List godoc
// @Summary List timetable slots
// @Tags Timetable
// @Produce json
// @Param program query string false "Program"
// @Param level query string false "Level"
// @Param year query string false "Year"
// @Param semester query string false "Semester"
// @Param week query int false "Week"
// @Success 200 {object} map[string]interface{}
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	var filter models.TimetableFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, invalidPayload(err, "Invalid timetable filter"))
		return
	}
	entries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "timetables", entries, len(entries))
}

// Delete godoc
// @Summary Remove a timetable slot
// @Tags Timetable
// @Produce json
// @Security BearerAuth
// @Param program query string true "Program"
// @Param level query string true "Level"
// @Param year query string true "Year"
// @Param semester query string true "Semester"
// @Param week query int true "Week"
// @Param day query string true "Day"
// @Param time query string true "Time"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /timetable [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	var key models.TimetableKey
	if err := c.ShouldBindQuery(&key); err != nil {
		response.Error(c, invalidPayload(err, "Invalid timetable key"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), key); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Timetable entry deleted", "", nil)
}
