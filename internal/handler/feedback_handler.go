package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type feedbackService interface {
	Submit(ctx context.Context, channel string, req models.CreateTicketRequest) (*models.Ticket, models.ChannelSpec, error)
	List(ctx context.Context, channel string, filter models.TicketFilter) ([]models.Ticket, models.ChannelSpec, error)
}

// FeedbackHandler serves lecturer reports and the feedback channels.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(svc feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Create godoc
// @Summary Submit feedback
// @Description Channels: lecturer-reports, program-leader-feedback, principal-lecturer-feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param channel path string true "Channel"
// @Param payload body models.CreateTicketRequest true "Ticket"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /feedback/{channel} [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "Sender name and content are required"))
		return
	}
	if claims := claimsFromContext(c); claims != nil {
		if req.SenderID == "" {
			req.SenderID = claims.UserID
		}
		if req.SenderRole == "" {
			req.SenderRole = string(claims.Role)
		}
	}

	ticket, spec, err := h.service.Submit(c.Request.Context(), c.Param("channel"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, spec.Title+" submitted successfully", spec.Singular, ticket)
}

// List godoc
// @Summary List feedback
// @Tags Feedback
// @Produce json
// @Param channel path string true "Channel"
// @Param status query string false "Status"
// @Param senderId query string false "Sender ID"
// @Param program query string false "Tag filter (any of program, level, year, semester, week, course, lecturer, category)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /feedback/{channel} [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	filter := models.TicketFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		SenderID: strings.TrimSpace(c.Query("senderId")),
		Tags:     map[string]string{},
	}
	for _, key := range models.TicketTagKeys {
		if value := strings.TrimSpace(c.Query(key)); value != "" {
			filter.Tags[key] = value
		}
	}

	tickets, spec, err := h.service.List(c.Request.Context(), c.Param("channel"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, spec.Plural, tickets, len(tickets))
}
