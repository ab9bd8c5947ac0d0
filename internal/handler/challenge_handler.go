package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type challengeService interface {
	Submit(ctx context.Context, req models.CreateChallengeRequest) (*models.Challenge, error)
	List(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, error)
	Review(ctx context.Context, id string, req models.UpdateChallengeRequest) (*models.Challenge, error)
	Stats(ctx context.Context) (*models.ChallengeStats, error)
}

// ChallengeHandler exposes student challenge endpoints.
type ChallengeHandler struct {
	service challengeService
}

// NewChallengeHandler constructs the handler.
func NewChallengeHandler(svc challengeService) *ChallengeHandler {
	return &ChallengeHandler{service: svc}
}

// Create godoc
// @Summary Submit a challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Param payload body models.CreateChallengeRequest true "Challenge"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Router /challenges [post]
func (h *ChallengeHandler) Create(c *gin.Context) {
	var req models.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "Challenge description and student ID are required"))
		return
	}
	challenge, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Challenge submitted successfully to the Principal Lecturer!", "challenge", challenge)
}

// List godoc
// @Summary List challenges
// @Tags Challenges
// @Produce json
// @Param status query string false "Status"
// @Param priority query string false "Priority"
// @Param lecturer query string false "Lecturer name fragment"
// @Success 200 {array} models.Challenge
// @Router /challenges [get]
func (h *ChallengeHandler) List(c *gin.Context) {
	filter := models.ChallengeFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		Priority: strings.TrimSpace(c.Query("priority")),
		Lecturer: strings.TrimSpace(c.Query("lecturer")),
	}
	challenges, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, challenges)
}

// Update godoc
// @Summary Review a challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Challenge ID"
// @Param payload body models.UpdateChallengeRequest true "Review"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /challenges/{id} [put]
func (h *ChallengeHandler) Update(c *gin.Context) {
	var req models.UpdateChallengeRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, invalidPayload(err, "Invalid challenge update"))
		return
	}
	challenge, err := h.service.Review(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Challenge updated successfully", "challenge", challenge)
}

// Stats godoc
// @Summary Challenge statistics
// @Tags Challenges
// @Produce json
// @Success 200 {object} models.ChallengeStats
// @Router /challenges/stats [get]
func (h *ChallengeHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
