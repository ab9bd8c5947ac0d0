package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type courseService interface {
	Assign(ctx context.Context, req models.AssignCourseRequest) (*models.AssignedCourse, error)
	List(ctx context.Context) ([]models.AssignedCourse, error)
	Delete(ctx context.Context, id string) (*models.AssignedCourse, error)
}

// CourseHandler manages lecturer course assignments.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(svc courseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// Assign godoc
// @Summary Assign a course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.AssignCourseRequest true "Assignment"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Router /courses/assign [post]
func (h *CourseHandler) Assign(c *gin.Context) {
	var req models.AssignCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "All fields are required"))
		return
	}
	assignment, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Course assigned successfully!", "assignment", assignment)
}

// List godoc
// @Summary List assigned courses
// @Tags Courses
// @Produce json
// @Success 200 {array} models.AssignedCourse
// @Router /courses/assigned [get]
func (h *CourseHandler) List(c *gin.Context) {
	assignments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// Delete godoc
// @Summary Remove an assignment
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /courses/assigned/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	assignment, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Assignment removed successfully", "assignment", assignment)
}
