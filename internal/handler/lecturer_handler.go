package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type lecturerService interface {
	List(ctx context.Context) ([]models.Lecturer, error)
	Get(ctx context.Context, id string) (*models.Lecturer, error)
	Search(ctx context.Context, query string) ([]models.Lecturer, error)
}

// LecturerHandler exposes the lecturer directory.
type LecturerHandler struct {
	service lecturerService
}

// NewLecturerHandler constructs the handler.
func NewLecturerHandler(svc lecturerService) *LecturerHandler {
	return &LecturerHandler{service: svc}
}

// List godoc
// @Summary List lecturers
// @Tags Lecturers
// @Produce json
// @Success 200 {array} models.Lecturer
// @Failure 500 {object} response.ErrorBody
// @Router /lecturers [get]
func (h *LecturerHandler) List(c *gin.Context) {
	lecturers, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturers)
}

// Get godoc
// @Summary Get lecturer
// @Tags Lecturers
// @Produce json
// @Param id path string true "Lecturer ID"
// @Success 200 {object} models.Lecturer
// @Failure 404 {object} response.ErrorBody
// @Router /lecturers/{id} [get]
func (h *LecturerHandler) Get(c *gin.Context) {
	lecturer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturer)
}

// Search godoc
// @Summary Search lecturers
// @Description Case-insensitive match on name, department or taught course
// @Tags Lecturers
// @Produce json
// @Param query query string true "Search term"
// @Success 200 {array} models.Lecturer
// @Failure 400 {object} response.ErrorBody
// @Router /lecturers/search [get]
func (h *LecturerHandler) Search(c *gin.Context) {
	lecturers, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturers)
}
