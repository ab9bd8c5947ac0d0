package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type reportService interface {
	Compile(ctx context.Context, req models.CreateReportRequest) (*models.Report, error)
	List(ctx context.Context) ([]models.Report, error)
	Delete(ctx context.Context, id string) (*models.Report, error)
}

type principalReportService interface {
	List(ctx context.Context) ([]models.PrincipalReport, error)
	Respond(ctx context.Context, id string, req models.RespondPrincipalReportRequest) (*models.PrincipalReport, error)
}

// ReportHandler exposes compiled reports and principal report responses.
type ReportHandler struct {
	reports    reportService
	principals principalReportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports reportService, principals principalReportService) *ReportHandler {
	return &ReportHandler{reports: reports, principals: principals}
}

// Create godoc
// @Summary Compile a report
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateReportRequest true "Report"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Router /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req models.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "Report type, program, and period are required"))
		return
	}
	report, err := h.reports.Compile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Report compiled successfully!", "report", report)
}

// List godoc
// @Summary List reports
// @Tags Reports
// @Produce json
// @Success 200 {array} models.Report
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports)
}

// Delete godoc
// @Summary Delete a report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	report, err := h.reports.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Report deleted successfully", "report", report)
}

// ListPrincipal godoc
// @Summary List principal reports
// @Tags Reports
// @Produce json
// @Success 200 {array} models.PrincipalReport
// @Router /principal-reports [get]
func (h *ReportHandler) ListPrincipal(c *gin.Context) {
	reports, err := h.principals.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports)
}

// Respond godoc
// @Summary Respond to a principal report
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Principal report ID"
// @Param payload body models.RespondPrincipalReportRequest true "Response"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /principal-reports/{id} [put]
func (h *ReportHandler) Respond(c *gin.Context) {
	var req models.RespondPrincipalReportRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, invalidPayload(err, "Invalid report status"))
		return
	}
	report, err := h.principals.Respond(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Report response updated successfully", "report", report)
}
