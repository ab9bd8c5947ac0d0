package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

type reportServiceMock struct {
	compiled  *models.Report
	reports   []models.Report
	deleted   *models.Report
	err       error
	lastInput models.CreateReportRequest
}

func (m *reportServiceMock) Compile(ctx context.Context, req models.CreateReportRequest) (*models.Report, error) {
	m.lastInput = req
	return m.compiled, m.err
}

func (m *reportServiceMock) List(ctx context.Context) ([]models.Report, error) {
	return m.reports, m.err
}

func (m *reportServiceMock) Delete(ctx context.Context, id string) (*models.Report, error) {
	return m.deleted, m.err
}

type principalReportServiceMock struct {
	reports   []models.PrincipalReport
	responded *models.PrincipalReport
	err       error
	lastID    string
	lastReq   models.RespondPrincipalReportRequest
}

func (m *principalReportServiceMock) List(ctx context.Context) ([]models.PrincipalReport, error) {
	return m.reports, m.err
}

func (m *principalReportServiceMock) Respond(ctx context.Context, id string, req models.RespondPrincipalReportRequest) (*models.PrincipalReport, error) {
	m.lastID, m.lastReq = id, req
	return m.responded, m.err
}

func TestReportHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &reportServiceMock{compiled: &models.Report{ID: primitive.NewObjectID(), Type: "Monthly", Status: models.ReportStatusCompiled}}
	handler := NewReportHandler(svc, nil)

	payload, _ := json.Marshal(map[string]interface{}{"type": "Monthly", "program": "IT", "period": "March", "data": map[string]int{"attendance": 90}})
	c, w := newGinContext(http.MethodPost, "/api/reports", payload)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Report compiled successfully!", body["message"])
	assert.Contains(t, body, "report")
	assert.Equal(t, "IT", svc.lastInput.Program)
}

func TestReportHandlerCreateRejectsMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&reportServiceMock{}, nil)

	c, w := newGinContext(http.MethodPost, "/api/reports", []byte("{"))
	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Report type, program, and period are required", decodeBody(t, w)["error"])
}

func TestReportHandlerDeleteNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&reportServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "Report not found")}, nil)

	c, w := newGinContext(http.MethodDelete, "/api/reports/x", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	handler.Delete(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Report not found", decodeBody(t, w)["error"])
}

func TestReportHandlerListReturnsBareArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&reportServiceMock{reports: []models.Report{{Type: "A"}, {Type: "B"}}}, nil)

	c, w := newGinContext(http.MethodGet, "/api/reports", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var reports []models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	assert.Len(t, reports, 2)
}

func TestReportHandlerRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	principals := &principalReportServiceMock{responded: &models.PrincipalReport{Status: models.PrincipalReportSubmitted}}
	handler := NewReportHandler(nil, principals)

	payload := []byte(`{"response":"Noted","status":"submitted"}`)
	c, w := newGinContext(http.MethodPut, "/api/principal-reports/abc", payload)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.Respond(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Report response updated successfully", decodeBody(t, w)["message"])
	assert.Equal(t, "abc", principals.lastID)
	assert.Equal(t, models.PrincipalReportSubmitted, principals.lastReq.Status)
}
