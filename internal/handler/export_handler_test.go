package handler

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/middleware"
	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/internal/service"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

type exportServiceMock struct {
	job         *models.ExportJob
	err         error
	download    *service.ExportDownload
	lastActor   string
	lastRole    models.UserRole
	lastRequest models.CreateExportRequest
}

func (m *exportServiceMock) Create(ctx context.Context, req models.CreateExportRequest, actorID string) (*models.ExportJob, error) {
	m.lastRequest, m.lastActor = req, actorID
	return m.job, m.err
}

func (m *exportServiceMock) Get(ctx context.Context, id, actorID string, role models.UserRole) (*models.ExportJob, error) {
	m.lastActor, m.lastRole = actorID, role
	return m.job, m.err
}

func (m *exportServiceMock) ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error) {
	return m.download, m.err
}

func TestExportHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &exportServiceMock{job: &models.ExportJob{ID: "job-1", Status: models.ExportStatusQueued}}
	handler := NewExportHandler(svc)

	c, w := newGinContext(http.MethodPost, "/api/exports", []byte(`{"dataset":"ratings","format":"csv"}`))
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "principal-1", Role: models.RolePrincipal})
	handler.Create(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "principal-1", svc.lastActor)
	assert.Equal(t, models.DatasetRatings, svc.lastRequest.Dataset)
	job := decodeBody(t, w)["job"].(map[string]interface{})
	assert.Equal(t, "QUEUED", job["status"])
}

func TestExportHandlerGetPassesIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &exportServiceMock{err: appErrors.Clone(appErrors.ErrForbidden, "forbidden")}
	handler := NewExportHandler(svc)

	c, w := newGinContext(http.MethodGet, "/api/exports/job-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "lect-2", Role: models.RoleLecturer})
	handler.Get(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "lect-2", svc.lastActor)
	assert.Equal(t, models.RoleLecturer, svc.lastRole)
}

func TestExportHandlerDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	file, err := os.CreateTemp(t.TempDir(), "ratings*.csv")
	require.NoError(t, err)
	_, _ = file.WriteString("Lecturer,Course\n")
	_, _ = file.Seek(0, 0)

	handler := NewExportHandler(&exportServiceMock{download: &service.ExportDownload{
		File:        file,
		Filename:    "ratings.csv",
		ContentType: "text/csv",
		ExpiresAt:   time.Now().Add(time.Hour),
	}})

	c, w := newGinContext(http.MethodGet, "/api/exports/download/token", nil)
	c.Params = gin.Params{{Key: "token", Value: "token"}}
	handler.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ratings.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Lecturer,Course\n", w.Body.String())
}
