package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okPing(context.Context) error   { return nil }
func downPing(context.Context) error { return errors.New("down") }

func TestHealthReportsStores(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHealthHandler(
		StoreCheck{Name: "postgres", Required: true, Ping: okPing},
		StoreCheck{Name: "mongodb", Required: true, Ping: okPing},
		StoreCheck{Name: "redis", Ping: downPing},
	)

	c, w := newGinContext(http.MethodGet, "/api/health", nil)
	handler.Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "connected", body["database"])
	stores := body["stores"].(map[string]interface{})
	assert.Equal(t, "disconnected", stores["redis"])
	services := body["services"].(map[string]interface{})
	assert.Equal(t, "active", services["ratings"])
}

func TestReadyFailsWhenRequiredStoreIsDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHealthHandler(StoreCheck{Name: "mongodb", Required: true, Ping: downPing})

	c, w := newGinContext(http.MethodGet, "/ready", nil)
	handler.Ready(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	c, w = newGinContext(http.MethodGet, "/api/health", nil)
	handler.Health(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "disconnected", decodeBody(t, w)["database"])
}
