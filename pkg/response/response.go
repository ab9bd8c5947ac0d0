package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes payload as-is; list endpoints return bare arrays.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, payload)
}

// Message writes {"message": message, key: value}. An empty key omits the value.
func Message(c *gin.Context, status int, message, key string, value interface{}) {
	body := gin.H{"message": message}
	if key != "" {
		body[key] = value
	}
	JSON(c, status, body)
}

// List writes {plural: items, "count": len(items)}.
func List(c *gin.Context, plural string, items interface{}, count int) {
	JSON(c, http.StatusOK, gin.H{plural: items, "count": count})
}

// Error converts err to its mapped status and writes {"error": message}.
// Server-side failures are attached to the context so the request logger
// records the underlying cause.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
}

// Abort writes the error body and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// NotFoundRoute answers unknown endpoints.
func NotFoundRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":  "Endpoint not found",
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	})
}

// Recovery answers panics with a generic 500.
func Recovery(c *gin.Context, recovered interface{}) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Error: appErrors.ErrInternal.Message})
}
