package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/middleware"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

type feedbackServiceStub struct {
	tickets     []models.Ticket
	err         error
	lastChannel string
	lastReq     models.CreateTicketRequest
	lastFilter  models.TicketFilter
}

func (s *feedbackServiceStub) spec() models.ChannelSpec {
	for _, spec := range models.DefaultChannels {
		if string(spec.Channel) == s.lastChannel {
			return spec
		}
	}
	return models.ChannelSpec{}
}

func (s *feedbackServiceStub) Submit(ctx context.Context, channel string, req models.CreateTicketRequest) (*models.Ticket, models.ChannelSpec, error) {
	s.lastChannel, s.lastReq = channel, req
	if s.err != nil {
		return nil, models.ChannelSpec{}, s.err
	}
	return &models.Ticket{SenderName: req.SenderName, Content: req.Content}, s.spec(), nil
}

func (s *feedbackServiceStub) List(ctx context.Context, channel string, filter models.TicketFilter) ([]models.Ticket, models.ChannelSpec, error) {
	s.lastChannel, s.lastFilter = channel, filter
	return s.tickets, s.spec(), s.err
}

func TestFeedbackHandlerCreateUsesClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &feedbackServiceStub{}
	handler := NewFeedbackHandler(svc)

	payload := []byte(`{"senderName":"Dr. Smith","content":"Lab equipment is outdated"}`)
	c, w := newGinContext(http.MethodPost, "/api/feedback/lecturer-reports", payload)
	c.Params = gin.Params{{Key: "channel", Value: "lecturer-reports"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Role: models.RoleLecturer})
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Lecturer report submitted successfully", body["message"])
	assert.Contains(t, body, "report")
	assert.Equal(t, "u-1", svc.lastReq.SenderID)
	assert.Equal(t, "lecturer", svc.lastReq.SenderRole)
}

func TestFeedbackHandlerListCollectsTagFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &feedbackServiceStub{tickets: []models.Ticket{{Content: "x"}}}
	handler := NewFeedbackHandler(svc)

	c, w := newGinContext(http.MethodGet, "/api/feedback/program-leader-feedback?status=pending&program=IT&ignored=1", nil)
	c.Params = gin.Params{{Key: "channel", Value: "program-leader-feedback"}}
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Len(t, body["feedbacks"], 1)
	assert.Equal(t, "pending", svc.lastFilter.Status)
	assert.Equal(t, map[string]string{"program": "IT"}, svc.lastFilter.Tags)
}

func TestFeedbackHandlerUnknownChannel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewFeedbackHandler(&feedbackServiceStub{err: appErrors.Clone(appErrors.ErrNotFound, "Feedback channel not found")})

	c, w := newGinContext(http.MethodGet, "/api/feedback/nope", nil)
	c.Params = gin.Params{{Key: "channel", Value: "nope"}}
	handler.List(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
