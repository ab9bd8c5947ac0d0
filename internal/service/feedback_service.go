package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
)

type ticketRepository interface {
	Create(ctx context.Context, spec models.ChannelSpec, ticket *models.Ticket) error
	List(ctx context.Context, spec models.ChannelSpec, filter models.TicketFilter) ([]models.Ticket, error)
}

// FeedbackService serves every feedback channel through one submit/list flow.
type FeedbackService struct {
	repo      ticketRepository
	channels  map[models.TicketChannel]models.ChannelSpec
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewFeedbackService registers channels; models.DefaultChannels is used when none are given.
func NewFeedbackService(repo ticketRepository, channels []models.ChannelSpec, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(channels) == 0 {
		channels = models.DefaultChannels
	}
	registry := make(map[models.TicketChannel]models.ChannelSpec, len(channels))
	for _, spec := range channels {
		registry[spec.Channel] = spec
	}
	return &FeedbackService{repo: repo, channels: registry, validator: validate, logger: logger, now: time.Now}
}

// Channel resolves a channel name.
func (s *FeedbackService) Channel(name string) (models.ChannelSpec, error) {
	spec, ok := s.channels[models.TicketChannel(name)]
	if !ok {
		return models.ChannelSpec{}, notFound("Feedback channel not found")
	}
	return spec, nil
}

// Submit stores a ticket on the channel with the channel's default status.
func (s *FeedbackService) Submit(ctx context.Context, channel string, req models.CreateTicketRequest) (*models.Ticket, models.ChannelSpec, error) {
	spec, err := s.Channel(channel)
	if err != nil {
		return nil, spec, err
	}

	trimAll(&req.SenderID, &req.SenderName, &req.SenderRole, &req.Subject, &req.Content)
	if err := s.validator.Struct(req); err != nil {
		return nil, spec, validationError(err, "Sender name and content are required")
	}

	ticket := &models.Ticket{
		Channel:       spec.Channel,
		SenderID:      req.SenderID,
		SenderName:    req.SenderName,
		SenderRole:    req.SenderRole,
		Subject:       req.Subject,
		Content:       req.Content,
		Tags:          allowedTags(req.Tags),
		Status:        spec.DefaultStatus,
		SubmittedDate: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, spec, ticket); err != nil {
		return nil, spec, internalError(err, "Failed to save "+spec.Singular)
	}

	s.logger.Info("feedback submitted", zap.String("channel", string(spec.Channel)), zap.String("ticket_id", ticket.ID.Hex()))
	return ticket, spec, nil
}

// List returns the channel's tickets matching filter, newest first.
func (s *FeedbackService) List(ctx context.Context, channel string, filter models.TicketFilter) ([]models.Ticket, models.ChannelSpec, error) {
	spec, err := s.Channel(channel)
	if err != nil {
		return nil, spec, err
	}
	filter.Tags = allowedTags(filter.Tags)
	tickets, err := s.repo.List(ctx, spec, filter)
	if err != nil {
		return nil, spec, internalError(err, "Failed to fetch "+spec.Plural)
	}
	return tickets, spec, nil
}

// allowedTags keeps the known classification keys with non-blank values.
func allowedTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string)
	for _, key := range models.TicketTagKeys {
		if v := strings.TrimSpace(tags[key]); v != "" {
			out[key] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
