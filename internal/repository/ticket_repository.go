package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/college-portal-api/internal/models"
)

// TicketRepository stores feedback tickets, one collection per channel.
type TicketRepository struct {
	db *mongo.Database
}

// NewTicketRepository constructs the repository.
func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create inserts ticket into the channel's collection and fills its id.
func (r *TicketRepository) Create(ctx context.Context, spec models.ChannelSpec, ticket *models.Ticket) error {
	res, err := r.db.Collection(spec.Collection).InsertOne(ctx, ticket)
	if err != nil {
		return fmt.Errorf("insert %s ticket: %w", spec.Channel, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ticket.ID = oid
	}
	return nil
}

// List returns the channel's tickets matching filter, newest first.
func (r *TicketRepository) List(ctx context.Context, spec models.ChannelSpec, filter models.TicketFilter) ([]models.Ticket, error) {
	tickets, err := findAll[models.Ticket](ctx, r.db.Collection(spec.Collection), ticketFilter(filter), sortedBy("submittedDate", -1))
	if err != nil {
		return nil, fmt.Errorf("list %s tickets: %w", spec.Channel, err)
	}
	return tickets, nil
}

func ticketFilter(f models.TicketFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.SenderID != "" {
		filter["senderId"] = f.SenderID
	}
	for key, value := range f.Tags {
		if value != "" {
			filter["tags."+key] = value
		}
	}
	return filter
}
