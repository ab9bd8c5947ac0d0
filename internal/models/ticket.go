package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketChannel names a feedback channel.
type TicketChannel string

const (
	ChannelLecturerReports           TicketChannel = "lecturer-reports"
	ChannelProgramLeaderFeedback     TicketChannel = "program-leader-feedback"
	ChannelPrincipalLecturerFeedback TicketChannel = "principal-lecturer-feedback"
)

// TicketTagKeys are the classification tags accepted on every channel and
// usable as list filters.
var TicketTagKeys = []string{"program", "level", "year", "semester", "week", "course", "lecturer", "category"}

// ChannelSpec describes how one channel stores and presents its tickets.
type ChannelSpec struct {
	Channel       TicketChannel
	Collection    string
	Title         string
	Singular      string
	Plural        string
	DefaultStatus string
}

// Ticket is a submitted message on a feedback channel.
type Ticket struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Channel       TicketChannel      `bson:"channel" json:"channel"`
	SenderID      string             `bson:"senderId,omitempty" json:"senderId,omitempty"`
	SenderName    string             `bson:"senderName" json:"senderName"`
	SenderRole    string             `bson:"senderRole,omitempty" json:"senderRole,omitempty"`
	Subject       string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Content       string             `bson:"content" json:"content"`
	Tags          map[string]string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Status        string             `bson:"status" json:"status"`
	SubmittedDate time.Time          `bson:"submittedDate" json:"submittedDate"`
}

// CreateTicketRequest submits a ticket.
type CreateTicketRequest struct {
	SenderID   string            `json:"senderId"`
	SenderName string            `json:"senderName" validate:"required"`
	SenderRole string            `json:"senderRole"`
	Subject    string            `json:"subject"`
	Content    string            `json:"content" validate:"required"`
	Tags       map[string]string `json:"tags"`
}

// TicketFilter narrows ticket listings by equality.
type TicketFilter struct {
	Status   string
	SenderID string
	Tags     map[string]string
}

// DefaultChannels are the feedback channels served by the API.
var DefaultChannels = []ChannelSpec{
	{
		Channel:       ChannelLecturerReports,
		Collection:    "lecturerreports",
		Title:         "Lecturer report",
		Singular:      "report",
		Plural:        "reports",
		DefaultStatus: "submitted",
	},
	{
		Channel:       ChannelProgramLeaderFeedback,
		Collection:    "programleaderfeedbacks",
		Title:         "Feedback",
		Singular:      "feedback",
		Plural:        "feedbacks",
		DefaultStatus: "pending",
	},
	{
		Channel:       ChannelPrincipalLecturerFeedback,
		Collection:    "principallecturerfeedbacks",
		Title:         "Feedback",
		Singular:      "feedback",
		Plural:        "feedbacks",
		DefaultStatus: "pending",
	},
}
