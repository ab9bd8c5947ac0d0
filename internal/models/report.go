package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportStatusCompiled is the status of every freshly compiled report.
const ReportStatusCompiled = "Compiled"

// Report is a compiled program report with an opaque payload.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type        string             `bson:"type" json:"type"`
	Program     string             `bson:"program" json:"program"`
	Period      string             `bson:"period" json:"period"`
	Date        string             `bson:"date" json:"date"`
	Status      string             `bson:"status" json:"status"`
	Data        bson.M             `bson:"data" json:"data"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
}

// CreateReportRequest compiles a report.
type CreateReportRequest struct {
	Type    string                 `json:"type" validate:"required"`
	Program string                 `json:"program" validate:"required"`
	Period  string                 `json:"period" validate:"required"`
	Data    map[string]interface{} `json:"data"`
}

// PrincipalReportStatus tracks a principal report response.
type PrincipalReportStatus string

const (
	PrincipalReportPending   PrincipalReportStatus = "pending"
	PrincipalReportSubmitted PrincipalReportStatus = "submitted"
)

// PrincipalReport is a review request addressed to program leadership.
type PrincipalReport struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty" json:"_id"`
	Title          string                `bson:"title" json:"title"`
	Priority       string                `bson:"priority" json:"priority"`
	From           string                `bson:"from" json:"from"`
	Date           string                `bson:"date" json:"date"`
	DueDate        string                `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Subject        string                `bson:"subject,omitempty" json:"subject,omitempty"`
	KeyConcerns    []string              `bson:"keyConcerns,omitempty" json:"keyConcerns,omitempty"`
	KeyPoints      []string              `bson:"keyPoints,omitempty" json:"keyPoints,omitempty"`
	Opportunities  []string              `bson:"opportunities,omitempty" json:"opportunities,omitempty"`
	ActionRequired string                `bson:"actionRequired,omitempty" json:"actionRequired,omitempty"`
	Response       string                `bson:"response,omitempty" json:"response,omitempty"`
	Status         PrincipalReportStatus `bson:"status" json:"status"`
	ResponseDate   string                `bson:"responseDate,omitempty" json:"responseDate,omitempty"`
}

// RespondPrincipalReportRequest records the reviewer's answer.
type RespondPrincipalReportRequest struct {
	Response string                `json:"response"`
	Status   PrincipalReportStatus `json:"status" validate:"omitempty,oneof=pending submitted"`
}

// PrincipalReportUpdate is the set of fields written by a response.
type PrincipalReportUpdate struct {
	Response     string
	Status       PrincipalReportStatus
	ResponseDate string
}
