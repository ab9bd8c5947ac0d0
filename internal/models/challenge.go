package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChallengeStatus tracks the review lifecycle of a challenge.
type ChallengeStatus string

const (
	ChallengeSubmitted ChallengeStatus = "submitted"
	ChallengeReviewed  ChallengeStatus = "reviewed"
	ChallengeResolved  ChallengeStatus = "resolved"
)

// ChallengePriority is the reviewer-assigned urgency.
type ChallengePriority string

const (
	PriorityLow    ChallengePriority = "low"
	PriorityMedium ChallengePriority = "medium"
	PriorityHigh   ChallengePriority = "high"
)

// NotSpecified fills optional descriptive fields left empty on submission.
const NotSpecified = "Not specified"

// AnonymousStudent is the display name used when none is supplied.
const AnonymousStudent = "Anonymous Student"

// Challenge is a student-submitted academic difficulty.
type Challenge struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StudentID     string             `bson:"studentId" json:"studentId"`
	StudentName   string             `bson:"studentName" json:"studentName"`
	Program       string             `bson:"program" json:"program"`
	Level         string             `bson:"level" json:"level"`
	Semester      string             `bson:"semester" json:"semester"`
	Course        string             `bson:"course" json:"course"`
	Lecturer      string             `bson:"lecturer" json:"lecturer"`
	Challenge     string             `bson:"challenge" json:"challenge"`
	Status        ChallengeStatus    `bson:"status" json:"status"`
	Priority      ChallengePriority  `bson:"priority" json:"priority"`
	SubmittedDate time.Time          `bson:"submittedDate" json:"submittedDate"`
	ReviewedBy    string             `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedDate  *time.Time         `bson:"reviewedDate,omitempty" json:"reviewedDate,omitempty"`
	Response      string             `bson:"response,omitempty" json:"response,omitempty"`
	Resolution    string             `bson:"resolution,omitempty" json:"resolution,omitempty"`
}

// CreateChallengeRequest is the student submission payload.
type CreateChallengeRequest struct {
	StudentID   string `json:"studentId" validate:"required"`
	StudentName string `json:"studentName"`
	Program     string `json:"program"`
	Level       string `json:"level"`
	Semester    string `json:"semester"`
	Course      string `json:"course"`
	Lecturer    string `json:"lecturer"`
	Challenge   string `json:"challenge" validate:"required"`
}

// UpdateChallengeRequest carries reviewer changes; empty fields are left untouched.
type UpdateChallengeRequest struct {
	Status     ChallengeStatus   `json:"status" validate:"omitempty,oneof=submitted reviewed resolved"`
	Priority   ChallengePriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Response   string            `json:"response"`
	Resolution string            `json:"resolution"`
	ReviewedBy string            `json:"reviewedBy"`
}

// ChallengeFilter narrows challenge listings. Empty fields do not filter.
type ChallengeFilter struct {
	Status   string
	Priority string
	Lecturer string
}

// ChallengeStats summarises all challenges.
type ChallengeStats struct {
	TotalChallenges  int            `json:"totalChallenges"`
	ByStatus         map[string]int `json:"byStatus"`
	ByPriority       map[string]int `json:"byPriority"`
	ByLecturer       map[string]int `json:"byLecturer"`
	RecentChallenges []Challenge    `json:"recentChallenges"`
}

// ChallengeUpdate is the set of fields a review writes. Empty strings and a
// nil ReviewedDate are left unchanged.
type ChallengeUpdate struct {
	Status       ChallengeStatus
	Priority     ChallengePriority
	Response     string
	Resolution   string
	ReviewedBy   string
	ReviewedDate *time.Time
}
