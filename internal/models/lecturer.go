package models

import (
	"time"

	"github.com/lib/pq"
)

// Lecturer is a directory entry carrying the running rating aggregate.
type Lecturer struct {
	ID            string         `db:"id" json:"_id"`
	Name          string         `db:"name" json:"name"`
	Department    string         `db:"department" json:"department"`
	Email         string         `db:"email" json:"email"`
	Courses       pq.StringArray `db:"courses" json:"courses"`
	OverallRating float64        `db:"overall_rating" json:"overallRating"`
	TotalRatings  int            `db:"total_ratings" json:"totalRatings"`
	Contact       string         `db:"contact" json:"contact,omitempty"`
	Office        string         `db:"office" json:"office,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updatedAt"`
}

// TopLecturer is the projection used by rating statistics.
type TopLecturer struct {
	Name          string   `json:"name"`
	Department    string   `json:"department"`
	OverallRating float64  `json:"overallRating"`
	TotalRatings  int      `json:"totalRatings"`
	Courses       []string `json:"courses"`
}
