package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultRatingScore applies to labels outside the known scale.
const DefaultRatingScore = 3.0

var ratingScores = map[string]float64{
	"excellent": 5,
	"good":      4,
	"average":   3,
	"poor":      2,
}

// ScoreForLabel maps a qualitative label to its numeric score. Labels match
// exactly, so "Excellent" is outside the scale.
func ScoreForLabel(label string) float64 {
	if score, ok := ratingScores[label]; ok {
		return score
	}
	return DefaultRatingScore
}

// Rating is one student's evaluation of a lecturer for a course.
type Rating struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StudentID     string             `bson:"studentId,omitempty" json:"studentId,omitempty"`
	StudentName   string             `bson:"studentName" json:"studentName"`
	LecturerName  string             `bson:"lecturerName" json:"lecturerName"`
	CourseName    string             `bson:"courseName" json:"courseName"`
	Rating        float64            `bson:"rating" json:"rating"`
	RatingLabel   string             `bson:"ratingLabel" json:"ratingLabel"`
	Comments      string             `bson:"comments" json:"comments"`
	SubmittedDate time.Time          `bson:"submittedDate" json:"submittedDate"`
	IsAnonymous   bool               `bson:"isAnonymous" json:"isAnonymous"`
}

// CreateRatingRequest submits a rating; Rating holds the qualitative label.
type CreateRatingRequest struct {
	StudentID    string `json:"studentId"`
	StudentName  string `json:"studentName"`
	LecturerName string `json:"lecturerName" validate:"required"`
	CourseName   string `json:"courseName" validate:"required"`
	Rating       string `json:"rating" validate:"required"`
	Comments     string `json:"comments"`
}

// RatingResult is the outcome of a submission, including whether a lecturer
// aggregate was updated.
type RatingResult struct {
	Rating          *Rating
	LecturerUpdated bool
}

// RatingFilter narrows rating listings. Bounds are inclusive.
type RatingFilter struct {
	Lecturer  string
	Course    string
	MinRating *float64
	MaxRating *float64
}

// RatingDistribution buckets scores: excellent >= 4.5, good >= 3.5,
// average >= 2.5, poor below.
type RatingDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}

// Add counts score in its bucket.
func (d *RatingDistribution) Add(score float64) {
	switch {
	case score >= 4.5:
		d.Excellent++
	case score >= 3.5:
		d.Good++
	case score >= 2.5:
		d.Average++
	default:
		d.Poor++
	}
}

// RatingStats summarises all ratings.
type RatingStats struct {
	TotalRatings       int                `json:"totalRatings"`
	AverageRating      float64            `json:"averageRating"`
	RatingDistribution RatingDistribution `json:"ratingDistribution"`
	TopLecturers       []TopLecturer      `json:"topLecturers"`
	RecentSubmissions  []Rating           `json:"recentSubmissions"`
}

// RatingSummary is the count and mean of all stored scores.
type RatingSummary struct {
	Count   int
	Average float64
}
