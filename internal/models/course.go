package models

import "time"

// Defaults for optional assignment fields.
const (
	DefaultAssignmentWeek     = 1
	DefaultAssignmentSemester = "semester1"
	DefaultAssignmentYear     = "certificate"
)

// AssignedCourse places a course with a lecturer in a weekly slot.
type AssignedCourse struct {
	ID           string    `db:"id" json:"_id"`
	Program      string    `db:"program" json:"program"`
	Course       string    `db:"course" json:"course"`
	Code         string    `db:"code" json:"code"`
	Lecturer     string    `db:"lecturer" json:"lecturer"`
	Day          string    `db:"day" json:"day"`
	Time         string    `db:"time" json:"time"`
	Week         int       `db:"week" json:"week"`
	Semester     string    `db:"semester" json:"semester"`
	Year         string    `db:"year" json:"year"`
	AssignedDate time.Time `db:"assigned_date" json:"assignedDate"`
}

// AssignCourseRequest creates an assignment.
type AssignCourseRequest struct {
	Program  string `json:"program" validate:"required"`
	Course   string `json:"course" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Lecturer string `json:"lecturer" validate:"required"`
	Day      string `json:"day" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Week     int    `json:"week" validate:"gte=0"`
	Semester string `json:"semester"`
	Year     string `json:"year"`
}
