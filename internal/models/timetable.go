package models

import "time"

// TimetableKey is the natural key of a timetable slot.
type TimetableKey struct {
	Program  string `db:"program" json:"program" form:"program" validate:"required"`
	Level    string `db:"level" json:"level" form:"level" validate:"required"`
	Year     string `db:"year" json:"year" form:"year" validate:"required"`
	Semester string `db:"semester" json:"semester" form:"semester" validate:"required"`
	Week     int    `db:"week" json:"week" form:"week" validate:"required,gte=1"`
	Day      string `db:"day" json:"day" form:"day" validate:"required"`
	Time     string `db:"time" json:"time" form:"time" validate:"required"`
}

// TimetableEntry is the course taught in one slot.
type TimetableEntry struct {
	ID string `db:"id" json:"_id"`
	TimetableKey
	Course    string    `db:"course" json:"course"`
	Lecturer  string    `db:"lecturer" json:"lecturer"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UpsertTimetableRequest writes the occupant of a slot.
type UpsertTimetableRequest struct {
	TimetableKey
	Course   string `json:"course" validate:"required"`
	Lecturer string `json:"lecturer" validate:"required"`
	Code     string `json:"code"`
}

// TimetableFilter narrows listings; zero values do not filter.
type TimetableFilter struct {
	Program  string `form:"program"`
	Level    string `form:"level"`
	Year     string `form:"year"`
	Semester string `form:"semester"`
	Week     int    `form:"week"`
}

// TimetableUpsertResult tells whether the slot was newly created.
type TimetableUpsertResult struct {
	Entry   *TimetableEntry
	Created bool
}
