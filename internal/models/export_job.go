package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ExportDataset names an exportable collection.
type ExportDataset string

const (
	DatasetChallenges      ExportDataset = "challenges"
	DatasetRatings         ExportDataset = "ratings"
	DatasetLecturers       ExportDataset = "lecturers"
	DatasetAssignedCourses ExportDataset = "assigned-courses"
	DatasetTimetables      ExportDataset = "timetables"
)

// Valid reports whether d can be exported.
func (d ExportDataset) Valid() bool {
	switch d {
	case DatasetChallenges, DatasetRatings, DatasetLecturers, DatasetAssignedCourses, DatasetTimetables:
		return true
	default:
		return false
	}
}

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob is a persisted export request.
type ExportJob struct {
	ID           string          `db:"id" json:"id"`
	Dataset      ExportDataset   `db:"dataset" json:"dataset"`
	Params       ExportJobParams `db:"params" json:"params"`
	Status       ExportStatus    `db:"status" json:"status"`
	Progress     int             `db:"progress" json:"progress"`
	ResultURL    *string         `db:"result_url" json:"resultUrl,omitempty"`
	ErrorMessage *string         `db:"error_message" json:"error,omitempty"`
	CreatedBy    string          `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
	FinishedAt   *time.Time      `db:"finished_at" json:"finishedAt,omitempty"`
}

// ExportJobParams is stored as JSONB.
type ExportJobParams struct {
	Format  string            `json:"format"`
	Filters map[string]string `json:"filters,omitempty"`
}

// Value marshals params for persistence.
func (p ExportJobParams) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal export params: %w", err)
	}
	return data, nil
}

// Scan reads JSONB into params.
func (p *ExportJobParams) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*p = ExportJobParams{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ExportJobParams", value)
	}
	if len(data) == 0 {
		*p = ExportJobParams{}
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("unmarshal export params: %w", err)
	}
	return nil
}

// CreateExportRequest asks for an export of a dataset.
type CreateExportRequest struct {
	Dataset ExportDataset     `json:"dataset" validate:"required"`
	Format  string            `json:"format" validate:"required,oneof=csv pdf"`
	Filters map[string]string `json:"filters"`
}
