package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

type fakeTimetableRepo struct {
	slots map[models.TimetableKey]models.TimetableEntry
}

func (f *fakeTimetableRepo) Upsert(ctx context.Context, entry *models.TimetableEntry) (bool, error) {
	_, exists := f.slots[entry.TimetableKey]
	f.slots[entry.TimetableKey] = *entry
	return !exists, nil
}

func (f *fakeTimetableRepo) List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error) {
	var out []models.TimetableEntry
	for _, e := range f.slots {
		if filter.Program != "" && e.Program != filter.Program {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeTimetableRepo) DeleteByKey(ctx context.Context, key models.TimetableKey) error {
	if _, ok := f.slots[key]; !ok {
		return sql.ErrNoRows
	}
	delete(f.slots, key)
	return nil
}

func slotKey() models.TimetableKey {
	return models.TimetableKey{Program: "BSc IT", Level: "1", Year: "2024", Semester: "1", Week: 2, Day: "Monday", Time: "08:00"}
}

func TestTimetableServiceUpsertKeepsOneEntryPerSlot(t *testing.T) {
	repo := &fakeTimetableRepo{slots: map[models.TimetableKey]models.TimetableEntry{}}
	svc := NewTimetableService(repo, validator.New(), zap.NewNop())

	res, err := svc.Upsert(context.Background(), models.UpsertTimetableRequest{TimetableKey: slotKey(), Course: "Databases", Lecturer: "Mr. Thokoane"})
	require.NoError(t, err)
	assert.True(t, res.Created)

	res, err = svc.Upsert(context.Background(), models.UpsertTimetableRequest{TimetableKey: slotKey(), Course: "Web Technologies", Lecturer: "Mr. Makheka", Code: "WT1"})
	require.NoError(t, err)
	assert.False(t, res.Created)

	entries, err := svc.List(context.Background(), models.TimetableFilter{Program: "BSc IT"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Web Technologies", entries[0].Course)
	assert.Equal(t, "WT1", entries[0].Code)
}

func TestTimetableServiceUpsertValidation(t *testing.T) {
	svc := NewTimetableService(&fakeTimetableRepo{slots: map[models.TimetableKey]models.TimetableEntry{}}, validator.New(), zap.NewNop())
	key := slotKey()
	key.Week = 0
	_, err := svc.Upsert(context.Background(), models.UpsertTimetableRequest{TimetableKey: key, Course: "Databases", Lecturer: "Mr. Thokoane"})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestTimetableServiceDelete(t *testing.T) {
	repo := &fakeTimetableRepo{slots: map[models.TimetableKey]models.TimetableEntry{}}
	svc := NewTimetableService(repo, validator.New(), zap.NewNop())
	_, err := svc.Upsert(context.Background(), models.UpsertTimetableRequest{TimetableKey: slotKey(), Course: "Databases", Lecturer: "Mr. Thokoane"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), slotKey()))

	err = svc.Delete(context.Background(), slotKey())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Timetable entry not found", appErr.Message)

	partial := slotKey()
	partial.Day = ""
	err = svc.Delete(context.Background(), partial)
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
