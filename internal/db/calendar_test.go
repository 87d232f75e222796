package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/open-academy/academy-back/internal/models"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("15:04", value)
	require.NoError(t, err)
	return d
}

func TestDefineCalendar(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	lecturer := makeUser(t, models.RoleLecturer)
	_, subject := makeCatalog(t)
	room := makeClassroom(t, lecturer.ID, subject.ID, 20)

	slots := []CalendarSlot{
		{Date: mustDate(t, "2024-01-10"), StartTime: mustTime(t, "09:00")},
		{Date: mustDate(t, "2024-01-17"), StartTime: mustTime(t, "09:00")},
	}
	entries, err := DefineCalendar(ctx, room.ID, slots, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, 2, e.Duration)
		assert.Equal(t, room.ID, e.ClassroomID)
	}

	// The classroom is configured for 10 classes; two sessions is a
	// mismatch that is accepted on purpose.
	assert.Equal(t, 10, room.NumberOfClasses)

	listed, err := ListCalendar(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].Date.Before(listed[1].Date))

	// The clock component must survive the round trip through the store.
	assert.Equal(t, 9, listed[0].StartTime.Hour())
	assert.Equal(t, 0, listed[0].StartTime.Minute())
}

func TestDefineCalendarUnknownClassroom(t *testing.T) {
	setupTestDB(t)

	_, err := DefineCalendar(context.Background(), 999, nil, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecordAttendanceReplaceSemantics(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	lecturer := makeUser(t, models.RoleLecturer)
	faculty, subject := makeCatalog(t)
	room := makeClassroom(t, lecturer.ID, subject.ID, 20)

	a := makeUser(t, models.RoleStudent)
	b := makeUser(t, models.RoleStudent)
	enrollActive(t, a, faculty.ID, room)
	enrollActive(t, b, faculty.ID, room)

	entries, err := DefineCalendar(ctx, room.ID, []CalendarSlot{
		{Date: mustDate(t, "2024-01-10"), StartTime: mustTime(t, "09:00")},
	}, 2)
	require.NoError(t, err)
	session := entries[0]

	// {A: present, B: absent}: only A keeps a record.
	require.NoError(t, RecordAttendance(ctx, session.ID, map[uint]bool{a.ID: true, b.ID: false}))

	records, err := SessionAttendance(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, a.ID, records[0].StudentID)
	assert.True(t, records[0].Status)

	// Re-recording with {A: absent} erases A's record too.
	require.NoError(t, RecordAttendance(ctx, session.ID, map[uint]bool{a.ID: false}))

	records, err = SessionAttendance(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordAttendanceIdempotentUpsert(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	lecturer := makeUser(t, models.RoleLecturer)
	faculty, subject := makeCatalog(t)
	room := makeClassroom(t, lecturer.ID, subject.ID, 20)

	a := makeUser(t, models.RoleStudent)
	enrollActive(t, a, faculty.ID, room)

	entries, err := DefineCalendar(ctx, room.ID, []CalendarSlot{
		{Date: mustDate(t, "2024-01-10"), StartTime: mustTime(t, "09:00")},
	}, 2)
	require.NoError(t, err)
	session := entries[0]

	require.NoError(t, RecordAttendance(ctx, session.ID, map[uint]bool{a.ID: true}))
	require.NoError(t, RecordAttendance(ctx, session.ID, map[uint]bool{a.ID: true}))

	records, err := SessionAttendance(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecordAttendanceUnknownSession(t *testing.T) {
	setupTestDB(t)

	err := RecordAttendance(context.Background(), 999, map[uint]bool{1: true})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClassroomAttendanceAcrossSessions(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	lecturer := makeUser(t, models.RoleLecturer)
	faculty, subject := makeCatalog(t)
	room := makeClassroom(t, lecturer.ID, subject.ID, 20)

	a := makeUser(t, models.RoleStudent)
	enrollActive(t, a, faculty.ID, room)

	entries, err := DefineCalendar(ctx, room.ID, []CalendarSlot{
		{Date: mustDate(t, "2024-01-10"), StartTime: mustTime(t, "09:00")},
		{Date: mustDate(t, "2024-01-17"), StartTime: mustTime(t, "09:00")},
	}, 2)
	require.NoError(t, err)

	require.NoError(t, RecordAttendance(ctx, entries[0].ID, map[uint]bool{a.ID: true}))
	require.NoError(t, RecordAttendance(ctx, entries[1].ID, map[uint]bool{a.ID: true}))

	records, err := ClassroomAttendance(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
