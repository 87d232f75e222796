package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-academy/academy-back/internal/models"
)

func enrolledCount(t *testing.T, classroomID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, DB.Model(&models.StudentClassroom{}).
		Where("classroom_id = ?", classroomID).Count(&n).Error)
	return n
}

func reload(t *testing.T, classroomID uint) *models.Classroom {
	t.Helper()
	room, err := GetClassroom(context.Background(), classroomID)
	require.NoError(t, err)
	return room
}

func TestJoinClassroomCapacityScenario(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	lecturer := makeUser(t, models.RoleLecturer)
	faculty, subject := makeCatalog(t)
	room := makeClassroom(t, lecturer.ID, subject.ID, 2)

	x := makeUser(t, models.RoleStudent)
	y := makeUser(t, models.RoleStudent)
	z := makeUser(t, models.RoleStudent)
	for _, s := range []*models.User{x, y, z} {
		_, err := SelectFaculty(ctx, s.ID, faculty.ID, true)
		require.NoError(t, err)
	}

	require.NoError(t, JoinClassroom(ctx, x.ID, room.ID))
	assert.False(t, reload(t, room.ID).IsFull)
	assert.EqualValues(t, 1, enrolledCount(t, room.ID))

	require.NoError(t, JoinClassroom(ctx, y.ID, room.ID))
	assert.True(t, reload(t, room.ID).IsFull)
	assert.EqualValues(t, 2, enrolledCount(t, room.ID))

	err := JoinClassroom(ctx, z.ID, room.ID)
	assert.ErrorIs(t, err, ErrClassroomFull)
	assert.EqualValues(t, 2, enrolledCount(t, room.ID))
	assert.True(t, reload(t, room.ID).IsFull)
}

func TestJoinClassroomTwice(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	lecturer := makeUser(t, models.RoleLecturer)
	_, subject := makeCatalog(t)
	room := makeClassroom(t, lecturer.ID, subject.ID, 20)
	student := makeUser(t, models.RoleStudent)

	require.NoError(t, JoinClassroom(ctx, student.ID, room.ID))
	err := JoinClassroom(ctx, student.ID, room.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.EqualValues(t, 1, enrolledCount(t, room.ID))
	assert.False(t, reload(t, room.ID).IsFull)
}

// is_full must track enrolled_count >= max_students after every join.
func TestIsFullInvariant(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	lecturer := makeUser(t, models.RoleLecturer)
	_, subject := makeCatalog(t)
	room := makeClassroom(t, lecturer.ID, subject.ID, 3)

	for i := 0; i < 3; i++ {
		student := makeUser(t, models.RoleStudent)
		require.NoError(t, JoinClassroom(ctx, student.ID, room.ID))

		got := reload(t, room.ID)
		want := enrolledCount(t, room.ID) >= int64(got.MaxStudents)
		assert.Equal(t, want, got.IsFull, "after %d joins", i+1)
	}
}

func TestAvailableClassrooms(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	lecturer := makeUser(t, models.RoleLecturer)
	faculty, subject := makeCatalog(t)

	other := &models.Subject{Name: "History", Description: "Not in the faculty"}
	require.NoError(t, CreateSubject(ctx, other))

	inFaculty := makeClassroom(t, lecturer.ID, subject.ID, 20)
	outside := makeClassroom(t, lecturer.ID, other.ID, 20)
	full := makeClassroom(t, lecturer.ID, subject.ID, 1)
	joined := makeClassroom(t, lecturer.ID, subject.ID, 20)

	filler := makeUser(t, models.RoleStudent)
	require.NoError(t, JoinClassroom(ctx, filler.ID, full.ID))

	student := makeUser(t, models.RoleStudent)

	// No active affiliation yet: nothing is visible.
	rooms, err := AvailableClassrooms(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	_, err = SelectFaculty(ctx, student.ID, faculty.ID, true)
	require.NoError(t, err)
	require.NoError(t, JoinClassroom(ctx, student.ID, joined.ID))

	rooms, err = AvailableClassrooms(ctx, student.ID)
	require.NoError(t, err)

	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, inFaculty.ID)
	assert.NotContains(t, ids, outside.ID, "subject outside the faculty")
	assert.NotContains(t, ids, full.ID, "full classroom")
	assert.NotContains(t, ids, joined.ID, "already enrolled")
}

func TestCreateClassroomUnknownSubject(t *testing.T) {
	setupTestDB(t)

	lecturer := makeUser(t, models.RoleLecturer)
	_, err := CreateClassroom(context.Background(), lecturer.ID, 999, 20, 10)
	assert.Error(t, err)
}
