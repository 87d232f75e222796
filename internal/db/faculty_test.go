package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/open-academy/academy-back/internal/models"
)

func TestCurrentFacultyNoneUntilActive(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	faculty, _ := makeCatalog(t)
	student := makeUser(t, models.RoleStudent)

	_, err := CurrentFaculty(ctx, student.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Outside debug mode the affiliation starts inactive, so the student
	// still has no current faculty.
	aff, err := SelectFaculty(ctx, student.ID, faculty.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.AffiliationInactive, aff.Status)

	_, err = CurrentFaculty(ctx, student.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// In debug mode the affiliation is active immediately.
	aff, err = SelectFaculty(ctx, student.ID, faculty.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.AffiliationActive, aff.Status)

	current, err := CurrentFaculty(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, faculty.ID, current.FacultyID)
}

func TestCurrentFacultyPicksLowestActiveID(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	first, _ := makeCatalog(t)
	second, err := CreateFaculty(ctx, "Physics", nil, nil)
	require.NoError(t, err)

	student := makeUser(t, models.RoleStudent)

	a, err := SelectFaculty(ctx, student.ID, first.ID, true)
	require.NoError(t, err)
	_, err = SelectFaculty(ctx, student.ID, second.ID, true)
	require.NoError(t, err)

	current, err := CurrentFaculty(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, current.ID)
	assert.Equal(t, first.ID, current.FacultyID)

	// Deactivating the first row moves the selection to the next active.
	require.NoError(t, DB.Model(&models.StudentFaculty{}).
		Where("id = ?", a.ID).
		Update("status", models.AffiliationGraduated).Error)

	current, err = CurrentFaculty(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.FacultyID)
}

// Selecting the same faculty twice is allowed; rows accumulate.
func TestSelectFacultyAllowsDuplicates(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	faculty, _ := makeCatalog(t)
	student := makeUser(t, models.RoleStudent)

	_, err := SelectFaculty(ctx, student.ID, faculty.ID, true)
	require.NoError(t, err)
	_, err = SelectFaculty(ctx, student.ID, faculty.ID, true)
	require.NoError(t, err)

	var n int64
	require.NoError(t, DB.Model(&models.StudentFaculty{}).
		Where("student_id = ? AND faculty_id = ?", student.ID, faculty.ID).
		Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestSelectFacultyUnknownFaculty(t *testing.T) {
	setupTestDB(t)

	student := makeUser(t, models.RoleStudent)
	_, err := SelectFaculty(context.Background(), student.ID, 12345, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateFacultyRejectsNonLecturer(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	student := makeUser(t, models.RoleStudent)
	_, err := CreateFaculty(ctx, "Chemistry", nil, []uint{student.ID})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	lecturer := makeUser(t, models.RoleLecturer)
	faculty, err := CreateFaculty(ctx, "Chemistry", nil, []uint{lecturer.ID})
	require.NoError(t, err)

	got, err := GetFaculty(ctx, faculty.ID)
	require.NoError(t, err)
	require.Len(t, got.Lecturers, 1)
	assert.Equal(t, lecturer.ID, got.Lecturers[0].ID)
}
