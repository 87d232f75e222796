package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/open-academy/academy-back/internal/models"
)

var userSeq int

func setupTestDB(t *testing.T) {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(g))
	DB = g
}

func makeUser(t *testing.T, role string) *models.User {
	t.Helper()

	userSeq++
	u := &models.User{
		Email:        fmt.Sprintf("%s%d@academy.test", role, userSeq),
		PasswordHash: "x",
		UserType:     role,
		IsAuthorized: true,
	}
	require.NoError(t, CreateUser(context.Background(), u))
	return u
}

// makeCatalog creates a subject and a faculty containing it.
func makeCatalog(t *testing.T) (*models.Faculty, *models.Subject) {
	t.Helper()

	subject := &models.Subject{Name: "Algebra", Description: "Linear algebra"}
	require.NoError(t, CreateSubject(context.Background(), subject))

	faculty, err := CreateFaculty(context.Background(), "Mathematics", []uint{subject.ID}, nil)
	require.NoError(t, err)
	return faculty, subject
}

func makeClassroom(t *testing.T, lecturerID, subjectID uint, maxStudents int) *models.Classroom {
	t.Helper()

	room, err := CreateClassroom(context.Background(), lecturerID, subjectID, maxStudents, 10)
	require.NoError(t, err)
	return room
}

// enrollActive gives a student an active affiliation and joins the room.
func enrollActive(t *testing.T, student *models.User, facultyID uint, room *models.Classroom) {
	t.Helper()

	_, err := SelectFaculty(context.Background(), student.ID, facultyID, true)
	require.NoError(t, err)
	require.NoError(t, JoinClassroom(context.Background(), student.ID, room.ID))
}
