package db

import (
	"context"

	"github.com/open-academy/academy-back/internal/models"
)

func CreateSubject(ctx context.Context, s *models.Subject) error {
	return DB.WithContext(ctx).Create(s).Error
}

func ListSubjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := DB.WithContext(ctx).Order("name").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

// CreateFaculty builds the reference record linking subjects and lecturers.
// Every user attached as a lecturer must actually hold the lecturer role.
func CreateFaculty(ctx context.Context, name string, subjectIDs, lecturerIDs []uint) (*models.Faculty, error) {
	var subjects []models.Subject
	if len(subjectIDs) > 0 {
		if err := DB.WithContext(ctx).Find(&subjects, subjectIDs).Error; err != nil {
			return nil, err
		}
	}

	var lecturers []models.User
	if len(lecturerIDs) > 0 {
		if err := DB.WithContext(ctx).Find(&lecturers, lecturerIDs).Error; err != nil {
			return nil, err
		}
		for _, l := range lecturers {
			if !l.IsLecturer() {
				return nil, ErrNotAuthorized
			}
		}
	}

	faculty := models.Faculty{Name: name, Subjects: subjects, Lecturers: lecturers}
	if err := DB.WithContext(ctx).Create(&faculty).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

func GetFaculty(ctx context.Context, id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	err := DB.WithContext(ctx).
		Preload("Subjects").
		Preload("Lecturers").
		First(&faculty, id).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func ListFaculties(ctx context.Context) ([]models.Faculty, error) {
	var faculties []models.Faculty
	if err := DB.WithContext(ctx).Preload("Subjects").Order("name").Find(&faculties).Error; err != nil {
		return nil, err
	}
	return faculties, nil
}

// SelectFaculty records a student's faculty choice. The status starts out
// active only in debug mode; in production an administrator activates it
// later. Nothing stops a student from selecting the same faculty twice --
// duplicate rows are an accepted quirk of the data model.
func SelectFaculty(ctx context.Context, studentID, facultyID uint, debug bool) (*models.StudentFaculty, error) {
	var faculty models.Faculty
	if err := DB.WithContext(ctx).First(&faculty, facultyID).Error; err != nil {
		return nil, err
	}

	status := models.AffiliationInactive
	if debug {
		status = models.AffiliationActive
	}

	affiliation := models.StudentFaculty{
		StudentID: studentID,
		FacultyID: facultyID,
		Status:    status,
	}
	if err := DB.WithContext(ctx).Create(&affiliation).Error; err != nil {
		return nil, err
	}
	return &affiliation, nil
}

// CurrentFaculty returns the student's current affiliation: the active row
// with the lowest id. Returns gorm.ErrRecordNotFound when the student has
// no active affiliation.
func CurrentFaculty(ctx context.Context, studentID uint) (*models.StudentFaculty, error) {
	var affiliation models.StudentFaculty
	err := DB.WithContext(ctx).
		Preload("Faculty").
		Preload("Faculty.Subjects").
		Where("student_id = ? AND status = ?", studentID, models.AffiliationActive).
		Order("id").
		First(&affiliation).Error
	if err != nil {
		return nil, err
	}
	return &affiliation, nil
}
