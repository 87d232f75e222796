package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/open-academy/academy-back/internal/models"
)

func CreateClassroom(ctx context.Context, lecturerID, subjectID uint, maxStudents, numberOfClasses int) (*models.Classroom, error) {
	var subject models.Subject
	if err := DB.WithContext(ctx).First(&subject, subjectID).Error; err != nil {
		return nil, err
	}

	room := models.Classroom{
		SubjectID:       subjectID,
		LecturerID:      lecturerID,
		IsActive:        true,
		MaxStudents:     maxStudents,
		NumberOfClasses: numberOfClasses,
	}
	if err := DB.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, err
	}
	room.Subject = subject
	return &room, nil
}

func GetClassroom(ctx context.Context, id uint) (*models.Classroom, error) {
	var room models.Classroom
	if err := DB.WithContext(ctx).Preload("Subject").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func SetSyllabus(ctx context.Context, classroomID uint, path string) error {
	res := DB.WithContext(ctx).Model(&models.Classroom{}).
		Where("id = ?", classroomID).
		Update("syllabus", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func ClassroomsByLecturer(ctx context.Context, lecturerID uint) ([]models.Classroom, error) {
	var rooms []models.Classroom
	err := DB.WithContext(ctx).
		Preload("Subject").
		Where("lecturer_id = ?", lecturerID).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func ClassroomsOfStudent(ctx context.Context, studentID uint) ([]models.Classroom, error) {
	var rooms []models.Classroom
	err := DB.WithContext(ctx).
		Preload("Subject").
		Joins("JOIN student_classrooms ON student_classrooms.classroom_id = classrooms.id").
		Where("student_classrooms.student_id = ?", studentID).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// AvailableClassrooms lists the classrooms a student can still join: subject
// in the current faculty's set, not full, not already joined. A student with
// no active affiliation sees nothing.
func AvailableClassrooms(ctx context.Context, studentID uint) ([]models.Classroom, error) {
	affiliation, err := CurrentFaculty(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Classroom{}, nil
		}
		return nil, err
	}

	var subjectIDs []uint
	err = DB.WithContext(ctx).Table("faculty_subjects").
		Where("faculty_id = ?", affiliation.FacultyID).
		Pluck("subject_id", &subjectIDs).Error
	if err != nil {
		return nil, err
	}
	if len(subjectIDs) == 0 {
		return []models.Classroom{}, nil
	}

	enrolled := DB.WithContext(ctx).Model(&models.StudentClassroom{}).
		Select("classroom_id").
		Where("student_id = ?", studentID)

	var rooms []models.Classroom
	err = DB.WithContext(ctx).
		Preload("Subject").
		Where("subject_id IN ? AND is_full = ?", subjectIDs, false).
		Where("id NOT IN (?)", enrolled).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func IsEnrolled(ctx context.Context, studentID, classroomID uint) (bool, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&models.StudentClassroom{}).
		Where("student_id = ? AND classroom_id = ?", studentID, classroomID).
		Count(&count).Error
	return count > 0, err
}

func EnrolledStudents(ctx context.Context, classroomID uint) ([]models.User, error) {
	var students []models.User
	err := DB.WithContext(ctx).
		Joins("JOIN student_classrooms ON student_classrooms.student_id = users.id").
		Where("student_classrooms.classroom_id = ?", classroomID).
		Order("users.id").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// JoinClassroom adds a student to a classroom. The capacity check, the
// membership insert and the is_full recompute run in one transaction with
// the classroom row locked, so two concurrent joins cannot both slip past
// the capacity check. Invariant: after this returns, is_full equals
// enrolled_count >= max_students.
func JoinClassroom(ctx context.Context, studentID, classroomID uint) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// SQLite (tests) has no FOR UPDATE; its writes are serialized anyway.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var room models.Classroom
		if err := q.First(&room, classroomID).Error; err != nil {
			return err
		}
		if room.IsFull {
			return ErrClassroomFull
		}

		var member int64
		err := tx.Model(&models.StudentClassroom{}).
			Where("student_id = ? AND classroom_id = ?", studentID, classroomID).
			Count(&member).Error
		if err != nil {
			return err
		}
		if member > 0 {
			return ErrAlreadyEnrolled
		}

		membership := models.StudentClassroom{StudentID: studentID, ClassroomID: classroomID}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}

		var enrolled int64
		err = tx.Model(&models.StudentClassroom{}).
			Where("classroom_id = ?", classroomID).
			Count(&enrolled).Error
		if err != nil {
			return err
		}
		return tx.Model(&room).Update("is_full", enrolled >= int64(room.MaxStudents)).Error
	})
}
