package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/open-academy/academy-back/internal/models"
)

func PublishHomework(ctx context.Context, classroomID uint, title, description string, dueDate time.Time, isActive bool) (*models.Homework, error) {
	var room models.Classroom
	if err := DB.WithContext(ctx).First(&room, classroomID).Error; err != nil {
		return nil, err
	}

	hw := models.Homework{
		ClassroomID: classroomID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		IsActive:    isActive,
	}
	if err := DB.WithContext(ctx).Create(&hw).Error; err != nil {
		return nil, err
	}
	return &hw, nil
}

func GetHomework(ctx context.Context, id uint) (*models.Homework, error) {
	var hw models.Homework
	if err := DB.WithContext(ctx).Preload("Classroom").First(&hw, id).Error; err != nil {
		return nil, err
	}
	return &hw, nil
}

// ListHomework orders active homework first, most recently due on top.
func ListHomework(ctx context.Context, classroomID uint) ([]models.Homework, error) {
	var homework []models.Homework
	err := DB.WithContext(ctx).
		Where("classroom_id = ?", classroomID).
		Order("is_active DESC, due_date DESC").
		Find(&homework).Error
	if err != nil {
		return nil, err
	}
	return homework, nil
}

// SubmitHomework stores a student's answer, updating any previous one in
// place so each (student, homework) pair keeps at most one submission. The
// student must be enrolled in the homework's classroom.
func SubmitHomework(ctx context.Context, studentID, homeworkID uint, url string, text *string) (*models.HomeworkSubmission, error) {
	hw, err := GetHomework(ctx, homeworkID)
	if err != nil {
		return nil, err
	}

	enrolled, err := IsEnrolled(ctx, studentID, hw.ClassroomID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	var submission models.HomeworkSubmission
	err = DB.WithContext(ctx).
		Where("student_id = ? AND homework_id = ?", studentID, homeworkID).
		First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		submission = models.HomeworkSubmission{
			StudentID:   studentID,
			HomeworkID:  homeworkID,
			ClassroomID: hw.ClassroomID,
			URL:         url,
			Text:        text,
		}
		if err := DB.WithContext(ctx).Create(&submission).Error; err != nil {
			return nil, err
		}
		return &submission, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"url": url, "text": text}
	if err := DB.WithContext(ctx).Model(&submission).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func SubmissionsByStudent(ctx context.Context, studentID uint) ([]models.HomeworkSubmission, error) {
	var submissions []models.HomeworkSubmission
	err := DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// UnsubmittedHomework builds the student's to-do list: homework in any
// enrolled classroom without a submission from this student.
func UnsubmittedHomework(ctx context.Context, studentID uint) ([]models.Homework, error) {
	enrolled := DB.WithContext(ctx).Model(&models.StudentClassroom{}).
		Select("classroom_id").
		Where("student_id = ?", studentID)

	submitted := DB.WithContext(ctx).Model(&models.HomeworkSubmission{}).
		Select("homework_id").
		Where("student_id = ?", studentID)

	var homework []models.Homework
	err := DB.WithContext(ctx).
		Where("classroom_id IN (?)", enrolled).
		Where("id NOT IN (?)", submitted).
		Order("is_active DESC, due_date DESC").
		Find(&homework).Error
	if err != nil {
		return nil, err
	}
	return homework, nil
}

// DeactivateOverdueHomework flips is_active off for homework past its due
// date. Run daily by the cron job.
func DeactivateOverdueHomework(ctx context.Context, now time.Time) (int64, error) {
	res := DB.WithContext(ctx).Model(&models.Homework{}).
		Where("is_active = ? AND due_date < ?", true, now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}
