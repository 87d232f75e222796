package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/open-academy/academy-back/internal/models"
)

// CalendarSlot is one requested session when a lecturer populates the
// classroom calendar.
type CalendarSlot struct {
	Date      time.Time
	StartTime time.Time
}

// DefineCalendar creates one session per slot, all with the given default
// duration. The slot count is deliberately not checked against the
// classroom's number_of_classes, and past or duplicate dates are accepted;
// the calendar form is trusted as-is.
func DefineCalendar(ctx context.Context, classroomID uint, slots []CalendarSlot, duration int) ([]models.CalendarEntry, error) {
	var room models.Classroom
	if err := DB.WithContext(ctx).First(&room, classroomID).Error; err != nil {
		return nil, err
	}

	entries := make([]models.CalendarEntry, 0, len(slots))
	for _, slot := range slots {
		entries = append(entries, models.CalendarEntry{
			ClassroomID: classroomID,
			Date:        slot.Date,
			StartTime:   slot.StartTime,
			Duration:    duration,
		})
	}
	if len(entries) == 0 {
		return entries, nil
	}
	if err := DB.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func ListCalendar(ctx context.Context, classroomID uint) ([]models.CalendarEntry, error) {
	var entries []models.CalendarEntry
	err := DB.WithContext(ctx).
		Where("classroom_id = ?", classroomID).
		Order("date, start_time").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func GetCalendarEntry(ctx context.Context, id uint) (*models.CalendarEntry, error) {
	var entry models.CalendarEntry
	if err := DB.WithContext(ctx).Preload("Classroom").First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// RecordAttendance applies one attendance form submission for a session.
// Present students get a row (created or re-confirmed), absent students get
// their row deleted. Presence is represented purely by row existence, so a
// resubmission fully replaces the previous set of present students that it
// mentions.
func RecordAttendance(ctx context.Context, entryID uint, presence map[uint]bool) error {
	if _, err := GetCalendarEntry(ctx, entryID); err != nil {
		return err
	}

	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for studentID, present := range presence {
			if !present {
				err := tx.Where("calendar_entry_id = ? AND student_id = ?", entryID, studentID).
					Delete(&models.Attendance{}).Error
				if err != nil {
					return err
				}
				continue
			}

			var record models.Attendance
			err := tx.Where("calendar_entry_id = ? AND student_id = ?", entryID, studentID).
				First(&record).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				record = models.Attendance{
					CalendarEntryID: entryID,
					StudentID:       studentID,
					Status:          true,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&record).Update("status", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func SessionAttendance(ctx context.Context, entryID uint) ([]models.Attendance, error) {
	var records []models.Attendance
	err := DB.WithContext(ctx).
		Where("calendar_entry_id = ?", entryID).
		Order("student_id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ClassroomAttendance returns every attendance row across a classroom's
// sessions, for the register export.
func ClassroomAttendance(ctx context.Context, classroomID uint) ([]models.Attendance, error) {
	var records []models.Attendance
	err := DB.WithContext(ctx).
		Joins("JOIN calendar_entries ON calendar_entries.id = attendances.calendar_entry_id").
		Where("calendar_entries.classroom_id = ?", classroomID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
