package excel

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/open-academy/academy-back/internal/db"
)

// WriteRegister renders the attendance register for one classroom: a row
// per enrolled student, a column per calendar session, a check mark where a
// presence record exists.
func WriteRegister(ctx context.Context, classroomID uint, w io.Writer) error {
	room, err := db.GetClassroom(ctx, classroomID)
	if err != nil {
		return err
	}

	entries, err := db.ListCalendar(ctx, classroomID)
	if err != nil {
		return err
	}
	students, err := db.EnrolledStudents(ctx, classroomID)
	if err != nil {
		return err
	}
	records, err := db.ClassroomAttendance(ctx, classroomID)
	if err != nil {
		return err
	}

	present := make(map[uint]map[uint]bool)
	for _, rec := range records {
		if present[rec.CalendarEntryID] == nil {
			present[rec.CalendarEntryID] = make(map[uint]bool)
		}
		present[rec.CalendarEntryID][rec.StudentID] = true
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s attendance", room.Subject.Name))
	f.SetCellValue(sheet, "A2", "Student")

	for i, entry := range entries {
		cell, err := excelize.CoordinatesToCellName(i+2, 2)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, entry.Date.Format("2006-01-02"))
	}

	for row, student := range students {
		nameCell, err := excelize.CoordinatesToCellName(1, row+3)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, nameCell, student.FirstName+" "+student.LastName)

		for col, entry := range entries {
			if !present[entry.ID][student.ID] {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+2, row+3)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, "✓")
		}
	}

	_, err = f.WriteTo(w)
	return err
}
