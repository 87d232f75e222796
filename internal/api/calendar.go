package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/open-academy/academy-back/internal/config"
	"github.com/open-academy/academy-back/internal/db"
	"github.com/open-academy/academy-back/internal/excel"
)

// SessionSlot is one date/start-time pair in a calendar definition.
type SessionSlot struct {
	Date      string `json:"date" binding:"required"`       // 2006-01-02
	StartTime string `json:"start_time" binding:"required"` // 15:04
}

// DefineCalendarRequest is the request body for populating a classroom
// calendar: one slot per expected session.
type DefineCalendarRequest struct {
	Sessions []SessionSlot `json:"sessions" binding:"required,dive"`
}

// DefineCalendar godoc
// @Summary      Define the classroom calendar
// @Description  Creates one session per slot with the default lecture duration. The slot count is not checked against number_of_classes.
// @Tags         lecturer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "Classroom ID"
// @Param        body  body  DefineCalendarRequest  true  "Session slots"
// @Success      200   {array}  models.CalendarEntry
// @Failure      400   {object} map[string]string
// @Failure      403   {object} map[string]string
// @Security     BearerAuth
// @Router       /lecturer/classrooms/{id}/calendar [post]
func DefineCalendar(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		if _, ok := ownedClassroom(c, id); !ok {
			return
		}

		var req DefineCalendarRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		slots := make([]db.CalendarSlot, 0, len(req.Sessions))
		for _, s := range req.Sessions {
			date, err := time.Parse("2006-01-02", s.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid date %q", s.Date)})
				return
			}
			start, err := time.Parse("15:04", s.StartTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid start time %q", s.StartTime)})
				return
			}
			slots = append(slots, db.CalendarSlot{Date: date, StartTime: start})
		}

		entries, err := db.DefineCalendar(context.Background(), id, slots, cfg.LectureDuration)
		if err != nil {
			failWith(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// ListCalendar godoc
// @Summary      List a classroom's sessions
// @Tags         classroom
// @Produce      json
// @Param        id  path  int  true  "Classroom ID"
// @Success      200 {array} models.CalendarEntry
// @Security     BearerAuth
// @Router       /classrooms/{id}/calendar [get]
func ListCalendar(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	entries, err := db.ListCalendar(context.Background(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// RecordAttendanceRequest maps student IDs to their presence for one
// session. Students marked false get their record removed.
type RecordAttendanceRequest struct {
	Presence map[uint]bool `json:"presence" binding:"required"`
}

// RecordAttendance godoc
// @Summary      Record attendance for a session
// @Description  Present students get a record, absent students lose theirs. Resubmitting replaces the previous set.
// @Tags         lecturer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "Session ID"
// @Param        body  body  RecordAttendanceRequest  true  "Presence by student"
// @Success      200   {object} map[string]string
// @Failure      403   {object} map[string]string
// @Failure      404   {object} map[string]string
// @Security     BearerAuth
// @Router       /lecturer/sessions/{id}/attendance [post]
func RecordAttendance(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	entry, err := db.GetCalendarEntry(context.Background(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	if _, ok := ownedClassroom(c, entry.ClassroomID); !ok {
		return
	}

	var req RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := db.RecordAttendance(context.Background(), id, req.Presence); err != nil {
		failWith(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Attendance recorded"})
}

// SessionAttendance godoc
// @Summary      List present students for a session
// @Tags         lecturer
// @Produce      json
// @Param        id  path  int  true  "Session ID"
// @Success      200 {array} models.Attendance
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /lecturer/sessions/{id}/attendance [get]
func SessionAttendance(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	entry, err := db.GetCalendarEntry(context.Background(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	if _, ok := ownedClassroom(c, entry.ClassroomID); !ok {
		return
	}

	records, err := db.SessionAttendance(context.Background(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// ExportRegister godoc
// @Summary      Export the classroom attendance register as xlsx
// @Tags         lecturer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  int  true  "Classroom ID"
// @Success      200
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /lecturer/classrooms/{id}/attendance.xlsx [get]
func ExportRegister(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	if _, ok := ownedClassroom(c, id); !ok {
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attendance-%d.xlsx", id))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := excel.WriteRegister(context.Background(), id, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build register"})
		return
	}
}
