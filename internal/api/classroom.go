package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/open-academy/academy-back/internal/auth"
	"github.com/open-academy/academy-back/internal/config"
	"github.com/open-academy/academy-back/internal/db"
	"github.com/open-academy/academy-back/internal/storage"
)

// CreateClassroom godoc
// @Summary      Create a classroom
// @Description  Multipart form: subject_id plus an optional syllabus file. Capacity and session count fall back to the configured defaults.
// @Tags         lecturer
// @Accept       multipart/form-data
// @Produce      json
// @Param        subject_id   formData  int   true   "Subject ID"
// @Param        max_students formData  int   false  "Capacity limit"
// @Param        syllabus     formData  file  false  "Syllabus file"
// @Success      200  {object} models.Classroom
// @Failure      404  {object} map[string]string
// @Security     BearerAuth
// @Router       /lecturer/classrooms [post]
func CreateClassroom(cfg *config.Config, store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		subjectID, err := strconv.ParseUint(c.PostForm("subject_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject_id"})
			return
		}

		maxStudents := cfg.MaxClassroomSize
		if v := c.PostForm("max_students"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				maxStudents = n
			}
		}
		numberOfClasses := cfg.NumberOfClasses
		if v := c.PostForm("number_of_classes"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				numberOfClasses = n
			}
		}

		user := auth.CurrentUser(c)
		room, err := db.CreateClassroom(context.Background(), user.ID, uint(subjectID), maxStudents, numberOfClasses)
		if err != nil {
			failWith(c, err)
			return
		}

		if file, err := c.FormFile("syllabus"); err == nil {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read syllabus"})
				return
			}
			defer src.Close()

			key := fmt.Sprintf("syllabus/%d/%s%s", room.ID, uuid.NewString(), filepath.Ext(file.Filename))
			stored, err := store.Upload(context.Background(), key, src)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store syllabus"})
				return
			}
			if err := db.SetSyllabus(context.Background(), room.ID, stored); err != nil {
				failWith(c, err)
				return
			}
			room.Syllabus = stored
		}

		c.JSON(http.StatusOK, room)
	}
}

// OwnedClassrooms godoc
// @Summary      List classrooms owned by the lecturer
// @Tags         lecturer
// @Produce      json
// @Success      200 {array} models.Classroom
// @Security     BearerAuth
// @Router       /lecturer/classrooms [get]
func OwnedClassrooms(c *gin.Context) {
	user := auth.CurrentUser(c)
	rooms, err := db.ClassroomsByLecturer(context.Background(), user.ID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// MyClassrooms godoc
// @Summary      List classrooms the student is enrolled in
// @Tags         student
// @Produce      json
// @Success      200 {array} models.Classroom
// @Security     BearerAuth
// @Router       /student/classrooms [get]
func MyClassrooms(c *gin.Context) {
	user := auth.CurrentUser(c)
	rooms, err := db.ClassroomsOfStudent(context.Background(), user.ID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// AvailableClassrooms godoc
// @Summary      List classrooms the student can join
// @Description  Classrooms of the current faculty's subjects that are not full and not already joined
// @Tags         student
// @Produce      json
// @Success      200 {array} models.Classroom
// @Security     BearerAuth
// @Router       /student/classrooms/available [get]
func AvailableClassrooms(c *gin.Context) {
	user := auth.CurrentUser(c)
	rooms, err := db.AvailableClassrooms(context.Background(), user.ID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// JoinClassroom godoc
// @Summary      Join a classroom
// @Description  Fails with 409 when the classroom is full or the student already joined
// @Tags         student
// @Produce      json
// @Param        id  path  int  true  "Classroom ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Security     BearerAuth
// @Router       /student/classrooms/{id}/join [post]
func JoinClassroom(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	user := auth.CurrentUser(c)
	if err := db.JoinClassroom(context.Background(), user.ID, id); err != nil {
		failWith(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Joined classroom"})
}

// DownloadSyllabus godoc
// @Summary      Download a classroom's syllabus
// @Tags         classroom
// @Produce      application/octet-stream
// @Param        id  path  int  true  "Classroom ID"
// @Success      200
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /classrooms/{id}/syllabus [get]
func DownloadSyllabus(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		room, err := db.GetClassroom(context.Background(), id)
		if err != nil {
			failWith(c, err)
			return
		}
		if room.Syllabus == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "No syllabus uploaded"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(room.Syllabus)))
		c.Header("Content-Type", "application/octet-stream")
		if err := store.Download(c.Request.Context(), room.Syllabus, c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch syllabus"})
			return
		}
	}
}
