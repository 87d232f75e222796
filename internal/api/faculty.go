package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/open-academy/academy-back/internal/auth"
	"github.com/open-academy/academy-back/internal/config"
	"github.com/open-academy/academy-back/internal/db"
	"github.com/open-academy/academy-back/internal/models"
)

// CreateSubjectRequest is the request body for creating a subject.
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CreateSubject godoc
// @Summary      Create a subject
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  CreateSubjectRequest  true  "Subject"
// @Success      200   {object} models.Subject
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/subjects [post]
func CreateSubject(c *gin.Context) {
	var req CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	subject := models.Subject{Name: req.Name, Description: req.Description}
	if err := db.CreateSubject(context.Background(), &subject); err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

// ListSubjects godoc
// @Summary      List subjects
// @Tags         catalog
// @Produce      json
// @Success      200 {array} models.Subject
// @Security     BearerAuth
// @Router       /subjects [get]
func ListSubjects(c *gin.Context) {
	subjects, err := db.ListSubjects(context.Background())
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// CreateFacultyRequest is the request body for creating a faculty.
type CreateFacultyRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	SubjectIDs  []uint `json:"subject_ids"`
	LecturerIDs []uint `json:"lecturer_ids"`
}

// CreateFaculty godoc
// @Summary      Create a faculty
// @Description  Groups subjects and lecturers under a named faculty
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  CreateFacultyRequest  true  "Faculty"
// @Success      200   {object} models.Faculty
// @Failure      400   {object} map[string]string
// @Failure      403   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/faculties [post]
func CreateFaculty(c *gin.Context) {
	var req CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	faculty, err := db.CreateFaculty(context.Background(), req.Name, req.SubjectIDs, req.LecturerIDs)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, faculty)
}

// ListFaculties godoc
// @Summary      List faculties
// @Tags         catalog
// @Produce      json
// @Success      200 {array} models.Faculty
// @Security     BearerAuth
// @Router       /faculties [get]
func ListFaculties(c *gin.Context) {
	faculties, err := db.ListFaculties(context.Background())
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, faculties)
}

// GetFaculty godoc
// @Summary      Get a faculty with its subjects and lecturer roster
// @Tags         catalog
// @Produce      json
// @Param        id  path  int  true  "Faculty ID"
// @Success      200 {object} models.Faculty
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /faculties/{id} [get]
func GetFaculty(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	faculty, err := db.GetFaculty(context.Background(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, faculty)
}

// SelectFacultyRequest is the request body for a student's faculty choice.
type SelectFacultyRequest struct {
	FacultyID uint `json:"faculty_id" binding:"required"`
}

// SelectFaculty godoc
// @Summary      Select a faculty
// @Description  Records the student's faculty affiliation; active immediately only in debug mode
// @Tags         student
// @Accept       json
// @Produce      json
// @Param        body  body  SelectFacultyRequest  true  "Faculty choice"
// @Success      200   {object} models.StudentFaculty
// @Failure      404   {object} map[string]string
// @Security     BearerAuth
// @Router       /student/faculty [post]
func SelectFaculty(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SelectFacultyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		user := auth.CurrentUser(c)
		affiliation, err := db.SelectFaculty(context.Background(), user.ID, req.FacultyID, cfg.Debug)
		if err != nil {
			failWith(c, err)
			return
		}
		c.JSON(http.StatusOK, affiliation)
	}
}

// CurrentFaculty godoc
// @Summary      Get the student's current faculty affiliation
// @Tags         student
// @Produce      json
// @Success      200 {object} models.StudentFaculty
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /student/faculty [get]
func CurrentFaculty(c *gin.Context) {
	user := auth.CurrentUser(c)

	affiliation, err := db.CurrentFaculty(context.Background(), user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active faculty affiliation"})
			return
		}
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, affiliation)
}
