package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/open-academy/academy-back/internal/auth"
	"github.com/open-academy/academy-back/internal/db"
)

// PublishHomeworkRequest is the request body for publishing homework.
// When omitted, DueDate falls back to now and IsActive to true.
type PublishHomeworkRequest struct {
	Title       string     `json:"title" binding:"required,max=100"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsActive    *bool      `json:"is_active"`
}

// PublishHomework godoc
// @Summary      Publish homework for a classroom
// @Tags         lecturer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "Classroom ID"
// @Param        body  body  PublishHomeworkRequest  true  "Homework"
// @Success      200   {object} models.Homework
// @Failure      403   {object} map[string]string
// @Security     BearerAuth
// @Router       /lecturer/classrooms/{id}/homework [post]
func PublishHomework(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	if _, ok := ownedClassroom(c, id); !ok {
		return
	}

	var req PublishHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	dueDate := time.Now()
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	hw, err := db.PublishHomework(context.Background(), id, req.Title, req.Description, dueDate, isActive)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, hw)
}

// ListHomework godoc
// @Summary      List a classroom's homework
// @Description  Active homework first, most recently due on top
// @Tags         classroom
// @Produce      json
// @Param        id  path  int  true  "Classroom ID"
// @Success      200 {array} models.Homework
// @Security     BearerAuth
// @Router       /classrooms/{id}/homework [get]
func ListHomework(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	homework, err := db.ListHomework(context.Background(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, homework)
}

// SubmitHomeworkRequest is the request body for a homework submission:
// a URL, free text, or both.
type SubmitHomeworkRequest struct {
	URL  string  `json:"url" binding:"omitempty,url,max=200"`
	Text *string `json:"text"`
}

// SubmitHomework godoc
// @Summary      Submit an answer to a homework
// @Description  A resubmission replaces the previous answer; each student keeps one submission per homework
// @Tags         student
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "Homework ID"
// @Param        body  body  SubmitHomeworkRequest  true  "Answer"
// @Success      200   {object} models.HomeworkSubmission
// @Failure      403   {object} map[string]string
// @Failure      404   {object} map[string]string
// @Security     BearerAuth
// @Router       /student/homework/{id}/submit [post]
func SubmitHomework(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req SubmitHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user := auth.CurrentUser(c)
	submission, err := db.SubmitHomework(context.Background(), user.ID, id, req.URL, req.Text)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

// HomeworkTodo godoc
// @Summary      List homework the student has not submitted yet
// @Tags         student
// @Produce      json
// @Success      200 {array} models.Homework
// @Security     BearerAuth
// @Router       /student/homework/todo [get]
func HomeworkTodo(c *gin.Context) {
	user := auth.CurrentUser(c)
	homework, err := db.UnsubmittedHomework(context.Background(), user.ID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, homework)
}
