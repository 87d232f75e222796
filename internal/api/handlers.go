package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/open-academy/academy-back/internal/auth"
	"github.com/open-academy/academy-back/internal/db"
	"github.com/open-academy/academy-back/internal/models"
)

// UserProfileResponse is a safe version of User for API responses
type UserProfileResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	UserType     string `json:"user_type"`
	IsAuthorized bool   `json:"is_authorized"`
}

// GetMe godoc
// @Summary      Get current user profile
// @Tags         user
// @Produce      json
// @Success      200 {object} UserProfileResponse
// @Failure      401 {object} map[string]string
// @Security     BearerAuth
// @Router       /me [get]
func GetMe(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, UserProfileResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		UserType:     user.UserType,
		IsAuthorized: user.IsAuthorized,
	})
}

// AuthorizeRequest is the request body for toggling the authorization flag.
type AuthorizeRequest struct {
	Authorized bool `json:"authorized"`
}

// AuthorizeUser godoc
// @Summary      Toggle a user's authorization flag
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "User ID"
// @Param        body  body  AuthorizeRequest  true  "Flag"
// @Success      200   {object} map[string]string
// @Failure      404   {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/users/{id}/authorize [patch]
func AuthorizeUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := db.SetAuthorized(context.Background(), id, req.Authorized); err != nil {
		failWith(c, err)
		return
	}

	c.JSON(200, gin.H{"message": "Authorization updated"})
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// failWith maps db-layer failures to HTTP statuses.
func failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, db.ErrClassroomFull):
		c.JSON(http.StatusConflict, gin.H{"error": "Classroom is full"})
	case errors.Is(err, db.ErrAlreadyEnrolled):
		c.JSON(http.StatusConflict, gin.H{"error": "Already enrolled"})
	case errors.Is(err, db.ErrNotEnrolled):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not enrolled in this classroom"})
	case errors.Is(err, db.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// ownedClassroom loads a classroom and checks the current lecturer owns it.
// Writes the error response itself when the check fails.
func ownedClassroom(c *gin.Context, classroomID uint) (*models.Classroom, bool) {
	room, err := db.GetClassroom(context.Background(), classroomID)
	if err != nil {
		failWith(c, err)
		return nil, false
	}
	user := auth.CurrentUser(c)
	if user == nil || room.LecturerID != user.ID {
		failWith(c, db.ErrNotAuthorized)
		return nil, false
	}
	return room, true
}
