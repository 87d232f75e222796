package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/open-academy/academy-back/internal/models"
)

func CreateUser(ctx context.Context, u *models.User) error {
	var existing models.User
	err := DB.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return DB.WithContext(ctx).Create(u).Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetAuthorized flips the authorization flag that gates every protected
// route. Admin only.
func SetAuthorized(ctx context.Context, userID uint, authorized bool) error {
	res := DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_authorized", authorized)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
