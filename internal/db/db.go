package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/open-academy/academy-back/internal/models"
)

var DB *gorm.DB

func InitDB(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// AutoMigrate will create/update tables automatically
	if err := Migrate(DB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	fmt.Println("✅ Database connected and migrated")
}

// Migrate runs AutoMigrate for the full model set. Exposed so tests can
// prepare their own database.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.Faculty{},
		&models.StudentFaculty{},
		&models.Classroom{},
		&models.StudentClassroom{},
		&models.CalendarEntry{},
		&models.Attendance{},
		&models.Homework{},
		&models.HomeworkSubmission{},
	)
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
