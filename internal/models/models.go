package models

import "time"

// User roles. Admin accounts are created from the backoffice, never through
// the public registration form.
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
	RoleAdmin    = "admin"
)

// Faculty affiliation lifecycle statuses.
const (
	AffiliationActive    = "active"
	AffiliationInactive  = "inactive"
	AffiliationGraduated = "graduated"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	UserType     string `gorm:"size:10" json:"user_type"`
	IsAuthorized bool   `json:"is_authorized"`
}

func (u *User) IsStudent() bool {
	return u.UserType == RoleStudent
}

func (u *User) IsLecturer() bool {
	return u.UserType == RoleLecturer
}

func (u *User) IsAdmin() bool {
	return u.UserType == RoleAdmin
}

type Subject struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `json:"description"`
}

type Faculty struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Subjects  []Subject `gorm:"many2many:faculty_subjects;" json:"subjects"`
	Lecturers []User    `gorm:"many2many:faculty_lecturers;" json:"lecturers"`
}

// StudentFaculty links a student to a faculty with a lifecycle status.
// A student may accumulate several rows over time; the enrollment rules
// treat the lowest-id active row as the current affiliation.
type StudentFaculty struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID uint   `gorm:"not null;index" json:"student_id"`
	FacultyID uint   `gorm:"not null" json:"faculty_id"`
	Status    string `gorm:"size:10" json:"status"`

	Student User    `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
	Faculty Faculty `gorm:"constraint:OnDelete:CASCADE;" json:"faculty"`
}

type Classroom struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	SubjectID       uint   `gorm:"not null" json:"subject_id"`
	LecturerID      uint   `gorm:"not null" json:"lecturer_id"`
	IsFull          bool   `json:"is_full"`
	IsActive        bool   `json:"is_active"`
	MaxStudents     int    `gorm:"not null" json:"max_students"`
	Syllabus        string `json:"syllabus"`
	NumberOfClasses int    `gorm:"not null" json:"number_of_classes"`

	Subject  Subject `gorm:"constraint:OnDelete:CASCADE;" json:"subject"`
	Lecturer User    `gorm:"foreignKey:LecturerID;constraint:OnDelete:CASCADE;" json:"-"`
}

// StudentClassroom is a classroom membership row. Membership is checked at
// the application layer; there is no unique index on (student, classroom).
type StudentClassroom struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	StudentID   uint `gorm:"not null;index" json:"student_id"`
	ClassroomID uint `gorm:"not null;index" json:"classroom_id"`

	Student   User      `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
	Classroom Classroom `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// CalendarEntry is one scheduled meeting of a classroom. Duration is in
// hours. Only the clock component of StartTime is meaningful; the column
// stays a plain timestamp so it round-trips on every dialect.
type CalendarEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassroomID uint      `gorm:"not null;index" json:"classroom_id"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	Duration    int       `gorm:"not null" json:"duration"`

	Classroom Classroom `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// Attendance marks a student present at a session. Absence is represented
// by the row not existing, so Status only ever persists as true.
type Attendance struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	CalendarEntryID uint `gorm:"not null;index" json:"calendar_entry_id"`
	StudentID       uint `gorm:"not null;index" json:"student_id"`
	Status          bool `json:"status"`

	CalendarEntry CalendarEntry `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Student       User          `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
}

type Homework struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassroomID uint      `gorm:"not null;index" json:"classroom_id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	IsActive    bool      `json:"is_active"`

	Classroom Classroom `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// HomeworkSubmission holds a student's answer to one homework. The single
// submission per (student, homework) rule is enforced by the get-or-update
// path in the db package, not by a unique index.
type HomeworkSubmission struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	StudentID   uint    `gorm:"not null;index" json:"student_id"`
	HomeworkID  uint    `gorm:"not null;index" json:"homework_id"`
	ClassroomID uint    `gorm:"not null" json:"classroom_id"`
	Text        *string `json:"text"`
	URL         string  `gorm:"size:200" json:"url"`

	Student   User      `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
	Homework  Homework  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Classroom Classroom `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
