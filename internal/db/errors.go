package db

import "errors"

// Rule violations surfaced by the enrollment and homework paths. Handlers
// translate these into HTTP statuses; none of them is fatal.
var (
	ErrClassroomFull   = errors.New("classroom is full")
	ErrAlreadyEnrolled = errors.New("student already enrolled in classroom")
	ErrNotEnrolled     = errors.New("student not enrolled in classroom")
	ErrNotAuthorized   = errors.New("user not authorized for this operation")
	ErrEmailTaken      = errors.New("email already registered")
)
