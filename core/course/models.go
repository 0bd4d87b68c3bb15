package course

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
)

type Course struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	TeacherID   int       `json:"teacher_id" db:"teacher_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// Enrollment is the join row between a student and a Course.
// Nothing prevents the same student from enrolling twice.
type Enrollment struct {
	ID         int       `json:"id" db:"id"`
	CourseID   int       `json:"course_id" db:"course_id"`
	StudentID  int       `json:"student_id" db:"student_id"`
	EnrollDate time.Time `json:"enroll_date" db:"enroll_date"` // UTC
}

// Material records a file uploaded for a Course. Files all land in one shared
// directory; uploads sharing a sanitized name overwrite each other.
type Material struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CourseID   int       `json:"course_id" db:"course_id"`
	Name       string    `json:"name" db:"name"`
	Path       string    `json:"-" db:"path"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Empty fields keep their current value.
type UpdateCourse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (uc *UpdateCourse) Validate(orig Course) error {
	if title := core.CleanString(uc.Title); title != "" {
		uc.Title = title
	} else {
		uc.Title = orig.Title
	}
	if desc := core.CleanString(uc.Description); desc != "" {
		uc.Description = desc
	} else {
		uc.Description = orig.Description
	}
	return nil
}
