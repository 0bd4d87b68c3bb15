package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Assignment struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
	Description string    `json:"description" db:"description"`
	CourseID    int       `json:"course_id" db:"course_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

type Submission struct {
	ID             int       `json:"id" db:"id"`
	StudentID      int       `json:"student_id" db:"student_id"`
	AssignmentID   int       `json:"assignment_id" db:"assignment_id"`
	Marks          *int      `json:"marks" db:"marks"`
	Feedback       *string   `json:"feedback" db:"feedback"`
	SubmissionDate time.Time `json:"submission_date" db:"submission_date"` // UTC
}

// NewAssignment contains information needed to create a new Assignment.
// The due date is not required to be in the future.
type NewAssignment struct {
	Name        string    `json:"name" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Description string    `json:"description"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Description = core.CleanString(na.Description)
	return validate.Struct(na)
}

// Grade carries the marks and feedback a teacher sets on a Submission.
// Values are applied as-is; marks are not range-checked.
type Grade struct {
	Marks    *int    `json:"marks"`
	Feedback *string `json:"feedback"`
}
