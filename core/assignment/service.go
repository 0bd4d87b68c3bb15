package assignment

import (
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound           = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

type (
	Repository interface {
		CreateAssignment(asg Assignment) (Assignment, error)
		// GetAssignment fetches an assignment scoped by its parent course.
		GetAssignment(id, courseID int) (Assignment, error)
		QueryAssignmentsByCourse(courseID int) ([]Assignment, error)

		CreateSubmission(sub Submission) (Submission, error)
		GetSubmission(assignmentID, studentID int) (Submission, error)
		QuerySubmissionsByAssignment(assignmentID int) ([]Submission, error)
		UpdateSubmission(sub Submission) (Submission, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds an assignment to the course. Course ownership is not verified.
func (svc *Service) Create(courseID int, na NewAssignment) (Assignment, error) {
	asg := Assignment{
		Name:        na.Name,
		DueDate:     na.DueDate,
		Description: na.Description,
		CourseID:    courseID,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateAssignment(asg)
}

func (svc *Service) Get(id, courseID int) (Assignment, error) {
	return svc.repo.GetAssignment(id, courseID)
}

func (svc *Service) QueryByCourse(courseID int) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByCourse(courseID)
}

// Submit records a student's submission. Enrollment is not verified.
func (svc *Service) Submit(assignmentID, studentID int) (Submission, error) {
	sub := Submission{
		StudentID:      studentID,
		AssignmentID:   assignmentID,
		SubmissionDate: time.Now().UTC(),
	}
	return svc.repo.CreateSubmission(sub)
}

func (svc *Service) GetSubmission(assignmentID, studentID int) (Submission, error) {
	return svc.repo.GetSubmission(assignmentID, studentID)
}

func (svc *Service) QuerySubmissions(assignmentID int) ([]Submission, error) {
	return svc.repo.QuerySubmissionsByAssignment(assignmentID)
}

// Mark sets marks and feedback on the (assignmentID, studentID) submission,
// unconditionally overwriting previous values.
func (svc *Service) Mark(assignmentID, studentID int, grade Grade) (Submission, error) {
	sub, err := svc.repo.GetSubmission(assignmentID, studentID)
	if err != nil {
		return Submission{}, err
	}
	sub.Marks = grade.Marks
	sub.Feedback = grade.Feedback
	return svc.repo.UpdateSubmission(sub)
}
