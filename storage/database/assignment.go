package database

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
)

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) CreateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	err := repo.db.QueryRowx(
		`INSERT INTO assignments (name, due_date, description, course_id, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		asg.Name, asg.DueDate, asg.Description, asg.CourseID, asg.CreatedAt,
	).Scan(&asg.ID)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return asg, nil
}

func (repo *assignmentRepository) GetAssignment(id, courseID int) (assignment.Assignment, error) {
	var asg assignment.Assignment
	err := repo.db.Get(&asg, "SELECT * FROM assignments WHERE id = $1 AND course_id = $2", id, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return asg, nil
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(courseID int) ([]assignment.Assignment, error) {
	var asgs []assignment.Assignment
	err := repo.db.Select(&asgs, "SELECT * FROM assignments WHERE course_id = $1 ORDER BY id", courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments by course")
	}
	return asgs, nil
}

func (repo *assignmentRepository) CreateSubmission(sub assignment.Submission) (assignment.Submission, error) {
	err := repo.db.QueryRowx(
		`INSERT INTO submissions (student_id, assignment_id, marks, feedback, submission_date)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		sub.StudentID, sub.AssignmentID, sub.Marks, sub.Feedback, sub.SubmissionDate,
	).Scan(&sub.ID)
	if err != nil {
		return assignment.Submission{}, errors.Wrap(err, "creating submission")
	}
	return sub, nil
}

func (repo *assignmentRepository) GetSubmission(assignmentID, studentID int) (assignment.Submission, error) {
	var sub assignment.Submission
	err := repo.db.Get(
		&sub,
		"SELECT * FROM submissions WHERE assignment_id = $1 AND student_id = $2 ORDER BY id LIMIT 1",
		assignmentID, studentID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return assignment.Submission{}, assignment.ErrSubmissionNotFound
		}
		return assignment.Submission{}, errors.Wrap(err, "getting submission")
	}
	return sub, nil
}

func (repo *assignmentRepository) QuerySubmissionsByAssignment(assignmentID int) ([]assignment.Submission, error) {
	var subs []assignment.Submission
	err := repo.db.Select(&subs, "SELECT * FROM submissions WHERE assignment_id = $1 ORDER BY id", assignmentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions by assignment")
	}
	return subs, nil
}

func (repo *assignmentRepository) UpdateSubmission(sub assignment.Submission) (assignment.Submission, error) {
	_, err := repo.db.Exec(
		"UPDATE submissions SET marks = $1, feedback = $2 WHERE id = $3",
		sub.Marks, sub.Feedback, sub.ID,
	)
	if err != nil {
		return assignment.Submission{}, errors.Wrap(err, "updating submission")
	}
	return sub, nil
}
