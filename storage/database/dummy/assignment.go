package dummydb

import (
	"sort"

	"github.com/trezcool/darasa/core/assignment"
)

type assignmentRepository struct {
	assignments *assignmentTable
	submissions *submissionTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{
		assignments: db.assignment,
		submissions: db.submission,
	}
}

func (repo *assignmentRepository) CreateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	repo.assignments.pk++
	asg.ID = repo.assignments.pk
	repo.assignments.table[asg.ID] = &asg
	return asg, nil
}

func (repo *assignmentRepository) GetAssignment(id, courseID int) (assignment.Assignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	if asg, ok := repo.assignments.table[id]; ok && asg.CourseID == courseID {
		return *asg, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(courseID int) ([]assignment.Assignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	var asgs []assignment.Assignment
	for _, asg := range repo.assignments.table {
		if asg.CourseID == courseID {
			asgs = append(asgs, *asg)
		}
	}
	sort.Slice(asgs, func(i, j int) bool { return asgs[i].ID < asgs[j].ID })
	return asgs, nil
}

func (repo *assignmentRepository) CreateSubmission(sub assignment.Submission) (assignment.Submission, error) {
	repo.submissions.Lock()
	defer repo.submissions.Unlock()

	repo.submissions.pk++
	sub.ID = repo.submissions.pk
	repo.submissions.table[sub.ID] = &sub
	return sub, nil
}

func (repo *assignmentRepository) GetSubmission(assignmentID, studentID int) (assignment.Submission, error) {
	subs, _ := repo.QuerySubmissionsByAssignment(assignmentID)
	for _, sub := range subs {
		if sub.StudentID == studentID {
			return sub, nil
		}
	}
	return assignment.Submission{}, assignment.ErrSubmissionNotFound
}

func (repo *assignmentRepository) QuerySubmissionsByAssignment(assignmentID int) ([]assignment.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	var subs []assignment.Submission
	for _, sub := range repo.submissions.table {
		if sub.AssignmentID == assignmentID {
			subs = append(subs, *sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	return subs, nil
}

func (repo *assignmentRepository) UpdateSubmission(sub assignment.Submission) (assignment.Submission, error) {
	repo.submissions.Lock()
	defer repo.submissions.Unlock()

	if _, ok := repo.submissions.table[sub.ID]; !ok {
		return assignment.Submission{}, assignment.ErrSubmissionNotFound
	}
	repo.submissions.table[sub.ID] = &sub
	return sub, nil
}
