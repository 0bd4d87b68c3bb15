package dummydb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/user"
)

type (
	DB struct {
		user       *userTable
		course     *courseTable
		enrollment *enrollmentTable
		material   *materialTable
		assignment *assignmentTable
		submission *submissionTable
	}

	userTable struct {
		sync.RWMutex
		pk    int
		table map[int]*user.User
	}

	courseTable struct {
		sync.RWMutex
		pk    int
		table map[int]*course.Course
	}

	enrollmentTable struct {
		sync.RWMutex
		pk    int
		table map[int]*course.Enrollment
	}

	materialTable struct {
		sync.RWMutex
		table map[uuid.UUID]*course.Material
	}

	assignmentTable struct {
		sync.RWMutex
		pk    int
		table map[int]*assignment.Assignment
	}

	submissionTable struct {
		sync.RWMutex
		pk    int
		table map[int]*assignment.Submission
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[int]*user.User)},
		course:     &courseTable{table: make(map[int]*course.Course)},
		enrollment: &enrollmentTable{table: make(map[int]*course.Enrollment)},
		material:   &materialTable{table: make(map[uuid.UUID]*course.Material)},
		assignment: &assignmentTable{table: make(map[int]*assignment.Assignment)},
		submission: &submissionTable{table: make(map[int]*assignment.Submission)},
	}
	return db, nil
}
