package course

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound           = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("student not enrolled in this course")
)

type (
	Repository interface {
		CreateCourse(crs Course) (Course, error)
		GetCourseByID(id int) (Course, error)
		// GetOwnedCourse fetches a course only if it belongs to the given teacher;
		// ErrNotFound otherwise, whether the course exists or not.
		GetOwnedCourse(id, teacherID int) (Course, error)
		QueryCoursesByTeacher(teacherID int) ([]Course, error)
		UpdateCourse(crs Course) (Course, error)
		DeleteCourse(id int) error

		CreateEnrollment(enr Enrollment) (Enrollment, error)
		QueryEnrollmentsByCourse(courseID int) ([]Enrollment, error)
		GetEnrollment(courseID, studentID int) (Enrollment, error)
		DeleteEnrollment(id int) error

		CreateMaterial(mat Material) (Material, error)
		QueryMaterialsByCourse(courseID int) ([]Material, error)
	}

	Service struct {
		repo  Repository
		files core.FileStorage
	}
)

func NewService(repo Repository, files core.FileStorage) *Service {
	return &Service{repo: repo, files: files}
}

func (svc *Service) Create(teacherID int, nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		Title:       nc.Title,
		Description: nc.Description,
		TeacherID:   teacherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCourse(crs)
}

func (svc *Service) GetByID(id int) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) GetOwned(id, teacherID int) (Course, error) {
	return svc.repo.GetOwnedCourse(id, teacherID)
}

func (svc *Service) QueryByTeacher(teacherID int) ([]Course, error) {
	return svc.repo.QueryCoursesByTeacher(teacherID)
}

// Update modifies a course only if it is owned by teacherID.
func (svc *Service) Update(id, teacherID int, uc UpdateCourse) (Course, error) {
	crs, err := svc.repo.GetOwnedCourse(id, teacherID)
	if err != nil {
		return Course{}, err
	}
	if err := uc.Validate(crs); err != nil {
		return Course{}, err
	}
	crs.Title = uc.Title
	crs.Description = uc.Description
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(crs)
}

// Delete removes a course only if it is owned by teacherID.
// Enrollments, assignments and submissions are left behind (no cascade).
func (svc *Service) Delete(id, teacherID int) error {
	crs, err := svc.repo.GetOwnedCourse(id, teacherID)
	if err != nil {
		return err
	}
	return svc.repo.DeleteCourse(crs.ID)
}

// Enroll adds studentID to the course. The caller's identity is trusted as the
// student; no type or duplicate check is performed.
func (svc *Service) Enroll(courseID, studentID int) (Enrollment, error) {
	enr := Enrollment{
		CourseID:   courseID,
		StudentID:  studentID,
		EnrollDate: time.Now().UTC(),
	}
	return svc.repo.CreateEnrollment(enr)
}

func (svc *Service) QueryEnrollments(courseID int) ([]Enrollment, error) {
	return svc.repo.QueryEnrollmentsByCourse(courseID)
}

func (svc *Service) RemoveStudent(courseID, studentID int) error {
	enr, err := svc.repo.GetEnrollment(courseID, studentID)
	if err != nil {
		return err
	}
	return svc.repo.DeleteEnrollment(enr.ID)
}

// AddMaterial stores the uploaded file and records it against the course.
func (svc *Service) AddMaterial(courseID int, name string, src io.Reader) (Material, error) {
	path, err := svc.files.Save(name, src)
	if err != nil {
		return Material{}, err
	}
	mat := Material{
		ID:         uuid.New(),
		CourseID:   courseID,
		Name:       name,
		Path:       path,
		UploadedAt: time.Now().UTC(),
	}
	return svc.repo.CreateMaterial(mat)
}

func (svc *Service) QueryMaterials(courseID int) ([]Material, error) {
	return svc.repo.QueryMaterialsByCourse(courseID)
}
