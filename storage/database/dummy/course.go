package dummydb

import (
	"sort"

	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	courses     *courseTable
	enrollments *enrollmentTable
	materials   *materialTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{
		courses:     db.course,
		enrollments: db.enrollment,
		materials:   db.material,
	}
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	repo.courses.pk++
	crs.ID = repo.courses.pk
	repo.courses.table[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) GetCourseByID(id int) (course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	if crs, ok := repo.courses.table[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) GetOwnedCourse(id, teacherID int) (course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	if crs, ok := repo.courses.table[id]; ok && crs.TeacherID == teacherID {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryCoursesByTeacher(teacherID int) ([]course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	var courses []course.Course
	for _, crs := range repo.courses.table {
		if crs.TeacherID == teacherID {
			courses = append(courses, *crs)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(crs course.Course) (course.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	if _, ok := repo.courses.table[crs.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	repo.courses.table[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) DeleteCourse(id int) error {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	delete(repo.courses.table, id)
	return nil
}

func (repo *courseRepository) CreateEnrollment(enr course.Enrollment) (course.Enrollment, error) {
	repo.enrollments.Lock()
	defer repo.enrollments.Unlock()

	repo.enrollments.pk++
	enr.ID = repo.enrollments.pk
	repo.enrollments.table[enr.ID] = &enr
	return enr, nil
}

func (repo *courseRepository) QueryEnrollmentsByCourse(courseID int) ([]course.Enrollment, error) {
	repo.enrollments.RLock()
	defer repo.enrollments.RUnlock()

	var enrs []course.Enrollment
	for _, enr := range repo.enrollments.table {
		if enr.CourseID == courseID {
			enrs = append(enrs, *enr)
		}
	}
	sort.Slice(enrs, func(i, j int) bool { return enrs[i].ID < enrs[j].ID })
	return enrs, nil
}

func (repo *courseRepository) GetEnrollment(courseID, studentID int) (course.Enrollment, error) {
	enrs, _ := repo.QueryEnrollmentsByCourse(courseID)
	for _, enr := range enrs {
		if enr.StudentID == studentID {
			return enr, nil
		}
	}
	return course.Enrollment{}, course.ErrEnrollmentNotFound
}

func (repo *courseRepository) DeleteEnrollment(id int) error {
	repo.enrollments.Lock()
	defer repo.enrollments.Unlock()

	delete(repo.enrollments.table, id)
	return nil
}

func (repo *courseRepository) CreateMaterial(mat course.Material) (course.Material, error) {
	repo.materials.Lock()
	defer repo.materials.Unlock()

	repo.materials.table[mat.ID] = &mat
	return mat, nil
}

func (repo *courseRepository) QueryMaterialsByCourse(courseID int) ([]course.Material, error) {
	repo.materials.RLock()
	defer repo.materials.RUnlock()

	var mats []course.Material
	for _, mat := range repo.materials.table {
		if mat.CourseID == courseID {
			mats = append(mats, *mat)
		}
	}
	sort.Slice(mats, func(i, j int) bool { return mats[i].UploadedAt.Before(mats[j].UploadedAt) })
	return mats, nil
}
