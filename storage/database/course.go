package database

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	err := repo.db.QueryRowx(
		`INSERT INTO courses (title, description, teacher_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		crs.Title, crs.Description, crs.TeacherID, crs.CreatedAt, crs.UpdatedAt,
	).Scan(&crs.ID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return crs, nil
}

func (repo *courseRepository) GetCourseByID(id int) (course.Course, error) {
	var crs course.Course
	if err := repo.db.Get(&crs, "SELECT * FROM courses WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "getting course by id")
	}
	return crs, nil
}

func (repo *courseRepository) GetOwnedCourse(id, teacherID int) (course.Course, error) {
	var crs course.Course
	err := repo.db.Get(&crs, "SELECT * FROM courses WHERE id = $1 AND teacher_id = $2", id, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "getting owned course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryCoursesByTeacher(teacherID int) ([]course.Course, error) {
	var courses []course.Course
	err := repo.db.Select(&courses, "SELECT * FROM courses WHERE teacher_id = $1 ORDER BY id", teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses by teacher")
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(crs course.Course) (course.Course, error) {
	res, err := repo.db.Exec(
		"UPDATE courses SET title = $1, description = $2, updated_at = $3 WHERE id = $4",
		crs.Title, crs.Description, crs.UpdatedAt, crs.ID,
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (repo *courseRepository) DeleteCourse(id int) error {
	if _, err := repo.db.Exec("DELETE FROM courses WHERE id = $1", id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return nil
}

func (repo *courseRepository) CreateEnrollment(enr course.Enrollment) (course.Enrollment, error) {
	err := repo.db.QueryRowx(
		`INSERT INTO enrollments (course_id, student_id, enroll_date)
		 VALUES ($1, $2, $3) RETURNING id`,
		enr.CourseID, enr.StudentID, enr.EnrollDate,
	).Scan(&enr.ID)
	if err != nil {
		return course.Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	return enr, nil
}

func (repo *courseRepository) QueryEnrollmentsByCourse(courseID int) ([]course.Enrollment, error) {
	var enrs []course.Enrollment
	err := repo.db.Select(&enrs, "SELECT * FROM enrollments WHERE course_id = $1 ORDER BY id", courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrollments by course")
	}
	return enrs, nil
}

func (repo *courseRepository) GetEnrollment(courseID, studentID int) (course.Enrollment, error) {
	var enr course.Enrollment
	err := repo.db.Get(
		&enr,
		"SELECT * FROM enrollments WHERE course_id = $1 AND student_id = $2 ORDER BY id LIMIT 1",
		courseID, studentID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Enrollment{}, course.ErrEnrollmentNotFound
		}
		return course.Enrollment{}, errors.Wrap(err, "getting enrollment")
	}
	return enr, nil
}

func (repo *courseRepository) DeleteEnrollment(id int) error {
	if _, err := repo.db.Exec("DELETE FROM enrollments WHERE id = $1", id); err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	return nil
}

func (repo *courseRepository) CreateMaterial(mat course.Material) (course.Material, error) {
	_, err := repo.db.Exec(
		`INSERT INTO materials (id, course_id, name, path, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		mat.ID, mat.CourseID, mat.Name, mat.Path, mat.UploadedAt,
	)
	if err != nil {
		return course.Material{}, errors.Wrap(err, "creating material")
	}
	return mat, nil
}

func (repo *courseRepository) QueryMaterialsByCourse(courseID int) ([]course.Material, error) {
	var mats []course.Material
	err := repo.db.Select(&mats, "SELECT * FROM materials WHERE course_id = $1 ORDER BY uploaded_at", courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying materials by course")
	}
	return mats, nil
}
