package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	filestore "github.com/trezcool/darasa/storage/files"
)

type courseApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *course.Service, validate *validator.Validate) {
	api := courseApi{
		svc:      svc,
		validate: validate,
	}

	cg := g.Group("/courses")

	cg.GET("/:id", api.retrieve) // un-authed, as is course detail in the public catalog

	cg.POST("", api.create, jwt)
	cg.GET("", api.queryOwned, jwt)
	cg.PUT("/:id", api.update, jwt)
	cg.DELETE("/:id", api.destroy, jwt)

	cg.POST("/:id/enroll", api.enroll, jwt)
	cg.GET("/:id/students", api.queryStudents, jwt)
	cg.DELETE("/:id/students/:studentID", api.removeStudent, jwt)

	cg.POST("/:id/materials", api.uploadMaterial, jwt)
	cg.GET("/:id/materials", api.queryMaterials, jwt)
}

// pathInt parses an integer path param; anything unparseable reads as a
// missing resource.
func pathInt(ctx echo.Context, name string) (int, error) {
	val, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return val, nil
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	crs, err := api.svc.Create(claims.UserID, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}

	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) queryOwned(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	courses, err := api.svc.QueryByTeacher(claims.UserID)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := pathInt(ctx, "id")
	if err != nil {
		return err
	}

	crs, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := pathInt(ctx, "id")
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}

	// a course not owned by the caller reads as absent
	crs, err := api.svc.Update(id, claims.UserID, data)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := pathInt(ctx, "id")
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.Delete(id, claims.UserID); err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) enroll(ctx echo.Context) error {
	id, err := pathInt(ctx, "id")
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// the token identity is trusted as the student; no type check
	enr, err := api.svc.Enroll(id, claims.UserID)
	if err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusOK, enr)
}

func (api *courseApi) queryStudents(ctx echo.Context) error {
	crs, err := api.getOwnedCourse(ctx)
	if err != nil {
		return err
	}

	enrs, err := api.svc.QueryEnrollments(crs.ID)
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	if enrs == nil {
		enrs = []course.Enrollment{}
	}
	return ctx.JSON(http.StatusOK, enrs)
}

func (api *courseApi) removeStudent(ctx echo.Context) error {
	crs, err := api.getOwnedCourse(ctx)
	if err != nil {
		return err
	}
	studentID, err := pathInt(ctx, "studentID")
	if err != nil {
		return err
	}

	if err := api.svc.RemoveStudent(crs.ID, studentID); err != nil {
		if errors.Cause(err) == course.ErrEnrollmentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "removing student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) uploadMaterial(ctx echo.Context) error {
	crs, err := api.getOwnedCourse(ctx)
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "no file part found in the request"})
	}
	name := filestore.SanitizeFilename(fh.Filename)
	if name == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "no file selected"})
	}

	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer func() { _ = src.Close() }()

	mat, err := api.svc.AddMaterial(crs.ID, name, src)
	if err != nil {
		return errors.Wrap(err, "adding material")
	}
	return ctx.JSON(http.StatusCreated, mat)
}

func (api *courseApi) queryMaterials(ctx echo.Context) error {
	crs, err := api.getOwnedCourse(ctx)
	if err != nil {
		return err
	}

	mats, err := api.svc.QueryMaterials(crs.ID)
	if err != nil {
		return errors.Wrap(err, "querying materials")
	}
	if mats == nil {
		mats = []course.Material{}
	}
	return ctx.JSON(http.StatusOK, mats)
}

// getOwnedCourse resolves the :id param against the caller's courses.
// Exists-but-unauthorized is indistinguishable from not-exists.
func (api *courseApi) getOwnedCourse(ctx echo.Context) (course.Course, error) {
	id, err := pathInt(ctx, "id")
	if err != nil {
		return course.Course{}, err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "getting context claims")
	}

	crs, err := api.svc.GetOwned(id, claims.UserID)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return course.Course{}, errHttpNotFound
		}
		return course.Course{}, errors.Wrap(err, "getting owned course")
	}
	return crs, nil
}
