package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
)

type assignmentApi struct {
	svc       *assignment.Service
	courseSvc *course.Service
	validate  *validator.Validate
}

func registerAssignmentAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *assignment.Service,
	courseSvc *course.Service,
	validate *validator.Validate,
) {
	api := assignmentApi{
		svc:       svc,
		courseSvc: courseSvc,
		validate:  validate,
	}

	ag := g.Group("/courses/:id/assignments", jwt)

	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.GET("/:assignmentID", api.retrieve)
	ag.POST("/:assignmentID/submissions", api.submit)
	ag.GET("/:assignmentID/submissions", api.querySubmissions)
	ag.PUT("/:assignmentID/submissions/:studentID/mark", api.mark)
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	courseID, err := pathInt(ctx, "id")
	if err != nil {
		return err
	}

	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// course ownership is not verified here; any authenticated user may post
	asg, err := api.svc.Create(courseID, data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	courseID, err := pathInt(ctx, "id")
	if err != nil {
		return err
	}

	asgs, err := api.svc.QueryByCourse(courseID)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	asg, err := api.getAssignment(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	asg, err := api.getAssignment(ctx)
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// enrollment is not verified; the token identity is trusted as the student
	sub, err := api.svc.Submit(asg.ID, claims.UserID)
	if err != nil {
		return errors.Wrap(err, "creating submission")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *assignmentApi) querySubmissions(ctx echo.Context) error {
	if err := api.checkCourseOwnership(ctx); err != nil {
		return err
	}
	assignmentID, err := pathInt(ctx, "assignmentID")
	if err != nil {
		return err
	}

	subs, err := api.svc.QuerySubmissions(assignmentID)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	if subs == nil {
		subs = []assignment.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *assignmentApi) mark(ctx echo.Context) error {
	if err := api.checkCourseOwnership(ctx); err != nil {
		return err
	}
	assignmentID, err := pathInt(ctx, "assignmentID")
	if err != nil {
		return err
	}
	studentID, err := pathInt(ctx, "studentID")
	if err != nil {
		return err
	}

	var data assignment.Grade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Grade")
	}

	// marks and feedback are applied as-is; no range checks
	sub, err := api.svc.Mark(assignmentID, studentID, data)
	if err != nil {
		if errors.Cause(err) == assignment.ErrSubmissionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "marking submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *assignmentApi) getAssignment(ctx echo.Context) (assignment.Assignment, error) {
	courseID, err := pathInt(ctx, "id")
	if err != nil {
		return assignment.Assignment{}, err
	}
	assignmentID, err := pathInt(ctx, "assignmentID")
	if err != nil {
		return assignment.Assignment{}, err
	}

	asg, err := api.svc.Get(assignmentID, courseID)
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return assignment.Assignment{}, errHttpNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return asg, nil
}

// checkCourseOwnership resolves the :id param against the caller's courses.
// Exists-but-unauthorized is indistinguishable from not-exists.
func (api *assignmentApi) checkCourseOwnership(ctx echo.Context) error {
	courseID, err := pathInt(ctx, "id")
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if _, err := api.courseSvc.GetOwned(courseID, claims.UserID); err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting owned course")
	}
	return nil
}
