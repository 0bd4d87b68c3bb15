package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/user"
)

func Test_assignmentApi_create(t *testing.T) {
	app := setup(t)

	teacher := createUser(t, "Teacher", "teacher@test.cd", "", user.TypeTeacher)
	other := createUser(t, "Other", "other@test.cd", "", user.TypeTeacher)
	crs := createCourse(t, "Algebra I", teacher.ID)
	path := fmt.Sprintf("/v1/courses/%d/assignments", crs.ID)

	due := time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Second)

	tests := []httpTest{
		{name: "Auth required", body: []byte("{}"), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "empty body", body: []byte("{}"), token: getToken(t, teacher), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required", "due_date": "this field is required"}),
		},
		{
			name: "create", token: getToken(t, teacher), wantCode: http.StatusCreated,
			body: marchallObj(t, map[string]interface{}{"name": "Homework 1", "due_date": due, "description": "Ch. 1"}),
		},
		// course ownership is not checked on create
		{
			name: "non-owner token accepted", token: getToken(t, other), wantCode: http.StatusCreated,
			body: marchallObj(t, map[string]interface{}{"name": "Homework 2", "due_date": due}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusCreated {
				checkCodeAndData(t, tt, rec)
				return
			}

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var asg assignment.Assignment
			if err := json.Unmarshal(rec.Body.Bytes(), &asg); err != nil {
				t.Fatalf("json.Unmarshal() failed: %v", err)
			}
			assert.NotZero(t, asg.ID)
			assert.Equal(t, crs.ID, asg.CourseID)
			assert.True(t, asg.DueDate.Equal(due))
		})
	}
}

func Test_assignmentApi_query(t *testing.T) {
	app := setup(t)

	teacher := createUser(t, "Teacher", "teacher@test.cd", "", user.TypeTeacher)
	student := createUser(t, "Hero", "hero@test.cd", "", user.TypeStudent)
	crs := createCourse(t, "Algebra I", teacher.ID)
	otherCrs := createCourse(t, "Chemistry", teacher.ID)
	asg1 := createAssignment(t, "Homework 1", crs.ID)
	asg2 := createAssignment(t, "Homework 2", crs.ID)
	createAssignment(t, "Lab report", otherCrs.ID)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		// any authenticated user may list; enrollment is not checked
		{name: "student", token: getToken(t, student), wantCode: http.StatusOK, wantData: marchallList(t, asg1, asg2)},
		{name: "teacher", token: getToken(t, teacher), wantCode: http.StatusOK, wantData: marchallList(t, asg1, asg2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/courses/%d/assignments", crs.ID), tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_assignmentApi_retrieve(t *testing.T) {
	app := setup(t)

	teacher := createUser(t, "Teacher", "teacher@test.cd", "", user.TypeTeacher)
	crs := createCourse(t, "Algebra I", teacher.ID)
	otherCrs := createCourse(t, "Chemistry", teacher.ID)
	asg := createAssignment(t, "Homework 1", crs.ID)
	token := getToken(t, teacher)

	tests := []httpTest{
		{
			name: "Auth required", path: fmt.Sprintf("/v1/courses/%d/assignments/%d", crs.ID, asg.ID),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "not found", path: fmt.Sprintf("/v1/courses/%d/assignments/666", crs.ID), token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		// the lookup is scoped by the course in the path
		{
			name: "wrong course", path: fmt.Sprintf("/v1/courses/%d/assignments/%d", otherCrs.ID, asg.ID), token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "found", path: fmt.Sprintf("/v1/courses/%d/assignments/%d", crs.ID, asg.ID), token: token,
			wantCode: http.StatusOK, wantData: marchallObj(t, asg),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_assignmentApi_submit(t *testing.T) {
	app := setup(t)

	teacher := createUser(t, "Teacher", "teacher@test.cd", "", user.TypeTeacher)
	student := createUser(t, "Hero", "hero@test.cd", "", user.TypeStudent)
	crs := createCourse(t, "Algebra I", teacher.ID)
	asg := createAssignment(t, "Homework 1", crs.ID)
	path := fmt.Sprintf("/v1/courses/%d/assignments/%d/submissions", crs.ID, asg.ID)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "assignment not found", path: fmt.Sprintf("/v1/courses/%d/assignments/666/submissions", crs.ID),
			token: getToken(t, student), wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{name: "submit", token: getToken(t, student), wantCode: http.StatusCreated},
		// nothing prevents submitting twice
		{name: "submit again", token: getToken(t, student), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		if tt.path == "" {
			tt.path = path
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, tt.token)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusCreated {
				checkCodeAndData(t, tt, rec)
				return
			}

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var sub assignment.Submission
			if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
				t.Fatalf("json.Unmarshal() failed: %v", err)
			}
			assert.Equal(t, asg.ID, sub.AssignmentID)
			assert.Equal(t, student.ID, sub.StudentID)
			assert.Nil(t, sub.Marks)
			assert.Nil(t, sub.Feedback)
		})
	}
}

func Test_assignmentApi_querySubmissions(t *testing.T) {
	app := setup(t)

	teacher := createUser(t, "Teacher", "teacher@test.cd", "", user.TypeTeacher)
	other := createUser(t, "Other", "other@test.cd", "", user.TypeTeacher)
	student := createUser(t, "Hero", "hero@test.cd", "", user.TypeStudent)
	crs := createCourse(t, "Algebra I", teacher.ID)
	asg := createAssignment(t, "Homework 1", crs.ID)
	sub := createSubmission(t, asg.ID, student.ID)
	path := fmt.Sprintf("/v1/courses/%d/assignments/%d/submissions", crs.ID, asg.ID)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "not owned", token: getToken(t, other), wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "submissions", token: getToken(t, teacher), wantCode: http.StatusOK, wantData: marchallList(t, sub)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_assignmentApi_mark(t *testing.T) {
	app := setup(t)

	teacher := createUser(t, "Teacher", "teacher@test.cd", "", user.TypeTeacher)
	other := createUser(t, "Other", "other@test.cd", "", user.TypeTeacher)
	student := createUser(t, "Hero", "hero@test.cd", "", user.TypeStudent)
	crs := createCourse(t, "Algebra I", teacher.ID)
	asg := createAssignment(t, "Homework 1", crs.ID)
	createSubmission(t, asg.ID, student.ID)
	path := fmt.Sprintf("/v1/courses/%d/assignments/%d/submissions/%d/mark", crs.ID, asg.ID, student.ID)

	iPtr := func(i int) *int { return &i }
	sPtr := func(s string) *string { return &s }
	type want struct {
		marks    *int
		feedback *string
	}

	tests := []httpTest{
		{name: "Auth required", path: path, body: []byte("{}"), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "not owned", path: path, token: getToken(t, other), body: []byte("{}"),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "no submission", path: fmt.Sprintf("/v1/courses/%d/assignments/%d/submissions/666/mark", crs.ID, asg.ID),
			token: getToken(t, teacher), body: []byte("{}"), wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "mark", path: path, token: getToken(t, teacher),
			body:     marchallObj(t, map[string]interface{}{"marks": 85, "feedback": "Good work"}),
			wantCode: http.StatusOK, extra: want{marks: iPtr(85), feedback: sPtr("Good work")},
		},
		// marking again overwrites; values are applied as-is, no range check
		{
			name: "re-mark", path: path, token: getToken(t, teacher),
			body:     marchallObj(t, map[string]interface{}{"marks": 150}),
			wantCode: http.StatusOK, extra: want{marks: iPtr(150)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusOK {
				checkCodeAndData(t, tt, rec)
				return
			}

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var sub assignment.Submission
			if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
				t.Fatalf("json.Unmarshal() failed: %v", err)
			}
			w := tt.extra.(want)
			assert.Equal(t, w.marks, sub.Marks)
			assert.Equal(t, w.feedback, sub.Feedback)

			// the grade sticks on the next read
			saved, err := asgRepo.GetSubmission(asg.ID, student.ID)
			if err != nil {
				t.Fatalf("GetSubmission() failed: %v", err)
			}
			assert.Equal(t, w.marks, saved.Marks)
			assert.Equal(t, w.feedback, saved.Feedback)
		})
	}
}
