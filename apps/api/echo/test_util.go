package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/user"
	emailsvc "github.com/trezcool/darasa/services/email"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	filestore "github.com/trezcool/darasa/storage/files"
)

var (
	conf *core.Config

	usrRepo user.Repository
	crsRepo course.Repository
	asgRepo assignment.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errNotFound     = httpErr{Error: "not found"}
)

type httpErr struct {
	Error string `json:"error"`
}

// testLogger drops everything; API tests assert on responses, not logs.
type testLogger struct{}

var _ core.Logger = (*testLogger)(nil)

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) Server {
	conf = core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.UploadDir = t.TempDir()

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)
	crsRepo = dummydb.NewCourseRepository(db)
	asgRepo = dummydb.NewAssignmentRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	fileStore, err := filestore.NewLocalStorage(conf.UploadDir)
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)

	// set up server
	return NewServer(ServerDeps{
		Conf:           conf,
		Logger:         testLogger{},
		UserSvc:        user.NewService(usrRepo, mailSvc, conf),
		CourseSvc:      course.NewService(crsRepo, fileStore),
		AssignmentSvc:  assignment.NewService(asgRepo),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

// Fixtures; write through the repos directly.

func createUser(t *testing.T, name, email, pwd, typ string) user.User {
	now := time.Now().UTC()
	usr := user.User{
		Name:      name,
		Email:     email,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := usrRepo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func createCourse(t *testing.T, title string, teacherID int) course.Course {
	now := time.Now().UTC()
	crs, err := crsRepo.CreateCourse(course.Course{
		Title:     title,
		TeacherID: teacherID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return crs
}

func enrollStudent(t *testing.T, courseID, studentID int) course.Enrollment {
	enr, err := crsRepo.CreateEnrollment(course.Enrollment{
		CourseID:   courseID,
		StudentID:  studentID,
		EnrollDate: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("enrollStudent() failed: %v", err)
	}
	return enr
}

func createAssignment(t *testing.T, name string, courseID int) assignment.Assignment {
	asg, err := asgRepo.CreateAssignment(assignment.Assignment{
		Name:      name,
		DueDate:   time.Now().UTC().Add(7 * 24 * time.Hour),
		CourseID:  courseID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return asg
}

func createSubmission(t *testing.T, assignmentID, studentID int) assignment.Submission {
	sub, err := asgRepo.CreateSubmission(assignment.Submission{
		StudentID:      studentID,
		AssignmentID:   assignmentID,
		SubmissionDate: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createSubmission() failed: %v", err)
	}
	return sub
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	l1, ok1 := j1.([]interface{})
	l2, ok2 := j2.([]interface{})
	if !(ok1 && ok2) {
		return false, nil
	}
	return assert.ElementsMatch(t, l1, l2), nil
}

func jsonDiff(got, want []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(want)),
		B:        difflib.SplitLines(string(got)),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return ""
	}
	return diff
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v\n%s", rec.Body.String(), string(tt.wantData), jsonDiff(rec.Body.Bytes(), tt.wantData))
	}
}
