package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/user"
	emailsvc "github.com/trezcool/darasa/services/email"
)

func Test_userApi_register(t *testing.T) {
	app := setup(t)

	createUser(t, "Taken", "taken@test.cd", "s3cret", user.TypeTeacher)

	allMissing := marchallObj(t, map[string]string{
		"name":     "this field is required",
		"email":    "this field is required",
		"password": "this field is required",
		"type":     "this field is required",
	})

	tests := []httpTest{
		{name: "empty body", body: []byte("{}"), wantCode: http.StatusBadRequest, wantData: allMissing},
		{
			name: "missing type", body: marchallObj(t, map[string]string{"name": "Jane", "email": "jane@test.cd", "password": "s3cret"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"type": "this field is required"}),
		},
		{
			name: "duplicate email", body: marchallObj(t, map[string]string{"name": "Jane", "email": "taken@test.cd", "password": "s3cret", "type": user.TypeTeacher}),
			wantCode: http.StatusConflict, wantData: marchallObj(t, map[string]string{"email": user.ErrEmailExists.Error()}),
		},
		{
			name: "duplicate email (case insensitive)", body: marchallObj(t, map[string]string{"name": "Jane", "email": "TAKEN@test.cd", "password": "s3cret", "type": user.TypeTeacher}),
			wantCode: http.StatusConflict, wantData: marchallObj(t, map[string]string{"email": user.ErrEmailExists.Error()}),
		},
		{
			name: "register teacher", body: marchallObj(t, map[string]string{"name": "Jane", "email": "Jane@Test.cd", "password": "s3cret", "type": user.TypeTeacher}),
			wantCode: http.StatusCreated, extra: user.TypeTeacher,
		},
		{
			name: "register student", body: marchallObj(t, map[string]string{"name": "Joe", "email": "joe@test.cd", "password": "s3cret", "type": user.TypeStudent}),
			wantCode: http.StatusCreated, extra: user.TypeStudent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/register", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusCreated {
				checkCodeAndData(t, tt, rec)
				return
			}

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var usr user.User
			if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
				t.Fatalf("json.Unmarshal() failed: %v", err)
			}
			assert.NotZero(t, usr.ID)
			assert.Equal(t, tt.extra, usr.Type)

			// email is lowercased on the way in
			var data map[string]string
			_ = json.Unmarshal(tt.body, &data)
			saved, err := usrRepo.GetUserByEmail(usr.Email)
			if err != nil {
				t.Fatalf("GetUserByEmail() failed: %v", err)
			}
			assert.NoError(t, saved.CheckPassword(data["password"]))

			// a welcome email went out
			var found bool
			for _, msg := range emailsvc.SentMessages {
				for _, to := range msg.To {
					if to.Address == usr.Email {
						found = true
					}
				}
			}
			assert.True(t, found, "welcome email not sent")
		})
	}
}

func Test_userApi_login(t *testing.T) {
	app := setup(t)

	usr := createUser(t, "User", "awe@test.cd", "s3cret", user.TypeTeacher)

	tests := []httpTest{
		{
			name: "empty body", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown email", body: marchallObj(t, map[string]string{"email": "lol@test.cd", "password": "s3cret"}),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "wrong password", body: marchallObj(t, map[string]string{"email": usr.Email, "password": "lol"}),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{name: "login", body: marchallObj(t, map[string]string{"email": usr.Email, "password": "s3cret"}), wantCode: http.StatusOK},
		{name: "login (case insensitive)", body: marchallObj(t, map[string]string{"email": "AWE@Test.CD", "password": "s3cret"}), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusOK {
				checkCodeAndData(t, tt, rec)
				return
			}

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var res LoginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("json.Unmarshal() failed: %v", err)
			}
			assert.NotEmpty(t, res.Token)
		})
	}
}

func Test_userApi_query(t *testing.T) {
	app := setup(t)

	t.Run("empty", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t)}
		req, rec := newRequest(http.MethodGet, "/v1/users")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	usr1 := createUser(t, "User", "awe@test.cd", "", user.TypeTeacher)
	usr2 := createUser(t, "Hero", "hero@test.cd", "", user.TypeStudent)

	t.Run("all users", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, usr1, usr2)}
		req, rec := newRequest(http.MethodGet, "/v1/users")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
