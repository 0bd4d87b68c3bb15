package echoapi

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/user"
)

var (
	appName         = "Darasa"
	secretKey       = []byte("secret")
	expirationDelta = 7 * 24 * time.Hour

	// appJWTConfig is the default JWT auth middleware config.
	appJWTConfig = middleware.JWTConfig{
		SigningKey:    secretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
	}
)

// ConfigureAuth points the JWT middleware at the app configuration and
// returns it; must be called before any token is issued or verified.
func ConfigureAuth(name string, key []byte, expDelta time.Duration) echo.MiddlewareFunc {
	appName = name
	secretKey = key
	expirationDelta = expDelta
	appJWTConfig.SigningKey = secretKey
	return middleware.JWTWithConfig(appJWTConfig)
}

// Claims represents the authorization claims transmitted via a JWT.
// The embedded identity is trusted as-is on protected routes; no role
// check is performed (a student token works on teacher routes).
type Claims struct {
	jwt.StandardClaims
	UserID    int    `json:"uid"`
	Email     string `json:"email,omitempty"`
	IsTeacher bool   `json:"is_teacher,omitempty"`
	IsStudent bool   `json:"is_student,omitempty"`
}

func GetUserClaims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    appName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(expirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		UserID:    usr.ID,
		Email:     usr.Email,
		IsTeacher: usr.IsTeacher(),
		IsStudent: usr.IsStudent(),
	}
}

// authenticate checks the credentials and returns the user's claims;
// any failure yields the same generic error.
func authenticate(email, pwd string, svc *user.Service) (*Claims, error) {
	if usr, err := svc.GetByEmail(email); err == nil {
		if err := usr.CheckPassword(pwd); err == nil {
			return GetUserClaims(usr), nil
		}
	}
	return nil, errInvalidCredentials
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(secretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
