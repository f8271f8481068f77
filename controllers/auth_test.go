package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"invoicehub-backend/models"
	"invoicehub-backend/services"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter() *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", Authenticate)
	r.POST("/auth/register", Register)
	r.POST("/auth/logout", Logout)
	authed := r.Group("", utils.AuthMiddleware())
	authed.GET("/auth/me", Me)
	return r
}

func loginForm(email, password string) url.Values {
	return url.Values{
		"email":    {email},
		"password": {password},
	}
}

func TestAuthenticate_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := authRouter()

	user := models.User{Name: "Ada", Email: "ada@example.com", Password: "open sesame"}
	require.NoError(t, db.Create(&user).Error)

	w := doForm(r, http.MethodPost, "/auth/login", loginForm("ada@example.com", "open sesame"))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var session string
	for _, c := range cookies {
		if c.Name == utils.SessionCookieName {
			session = c.Value
		}
	}
	require.NotEmpty(t, session, "sign-in must set the session cookie")

	// The cookie is a working session.
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+session)
	w2 := doRequest(r, req)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "ada@example.com")
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := authRouter()

	user := models.User{Name: "Ada", Email: "ada@example.com", Password: "open sesame"}
	require.NoError(t, db.Create(&user).Error)

	w := doForm(r, http.MethodPost, "/auth/login", loginForm("ada@example.com", "wrong"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials.", w.Body.String())
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	setupTestDB(t)
	r := authRouter()

	w := doForm(r, http.MethodPost, "/auth/login", loginForm("nobody@example.com", "whatever"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials.", w.Body.String())
}

func TestAuthenticate_NonAuthErrorPropagates(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := authRouter()

	// A dead store is not an authentication failure and must not be
	// dressed up as one.
	require.NoError(t, db.Migrator().DropTable(&models.User{}))

	w := doForm(r, http.MethodPost, "/auth/login", loginForm("ada@example.com", "open sesame"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "Invalid credentials.")
	assert.NotContains(t, w.Body.String(), "Something went wrong.")
}

func TestAuthErrorMessageMapping(t *testing.T) {
	assert.Equal(t, "Invalid credentials.",
		authErrorMessage(&services.AuthError{Type: services.AuthErrorCredentialsSignin}))
	assert.Equal(t, "Something went wrong.",
		authErrorMessage(&services.AuthError{Type: "OtherAuthError"}))
	assert.Equal(t, "Something went wrong.",
		authErrorMessage(&services.AuthError{Type: services.AuthErrorUnknownStrategy}))
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := authRouter()

	w := doForm(r, http.MethodPost, "/auth/register", url.Values{
		"name":     {"Grace"},
		"email":    {"grace@example.com"},
		"password": {"hopper123"},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "grace@example.com").Error)
	assert.NotEqual(t, "hopper123", user.Password, "password must be stored hashed")
	assert.True(t, utils.CheckPasswordHash("hopper123", user.Password))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := authRouter()

	require.NoError(t, db.Create(&models.User{Name: "Ada", Email: "ada@example.com", Password: "pw123456"}).Error)

	w := doForm(r, http.MethodPost, "/auth/register", url.Values{
		"name":     {"Ada Again"},
		"email":    {"ada@example.com"},
		"password": {"pw123456"},
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}
