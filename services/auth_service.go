// services/auth_service.go
package services

import (
	"errors"
	"net/http"
	"time"

	"invoicehub-backend/config"
	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Sign-in strategies.
const StrategyCredentials = "credentials"

// AuthError type discriminators.
const (
	AuthErrorCredentialsSignin = "CredentialsSignin"
	AuthErrorUnknownStrategy   = "UnknownStrategy"
)

// AuthError is the typed failure the sign-in provider raises. Anything else
// coming out of SignIn (a dead database, a broken signer) is not an
// authentication failure and callers must not treat it as one.
type AuthError struct {
	Type string
}

func (e *AuthError) Error() string {
	return "auth error: " + e.Type
}

type Credentials struct {
	Email    string
	Password string
}

// SignIn verifies the submitted credentials against the users table and, on
// success, establishes the session itself: it sets the session cookie and
// redirects to the dashboard. The caller gets nil back and should not write
// anything further to the response.
func SignIn(c *gin.Context, strategy string, creds Credentials) error {
	if strategy != StrategyCredentials {
		return &AuthError{Type: AuthErrorUnknownStrategy}
	}

	var user models.User
	if err := config.DB.Where("email = ?", creds.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &AuthError{Type: AuthErrorCredentialsSignin}
		}
		return err
	}

	if !utils.CheckPasswordHash(creds.Password, user.Password) {
		return &AuthError{Type: AuthErrorCredentialsSignin}
	}

	token, err := utils.GenerateToken(user.ID.String())
	if err != nil {
		return err
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	maxAge := utils.TokenExpiryHours() * 3600
	c.SetCookie(utils.SessionCookieName, token, maxAge, "/", "", true, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
	return nil
}
