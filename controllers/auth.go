package controllers

import (
	"errors"
	"net/http"
	"strings"

	"invoicehub-backend/config"
	"invoicehub-backend/models"
	"invoicehub-backend/services"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Authenticate forwards the submitted credentials to the credentials
// sign-in provider. The provider establishes the session and redirects on
// its own; this handler only translates provider failures into the two
// fixed user-facing strings. Errors that are not authentication failures
// are re-raised to the framework's error boundary.
func Authenticate(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	err := services.SignIn(c, services.StrategyCredentials, services.Credentials{
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
	})
	if err != nil {
		var authErr *services.AuthError
		if errors.As(err, &authErr) {
			status := http.StatusUnauthorized
			if authErr.Type != services.AuthErrorCredentialsSignin {
				status = http.StatusInternalServerError
			}
			c.String(status, authErrorMessage(authErr))
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
}

// authErrorMessage maps a provider failure to its user-facing string.
func authErrorMessage(err *services.AuthError) string {
	switch err.Type {
	case services.AuthErrorCredentialsSignin:
		return "Invalid credentials."
	default:
		return "Something went wrong."
	}
}

// Register creates a dashboard user and signs them in
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if email already exists
	var existingUser models.User
	result := config.DB.Where("email = ?", input.Email).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password, // Will be hashed in BeforeCreate hook
	}
	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	maxAge := utils.TokenExpiryHours() * 3600
	c.SetCookie(utils.SessionCookieName, token, maxAge, "/", "", true, true)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user": gin.H{
			"id":    newUser.ID,
			"name":  newUser.Name,
			"email": newUser.Email,
		},
	})
}

// Me returns the signed-in user
func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Logout clears the session cookie
func Logout(c *gin.Context) {
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
