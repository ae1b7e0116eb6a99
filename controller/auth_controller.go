// controller/auth_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imdes/console/audit"
	console_errors "github.com/imdes/console/errors"
	"github.com/imdes/console/model"
	"github.com/imdes/console/service"
	"github.com/imdes/console/session"
	"github.com/imdes/console/util"
)

type AuthController struct {
	authService    *service.AuthService
	sessionStore   *session.Store
	validationUtil *util.ValidationUtil
	auditLog       *audit.Logger
}

func NewAuthController(authService *service.AuthService, sessionStore *session.Store, validationUtil *util.ValidationUtil, auditLog *audit.Logger) *AuthController {
	return &AuthController{
		authService:    authService,
		sessionStore:   sessionStore,
		validationUtil: validationUtil,
		auditLog:       auditLog,
	}
}

// RegisterRoutes registers the session routes. Sign-in and sign-up stay
// outside the session guard.
func (ac *AuthController) RegisterRoutes(public, private *gin.RouterGroup) {
	public.POST("/auth/signin", ac.SignIn)
	public.POST("/auth/signup", ac.SignUp)
	private.POST("/auth/signout", ac.SignOut)
	private.GET("/auth/profile", ac.Profile)
}

// SignIn endpoint
func (ac *AuthController) SignIn(c *gin.Context) {
	var credentials model.Credentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid credentials payload", err)
		return
	}
	if err := ac.validationUtil.ValidateCredentials(credentials); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), console_errors.ErrInvalidCredentials)
		return
	}

	result, err := ac.authService.Login(c, credentials)
	if err != nil {
		ac.auditLog.LoginAttempt(credentials.Email, model.AuditFailed)
		util.RespondWithError(c, http.StatusUnauthorized, util.FormatAPIError("Invalid credentials"), err)
		return
	}

	ac.auditLog.LoginAttempt(credentials.Email, model.AuditSuccess)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// SignUp endpoint
func (ac *AuthController) SignUp(c *gin.Context) {
	var data model.SignUpData
	if err := c.ShouldBindJSON(&data); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid sign-up payload", err)
		return
	}
	if err := ac.validationUtil.ValidateSignUpData(data); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), console_errors.ErrInvalidSignUpData)
		return
	}

	result, err := ac.authService.SignUp(c, data)
	if err != nil {
		ac.auditLog.Signup(data.Email, model.AuditFailed)
		util.RespondWithError(c, http.StatusBadRequest, util.FormatAPIError(err.Error()), err)
		return
	}

	ac.auditLog.Signup(data.Email, model.AuditSuccess)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": result})
}

// SignOut endpoint
func (ac *AuthController) SignOut(c *gin.Context) {
	email := ""
	if user := ac.sessionStore.User(); user != nil {
		email = user.Email
	}

	// Queued before the store is cleared so the entry keeps its identity.
	ac.auditLog.Logout(email)

	if err := ac.authService.Logout(c); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to sign out", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Signed out"})
}

// Profile endpoint returns the session user and the capability set derived
// from its role.
func (ac *AuthController) Profile(c *gin.Context) {
	user := ac.sessionStore.User()
	if user == nil {
		util.RespondWithError(c, http.StatusUnauthorized, "No active session", console_errors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        user,
		"permissions": session.Permissions(user.Role),
	})
}
