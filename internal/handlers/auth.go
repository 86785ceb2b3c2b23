// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/games-api/internal/i18n"
	"github.com/javajoker/games-api/internal/services"
	"github.com/javajoker/games-api/internal/utils"
)

// Pages form posts are redirected back to.
const (
	homePage     = "/"
	loginPage    = "/login"
	registerPage = "/register"
)

type AuthHandler struct {
	authService   *services.AuthService
	secureCookies bool
}

func NewAuthHandler(authService *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	form := isFormPost(c)

	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, form, registerPage, http.StatusBadRequest, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			h.fail(c, form, registerPage, http.StatusConflict, i18n.T(lang, i18n.KeyAuthEmailTaken))
		case errors.Is(err, services.ErrUsernameTaken):
			h.fail(c, form, registerPage, http.StatusConflict, i18n.T(lang, i18n.KeyAuthUsernameTaken))
		default:
			h.failValidationOrInternal(c, form, registerPage, err)
		}
		return
	}

	message := i18n.T(lang, i18n.KeyAuthRegisterSuccess)
	if form {
		utils.RedirectWithMessage(c, loginPage, message)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": message,
		"user":    user,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	form := isFormPost(c)

	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, form, loginPage, http.StatusBadRequest, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.fail(c, form, loginPage, http.StatusUnauthorized, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
			return
		}
		h.failValidationOrInternal(c, form, loginPage, err)
		return
	}

	message := i18n.T(lang, i18n.KeyAuthLoginSuccess)
	if form {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(utils.SessionCookie, session.SessionToken, session.ExpiresIn, "/", "", h.secureCookies, true)
		utils.RedirectWithMessage(c, homePage, message)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":       message,
		"user":          session.User,
		"session_token": session.SessionToken,
		"token_type":    session.TokenType,
		"expires_in":    session.ExpiresIn,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, _ := utils.GetUserIDFromContext(c)
	sessionID, _ := utils.GetSessionIDFromContext(c)

	revoked, err := h.authService.RevokeSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to revoke session")
		utils.InternalErrorResponse(c, "")
		return
	}

	c.SetCookie(utils.SessionCookie, "", -1, "/", "", h.secureCookies, true)

	message := i18n.T(lang, i18n.KeyAuthLogoutSuccess)
	if isFormPost(c) {
		utils.RedirectWithMessage(c, loginPage, message)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      message,
		"revoked_keys": revoked,
	})
}

// GET /auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, _ := utils.GetUserIDFromContext(c)
	sessionID, _ := utils.GetSessionIDFromContext(c)

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			// Account removed after the session was issued
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthUserNotFound))
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load user")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user":       user,
		"session_id": sessionID,
	})
}

// POST /auth/api-token
func (h *AuthHandler) IssueAPIToken(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, _ := utils.GetUserIDFromContext(c)
	sessionID, _ := utils.GetSessionIDFromContext(c)

	token, err := h.authService.IssueAccessToken(c.Request.Context(), userID, sessionID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to issue API key")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthAPITokenIssued),
		"api_key":    token.APIKey,
		"expires_at": token.ExpiresAt,
	})
}

// fail answers a form post with a redirect to page and a JSON call with
// status.
func (h *AuthHandler) fail(c *gin.Context, form bool, page string, status int, message string) {
	if form {
		utils.RedirectWithMessage(c, page, message)
		return
	}
	utils.ErrorResponse(c, status, message, nil)
}

func (h *AuthHandler) failValidationOrInternal(c *gin.Context, form bool, page string, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := utils.GetValidationErrors(validationErrs)
		if form {
			utils.RedirectWithMessage(c, page, details[0].Message)
			return
		}
		utils.ValidationErrorResponse(c, details)
		return
	}

	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Authentication request failed")
	h.fail(c, form, page, http.StatusInternalServerError, "Internal server error")
}

func isFormPost(c *gin.Context) bool {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return true
	}
	return false
}
