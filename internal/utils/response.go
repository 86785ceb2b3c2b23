// internal/utils/response.go
package utils

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/games-api/internal/i18n"
)

// ErrorBody is the error envelope shared by every endpoint.
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Responses are written with PureJSON so names with markup or non-ASCII
// characters reach the client unescaped.

func SuccessResponse(c *gin.Context, data interface{}) {
	c.PureJSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.PureJSON(http.StatusCreated, data)
}

func ErrorResponse(c *gin.Context, statusCode int, message string, details interface{}) {
	c.PureJSON(statusCode, ErrorBody{
		Error:   message,
		Details: details,
	})
}

func BadRequestResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, message, nil)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, message, nil)
}

func TooManyRequestsResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusTooManyRequests, i18n.T(GetLangFromContext(c), i18n.KeyRateLimited), nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	message := i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid, "input")
	ErrorResponse(c, http.StatusBadRequest, message, errors)
}

// RedirectWithMessage answers a form post with 303 See Other to target,
// carrying message as the "message" query parameter.
func RedirectWithMessage(c *gin.Context, target, message string) {
	u, err := url.Parse(target)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set("message", message)
	u.RawQuery = q.Encode()
	c.Redirect(http.StatusSeeOther, u.String())
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(uint); ok {
			return id, true
		}
	}
	return 0, false
}

func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	if sessionID, exists := c.Get("session_id"); exists {
		if id, ok := sessionID.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}
