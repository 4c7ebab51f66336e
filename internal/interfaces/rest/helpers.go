package rest

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Andtit4/site-database-sub001/pkg/auth"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	"github.com/Andtit4/site-database-sub001/pkg/errors"
)

// GetUserFromContext extracts the authenticated user from gin.Context
func GetUserFromContext(c *gin.Context) *auth.UserSession {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := value.(auth.UserSession)
	if !ok {
		return nil
	}
	return &user
}

// RespondAppError sends a standardised JSON error response using pkg/errors
func RespondAppError(c *gin.Context, err error) {
	code := errors.GetHTTPStatus(err)
	errorCode := errors.GetErrorCode(err)
	message := err.Error()

	switch {
	case errors.IsDDL(err):
		// The physical table may now disagree with its specification
		log.Printf("🧱 DDL FAILED %s %s: %s (see /api/admin/schema-drift)", c.Request.Method, c.Request.URL.Path, message)
	case code >= 500:
		log.Printf("❌ ERROR [%d] %s %s: %s", code, c.Request.Method, c.Request.URL.Path, message)
	}

	c.JSON(code, gin.H{
		constants.ResponseError: message,
		constants.FieldMessage:  message,
		"code":                  errorCode,
		"data":                  nil,
	})
}

// BindJSON binds JSON and returns true if successful. If failed, it sends bad request error.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondAppError(c, errors.NewValidationError("body", err.Error()))
		return false
	}
	return true
}

// BindJSONStrict binds JSON and enforces strict field validation (no unknown fields).
func BindJSONStrict(c *gin.Context, obj interface{}) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		RespondAppError(c, errors.NewValidationError("body", err.Error()))
		return false
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		RespondAppError(c, errors.NewValidationError("body", err.Error()))
		return false
	}
	return true
}

// QueryLimit reads ?limit; zero means "use the service default"
func QueryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		RespondAppError(c, errors.NewValidationError("limit", "must be a non-negative integer"))
		return 0, false
	}
	return limit, true
}

// HandleGetEnvelope executes a read action and returns the result wrapped in a JSON key
// Response: { [key]: result }
func HandleGetEnvelope(c *gin.Context, key string, action func() (interface{}, error)) {
	result, err := action()
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: result})
}

// HandleCreateEnvelope binds req, executes a create action and returns what it produced
// Response: { message: successMsg, [key]: result } (key omitted if empty)
func HandleCreateEnvelope(c *gin.Context, key string, successMsg string, req interface{}, action func() (interface{}, error)) {
	handleWrite(c, http.StatusCreated, key, successMsg, req, action)
}

// HandleUpdateEnvelope binds req, executes an update action and returns what it produced
// Response: { message: successMsg, [key]: result } (key omitted if empty)
func HandleUpdateEnvelope(c *gin.Context, key string, successMsg string, req interface{}, action func() (interface{}, error)) {
	handleWrite(c, http.StatusOK, key, successMsg, req, action)
}

func handleWrite(c *gin.Context, status int, key, successMsg string, req interface{}, action func() (interface{}, error)) {
	if !BindJSON(c, req) {
		return
	}
	result, err := action()
	if err != nil {
		RespondAppError(c, err)
		return
	}
	response := gin.H{constants.FieldMessage: successMsg}
	if key != "" {
		response[key] = result
	}
	c.JSON(status, response)
}

// HandleDeleteEnvelope executes a delete action and returns a success message
// Response: { message: successMsg }
func HandleDeleteEnvelope(c *gin.Context, successMsg string, action func() error) {
	if err := action(); err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: successMsg})
}
