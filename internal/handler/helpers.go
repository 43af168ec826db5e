package handler

import (
	"errors"
	"net/http"

	"posadmin/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Fail("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError renders a typed application error with its own status, and
// anything else as a generic 500 routed through the error middleware.
func respondError(c *gin.Context, err error) {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, apierror.Fail(apiErr.Message))
		return
	}
	c.Error(err)
	c.JSON(http.StatusInternalServerError, apierror.Fail("internal server error"))
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, apierror.OK(data))
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, apierror.Response{Success: true, Message: msg})
}
