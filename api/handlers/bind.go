package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"packtrack-service/api/response"
)

var validate = validator.New()

// BindAndValidate decodes the JSON body into out and checks its validate
// tags. On failure the envelope has already been written.
func BindAndValidate(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		response.BadRequest(c, "invalid request body")
		return false
	}
	if err := validate.Struct(out); err != nil {
		response.ErrorWithData(c, response.CodeBadRequest, "validation failed", gin.H{"fields": validationErrorsToMap(err)})
		return false
	}
	return true
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = "failed " + fe.Tag()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
