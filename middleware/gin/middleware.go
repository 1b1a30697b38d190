package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/vschema/middleware"
)

// ValidateJSON validates the incoming JSON against schema with opt (or
// middleware.DefaultOpt when zero value), stores the produced value in the
// request context, and on failure aborts with 400 and the error payload.
func ValidateJSON(schema any, opt middleware.Opt) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := middleware.ValidateBody(c.Request.Body, schema, opt)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithValue(c.Request.Context(), v))
		c.Next()
	}
}

// GetValue fetches the validated body from gin.Context.
func GetValue(c *gin.Context) (any, bool) {
	return middleware.ValueFromContext(c.Request.Context())
}
