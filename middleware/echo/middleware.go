package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/vschema/middleware"
)

// ValidateJSON validates the request JSON against schema, stores the
// produced value in the request context on success, or returns 400 with
// middleware.ErrorPayload when validation fails. A zero opt means
// middleware.DefaultOpt.
func ValidateJSON(schema any, opt middleware.Opt) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := middleware.ValidateBody(c.Request().Body, schema, opt)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithValue(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValue fetches the validated body from echo.Context.
func GetValue(c echo.Context) (any, bool) {
	return middleware.ValueFromContext(c.Request().Context())
}
