package middleware

import (
	"github.com/gofiber/fiber/v2"

	"lms/apperr"
	"lms/models"
)

// RequireRole returns a middleware that allows only the given roles through.
// Must run after JWTMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// ErrorResponse is the single boundary mapping application errors to HTTP
// responses.
func ErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperr.CodeOf(err) {
	case apperr.CodeBadRequest:
		status = fiber.StatusBadRequest
	case apperr.CodeNotFound:
		status = fiber.StatusNotFound
	case apperr.CodeConflict:
		status = fiber.StatusConflict
	case apperr.CodeForbidden:
		status = fiber.StatusForbidden
	}
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Something went wrong!"
	}
	return JsonResponse(c, status, false, msg, nil)
}
