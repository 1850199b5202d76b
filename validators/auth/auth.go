package authValidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

var validate = validator.New()

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"omitempty,min=7,max=15"`
	Password string `json:"password" validate:"required,min=8"`
	// Admin accounts are provisioned out of band, never through public signup.
	Role     string `json:"role" validate:"omitempty,oneof=STUDENT TUTOR"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// UserIDParam parses the :user_id route param.
func UserIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("user_id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
		}
		c.Locals("targetUserID", uint(id))
		return c.Next()
	}
}

// validationErrors flattens validator.ValidationErrors into the field->message
// map used by the 422 envelope.
func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			errors[fe.Field()] = fe.Field() + " is required!"
		case "email":
			errors[fe.Field()] = "Invalid email address!"
		case "min":
			errors[fe.Field()] = fe.Field() + " is too short!"
		case "max":
			errors[fe.Field()] = fe.Field() + " is too long!"
		case "oneof":
			errors[fe.Field()] = fe.Field() + " must be one of: " + fe.Param()
		default:
			errors[fe.Field()] = fe.Field() + " is invalid!"
		}
	}
	return errors
}
