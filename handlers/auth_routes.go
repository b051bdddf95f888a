package handlers

import (
	"kasif-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes mounts the public login/registration endpoints. Login is
// tri-state for students: success, wrong credentials, or pending approval.
func SetupAuthRoutes(app *fiber.App, authService *services.AuthService, studentService *services.StudentService) {
	auth := app.Group("/auth")

	type loginReq struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	auth.Post("/login/student", func(c *fiber.Ctx) error {
		var req loginReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}
		student, err := authService.LoginStudent(req.Username, req.Password)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"role": "student", "user": student})
	})

	auth.Post("/login/instructor", func(c *fiber.Ctx) error {
		var req loginReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}
		instructor, err := authService.LoginInstructor(req.Username, req.Password)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"role": "instructor", "user": instructor})
	})

	auth.Post("/login/admin", func(c *fiber.Ctx) error {
		var req loginReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := authService.LoginAdmin(req.Username, req.Password); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"role": "admin"})
	})

	// Self-registration: the student lands in pending status, invisible to
	// gameplay until an instructor approves.
	auth.Post("/register/student", func(c *fiber.Ctx) error {
		var req services.RegistrationInput
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}
		student, err := studentService.Register(req, false)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(student)
	})

	auth.Post("/register/instructor", func(c *fiber.Ctx) error {
		var req services.InstructorInput
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}
		instructor, err := authService.RegisterInstructor(req)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(instructor)
	})
}
