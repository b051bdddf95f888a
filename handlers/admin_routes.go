package handlers

import (
	"log"

	"kasif-platform/middleware"
	"kasif-platform/models"
	"kasif-platform/services"
	"kasif-platform/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes mounts the admin surface: instructor account management,
// class code assignment, global events, weekly report review and CSV export
// snapshots.
func SetupAdminRoutes(
	app *fiber.App,
	authService *services.AuthService,
	studentService *services.StudentService,
	communityService *services.CommunityService,
) {
	a := app.Group("/a", middleware.GatewayAuthMiddleware(), middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	// --- Instructors ---

	a.Get("/instructors", func(c *fiber.Ctx) error {
		instructors, err := authService.ListInstructors()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(instructors)
	})

	a.Post("/instructors", func(c *fiber.Ctx) error {
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

	a.Delete("/instructors/:id", func(c *fiber.Ctx) error {
		if err := authService.DeleteInstructor(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "instructor deleted"})
	})

	a.Post("/instructors/:id/class-codes", func(c *fiber.Ctx) error {
		var req struct {
			Code string `json:"code" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}
		instructor, err := authService.AddClassCode(c.Params("id"), req.Code)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(instructor)
	})

	a.Delete("/instructors/:id/class-codes/:code", func(c *fiber.Ctx) error {
		instructor, err := authService.RemoveClassCode(c.Params("id"), c.Params("code"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(instructor)
	})

	// --- Students (cross-class view) ---

	a.Get("/students", func(c *fiber.Ctx) error {
		students, err := studentService.ListAll()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(students)
	})

	a.Delete("/students/:id", func(c *fiber.Ctx) error {
		if err := studentService.Delete(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "student deleted"})
	})

	// --- Global events ---

	a.Get("/events", func(c *fiber.Ctx) error {
		events, err := communityService.ListGlobalEvents()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(events)
	})

	a.Post("/events", func(c *fiber.Ctx) error {
		var e models.AppEvent
		if err := c.BodyParser(&e); err != nil {
			return badRequest(c, "invalid JSON")
		}
		e.ClassCode = models.GlobalClassCode
		e.CreatedBy = "admin"
		if err := communityService.CreateEvent(&e); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	})

	a.Delete("/events/:id", func(c *fiber.Ctx) error {
		if err := communityService.DeleteEvent(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "event deleted"})
	})

	// --- Weekly reports ---

	a.Get("/reports", func(c *fiber.Ctx) error {
		reports, err := communityService.ListReports()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(reports)
	})

	// --- Export snapshots ---

	a.Post("/exports/students", func(c *fiber.Ctx) error {
		students, err := studentService.ListAll()
		if err != nil {
			return serviceError(c, err)
		}
		data, err := utils.StudentsCSV(students)
		if err != nil {
			return serviceError(c, err)
		}
		key := utils.SnapshotKey("students")
		url, err := utils.UploadSnapshot(key, data, "text/csv")
		if err != nil {
			log.Printf("[Export] Upload failed for %s: %v", key, err)
			return serviceError(c, err)
		}
		log.Printf("📤 Exported %d student(s) to %s", len(students), key)
		return c.JSON(fiber.Map{"url": url, "count": len(students)})
	})

	a.Post("/exports/instructors", func(c *fiber.Ctx) error {
		instructors, err := authService.ListInstructors()
		if err != nil {
			return serviceError(c, err)
		}
		data, err := utils.InstructorsCSV(instructors)
		if err != nil {
			return serviceError(c, err)
		}
		key := utils.SnapshotKey("instructors")
		url, err := utils.UploadSnapshot(key, data, "text/csv")
		if err != nil {
			log.Printf("[Export] Upload failed for %s: %v", key, err)
			return serviceError(c, err)
		}
		log.Printf("📤 Exported %d instructor(s) to %s", len(instructors), key)
		return c.JSON(fiber.Map{"url": url, "count": len(instructors)})
	})
}
