package handlers

import (
	"time"

	"kasif-platform/middleware"
	"kasif-platform/models"
	"kasif-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes mounts the student-facing surface: own record, prayer
// logging, task submission, marketplace purchases, mini-game scores and the
// read-only catalogs scoped to the student's class.
func SetupStudentRoutes(
	app *fiber.App,
	studentService *services.StudentService,
	prayerService *services.PrayerService,
	taskService *services.TaskService,
	marketService *services.MarketService,
	badgeService *services.BadgeService,
	communityService *services.CommunityService,
) {
	s := app.Group("/s", middleware.GatewayAuthMiddleware(), middleware.UserContextMiddleware(), middleware.RequireRole("student"))

	me := func(c *fiber.Ctx) (*models.Student, error) {
		return studentService.Get(c.Locals("user_id").(string))
	}

	s.Get("/me", func(c *fiber.Ctx) error {
		student, err := me(c)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	s.Get("/prayer-times", func(c *fiber.Ctx) error {
		times, err := prayerService.Times()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"times":  times,
			"status": services.StatusFor(times, time.Now()),
		})
	})

	s.Post("/prayers/:slot", func(c *fiber.Ctx) error {
		var req struct {
			Type models.PrayerType `json:"type" validate:"required,oneof=tek cemaat"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}
		student, credited, err := prayerService.LogPrayer(c.Locals("user_id").(string), c.Params("slot"), req.Type)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"student": student, "credited_np": credited})
	})

	s.Get("/tasks", func(c *fiber.Ctx) error {
		tasks, err := taskService.List()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(tasks)
	})

	s.Post("/tasks/:id/submit", func(c *fiber.Ctx) error {
		student, err := taskService.Submit(c.Locals("user_id").(string), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	s.Get("/market", func(c *fiber.Ctx) error {
		student, err := me(c)
		if err != nil {
			return serviceError(c, err)
		}
		items, err := marketService.ListItems(student.ClassCode)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	})

	s.Post("/market/:id/purchase", func(c *fiber.Ctx) error {
		student, pending, err := marketService.Purchase(c.Locals("user_id").(string), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"student": student, "pending_item": pending})
	})

	s.Post("/games/score", func(c *fiber.Ctx) error {
		var req struct {
			Score int64 `json:"score" validate:"min=0"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}
		student, err := studentService.CreditGameScore(c.Locals("user_id").(string), req.Score)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	s.Get("/announcements", func(c *fiber.Ctx) error {
		student, err := me(c)
		if err != nil {
			return serviceError(c, err)
		}
		out, err := communityService.ListAnnouncements(student.ClassCode)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(out)
	})

	s.Get("/events", func(c *fiber.Ctx) error {
		student, err := me(c)
		if err != nil {
			return serviceError(c, err)
		}
		out, err := communityService.ListEventsForStudent(student.ClassCode)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(out)
	})

	s.Get("/badges", func(c *fiber.Ctx) error {
		badges, err := badgeService.List()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(badges)
	})

	s.Get("/surahs", func(c *fiber.Ctx) error {
		return c.JSON(services.SurahList)
	})
}
