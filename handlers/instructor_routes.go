package handlers

import (
	"kasif-platform/middleware"
	"kasif-platform/models"
	"kasif-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes mounts the instructor surface: the approval queues
// (registrations, task submissions, purchases), progress tracking, badge
// awards and the catalogs the instructor curates for their classes.
func SetupInstructorRoutes(
	app *fiber.App,
	authService *services.AuthService,
	studentService *services.StudentService,
	taskService *services.TaskService,
	marketService *services.MarketService,
	badgeService *services.BadgeService,
	communityService *services.CommunityService,
) {
	i := app.Group("/i", middleware.GatewayAuthMiddleware(), middleware.UserContextMiddleware(), middleware.RequireRole("instructor"))

	self := func(c *fiber.Ctx) (*models.Instructor, error) {
		return authService.GetInstructor(c.Locals("user_id").(string))
	}

	// Every per-student mutation below must stay inside the instructor's own
	// rosters.
	ownStudent := func(c *fiber.Ctx) (*models.Student, error) {
		instructor, err := self(c)
		if err != nil {
			return nil, err
		}
		student, err := studentService.Get(c.Params("id"))
		if err != nil {
			return nil, err
		}
		if err := services.RequireOwnClass(instructor, student); err != nil {
			return nil, err
		}
		return student, nil
	}

	// --- Students ---

	i.Get("/students", func(c *fiber.Ctx) error {
		instructor, err := self(c)
		if err != nil {
			return serviceError(c, err)
		}
		students, err := studentService.ListByClassCodes(instructor.ClassCodes)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(students)
	})

	// Instructor-created students skip the approval gate.
	i.Post("/students", func(c *fiber.Ctx) error {
		var req services.RegistrationInput
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}
		instructor, err := self(c)
		if err != nil {
			return serviceError(c, err)
		}
		if !instructor.OwnsClassCode(req.ClassCode) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "class code not owned by instructor"})
		}
		student, err := studentService.Register(req, true)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(student)
	})

	i.Post("/students/:id/approve", func(c *fiber.Ctx) error {
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		if err := studentService.Approve(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "student approved"})
	})

	i.Delete("/students/:id/reject", func(c *fiber.Ctx) error {
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		if err := studentService.Reject(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "registration rejected and removed"})
	})

	i.Patch("/students/:id", func(c *fiber.Ctx) error {
		var req services.ProfileUpdate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		student, err := studentService.UpdateProfile(c.Params("id"), req)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	i.Delete("/students/:id", func(c *fiber.Ctx) error {
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		if err := studentService.Delete(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "student deleted"})
	})

	// --- Progress tracking ---

	i.Put("/students/:id/progress/:track/:key", func(c *fiber.Ctx) error {
		var req struct {
			Value string `json:"value" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		student, err := studentService.SetProgressStatus(c.Params("id"), c.Params("track"), c.Params("key"), req.Value)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	i.Put("/students/:id/reading-assignment", func(c *fiber.Ctx) error {
		var req struct {
			Assignment string `json:"assignment"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		if err := studentService.SetReadingAssignment(c.Params("id"), req.Assignment); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "assignment saved"})
	})

	// --- Task workflow ---

	i.Post("/students/:id/tasks/:taskId/approve", func(c *fiber.Ctx) error {
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		student, err := taskService.Approve(c.Params("id"), c.Params("taskId"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	i.Post("/students/:id/tasks/:taskId/reject", func(c *fiber.Ctx) error {
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		student, err := taskService.Reject(c.Params("id"), c.Params("taskId"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	i.Post("/tasks", func(c *fiber.Ctx) error {
		var task models.WeeklyTask
		if err := c.BodyParser(&task); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := taskService.Create(&task); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(task)
	})

	i.Delete("/tasks/:id", func(c *fiber.Ctx) error {
		if err := taskService.Delete(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "task deleted"})
	})

	// --- Marketplace workflow ---

	i.Post("/students/:id/pending-items/:pendingId/approve", func(c *fiber.Ctx) error {
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		student, err := marketService.ApprovePurchase(c.Params("id"), c.Params("pendingId"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	i.Post("/students/:id/pending-items/:pendingId/reject", func(c *fiber.Ctx) error {
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		student, err := marketService.RejectPurchase(c.Params("id"), c.Params("pendingId"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	i.Get("/market", func(c *fiber.Ctx) error {
		instructor, err := self(c)
		if err != nil {
			return serviceError(c, err)
		}
		items, err := marketService.ListItemsForCodes(instructor.ClassCodes)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	})

	i.Post("/market", func(c *fiber.Ctx) error {
		var item models.MarketItem
		if err := c.BodyParser(&item); err != nil {
			return badRequest(c, "invalid JSON")
		}
		instructor, err := self(c)
		if err != nil {
			return serviceError(c, err)
		}
		if !instructor.OwnsClassCode(item.ClassCode) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "class code not owned by instructor"})
		}
		if err := marketService.CreateItem(&item); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	i.Patch("/market/:id/stock", func(c *fiber.Ctx) error {
		var req struct {
			Stock int `json:"stock"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := marketService.UpdateStock(c.Params("id"), req.Stock); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "stock updated"})
	})

	i.Delete("/market/:id", func(c *fiber.Ctx) error {
		if err := marketService.DeleteItem(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "item deleted"})
	})

	// --- Badges ---

	i.Post("/students/:id/badges/:badgeId", func(c *fiber.Ctx) error {
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		student, err := badgeService.Award(c.Params("id"), c.Params("badgeId"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	// Points previously granted stay with the student.
	i.Delete("/students/:id/badges/:badgeId", func(c *fiber.Ctx) error {
		if _, err := ownStudent(c); err != nil {
			return serviceError(c, err)
		}
		student, err := badgeService.Revoke(c.Params("id"), c.Params("badgeId"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(student)
	})

	i.Post("/badges", func(c *fiber.Ctx) error {
		var badge models.Badge
		if err := c.BodyParser(&badge); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := badgeService.Create(&badge); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(badge)
	})

	i.Delete("/badges/:id", func(c *fiber.Ctx) error {
		if err := badgeService.Delete(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "badge deleted"})
	})

	// --- Announcements, events, reports ---

	i.Post("/announcements", func(c *fiber.Ctx) error {
		var a models.Announcement
		if err := c.BodyParser(&a); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := communityService.CreateAnnouncement(&a); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})

	i.Delete("/announcements/:id", func(c *fiber.Ctx) error {
		if err := communityService.DeleteAnnouncement(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "announcement deleted"})
	})

	i.Post("/events", func(c *fiber.Ctx) error {
		var e models.AppEvent
		if err := c.BodyParser(&e); err != nil {
			return badRequest(c, "invalid JSON")
		}
		e.CreatedBy = "instructor"
		if err := communityService.CreateEvent(&e); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	})

	i.Delete("/events/:id", func(c *fiber.Ctx) error {
		if err := communityService.DeleteEvent(c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "event deleted"})
	})

	i.Post("/reports", func(c *fiber.Ctx) error {
		var r models.WeeklyReport
		if err := c.BodyParser(&r); err != nil {
			return badRequest(c, "invalid JSON")
		}
		instructor, err := self(c)
		if err != nil {
			return serviceError(c, err)
		}
		r.InstructorID = instructor.ID
		r.InstructorName = instructor.Name
		if err := communityService.SubmitReport(&r); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	})
}
