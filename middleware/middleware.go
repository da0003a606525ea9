package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Setup installs the common middleware stack. Panics become 500s, every
// request gets an id, and access logs carry it.
func Setup(app *fiber.App, allowOrigins []string) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:    RequestIDHeader,
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	origins := strings.Join(allowOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, " + RequestIDHeader,
		ExposeHeaders:    RequestIDHeader + ", " + fiber.HeaderContentDisposition,
		AllowCredentials: origins != "" && !strings.Contains(origins, "*"),
	}))
}

// ErrorHandler renders errors that escape handlers (unknown routes, panics)
// in the same shape as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"status": "error", "message": err.Error()})
}
