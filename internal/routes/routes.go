package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/bookworm-labs/bookstore-backend/internal/config"
	"github.com/bookworm-labs/bookstore-backend/internal/handlers"
	"github.com/bookworm-labs/bookstore-backend/internal/middleware"
	"github.com/bookworm-labs/bookstore-backend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	authorHandler *handlers.AuthorHandler,
	bookHandler *handlers.BookHandler,
	orderHandler *handlers.OrderHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api/v1")

	requireUser := middleware.RequireUser(authService)
	requireAdmin := middleware.RequireAdmin(authService)

	// Login/refresh get a stricter per-IP limit than the rest of the API.
	users := api.Group("/users")
	authLimiter := limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	users.Post("/signup", userHandler.Signup)
	users.Post("/login", authLimiter, authHandler.Login)
	users.Post("/refresh", authLimiter, authHandler.Refresh)
	users.Post("/logout", authHandler.Logout)
	users.Get("/me", requireUser, userHandler.Me)
	users.Patch("/me", requireUser, userHandler.UpdateMe)
	users.Delete("/me", requireUser, userHandler.DeleteMe)

	authors := api.Group("/authors")
	authors.Post("/", requireAdmin, authorHandler.Create)
	authors.Get("/", requireUser, authorHandler.List)
	authors.Get("/:id", requireUser, authorHandler.Get)
	authors.Patch("/:id", requireAdmin, authorHandler.Update)
	authors.Delete("/:id", requireAdmin, authorHandler.Delete)

	books := api.Group("/books", requireUser)
	books.Post("/", bookHandler.Create)
	books.Get("/", bookHandler.List)
	books.Get("/:id", bookHandler.Get)
	books.Patch("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)

	orders := api.Group("/orders", requireUser)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Patch("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
}
