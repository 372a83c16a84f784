package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/controllers"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
)

func SetupAuth(api fiber.Router, s Services, limiter *middleware.IPRateLimiter) {
	auth := api.Group("/auth")

	auth.Post("/register", limiter.Handler(), controllers.Register(s.Auth))
	auth.Post("/login", limiter.Handler(), controllers.Login(s.Auth))

	auth.Post("/logout", middleware.RequireAuth(), controllers.Logout(s.Auth))
	auth.Get("/me", middleware.RequireAuth(), controllers.Me(s.Auth))
	auth.Get("/threads", middleware.RequireAuth(), controllers.MyThreads(s.Users))
	auth.Put("/profile", middleware.RequireAuth(), controllers.UpdateProfile(s.Auth))
	auth.Put("/change-password", middleware.RequireAuth(), controllers.ChangePassword(s.Auth))
}
