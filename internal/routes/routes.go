package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth        *services.AuthService
	Posts       *services.PostService
	Trending    *services.TrendingService
	Bookmarks   *services.BookmarkService
	Users       *services.UserService
	Admin       *services.AdminService
	Communities *services.CommunityService
	Contact     *services.ContactService
	Search      *services.SearchService
}

// Setup mounts the /api tree. limiter guards the unauthenticated write
// endpoints (register, login, contact).
func Setup(app *fiber.App, s Services, limiter *middleware.IPRateLimiter, authTimeout time.Duration) {
	api := app.Group("/api", middleware.JWTAuth(s.Auth, authTimeout))

	SetupAuth(api, s, limiter)
	SetupPosts(api, s)
	SetupTrending(api, s)
	SetupUsers(api, s)
	SetupAdmin(api, s)
	SetupCommunities(api, s)
	SetupContact(api, s, limiter)
	SetupSearch(api, s)
}
