// @title Forum Board API
// @version 1.0
// @description Discussion board with posts, trending topics, reactions and moderation.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "github.com/SanjayChandraSamudrala/forum-board/docs"

	"github.com/SanjayChandraSamudrala/forum-board/bootstrap"
	"github.com/SanjayChandraSamudrala/forum-board/config"
	"github.com/SanjayChandraSamudrala/forum-board/database"
	"github.com/SanjayChandraSamudrala/forum-board/internal/controllers"
	"github.com/SanjayChandraSamudrala/forum-board/internal/middleware"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
	"github.com/SanjayChandraSamudrala/forum-board/internal/routes"
	"github.com/SanjayChandraSamudrala/forum-board/internal/services"
	"github.com/SanjayChandraSamudrala/forum-board/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	lg, err := logger.Init(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		lg.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		lg.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		lg.Fatal("redis connect failed", zap.Error(err))
	}
	defer rdb.Close()

	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		lg.Fatal("ensure indexes failed", zap.Error(err))
	}

	users := repository.NewMongoUserRepository(db)
	posts := repository.NewMongoPostRepository(db)
	topics := repository.NewMongoTrendingRepository(db)
	communities := repository.NewMongoCommunityRepository(db)
	contacts := repository.NewMongoContactRepository(db)
	adminLogs := repository.NewMongoAdminLogRepository(db)
	sessions := repository.NewRedisSessionRepository(rdb)

	admin := services.NewAdminService(adminLogs, users)
	svc := routes.Services{
		Auth:        services.NewAuthService(users, sessions, cfg.JWTSecret, cfg.TokenTTL, cfg.SessionIdleTimeout),
		Posts:       services.NewPostService(posts, users, admin),
		Trending:    services.NewTrendingService(topics, users, admin),
		Bookmarks:   services.NewBookmarkService(users, posts, topics),
		Users:       services.NewUserService(users, posts, sessions, admin),
		Admin:       admin,
		Communities: services.NewCommunityService(communities, users, admin),
		Contact:     services.NewContactService(contacts, admin),
		Search:      services.NewSearchService(posts, users, communities),
	}
	controllers.RequestTimeout = cfg.RequestTimeout

	app := fiber.New(fiber.Config{ErrorHandler: controllers.ErrorHandler})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: middleware.LocalRequestID,
	}))
	app.Use(middleware.RequestLogger(lg))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	routes.Setup(app, svc, middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst), cfg.RequestTimeout)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Error("server stopped", zap.Error(err))
			stop()
		}
	}()
	lg.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("shutdown failed", zap.Error(err))
	}
}
