package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wedding_manager/config"
	"wedding_manager/database"
	"wedding_manager/handler"
	"wedding_manager/helper"
	"wedding_manager/middleware"
	"wedding_manager/resolver"
	"wedding_manager/router"
	"wedding_manager/template"
	"wedding_manager/theme"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	config.Load()

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	rdb := database.ConnectRedis()

	cacheTTL, _ := time.ParseDuration(config.ConfigOr("TENANT_CACHE_TTL", "60s"))
	resolveTimeout, _ := time.ParseDuration(config.ConfigOr("TENANT_RESOLVE_TIMEOUT", "3s"))

	fields := template.SiteFieldMap()
	res := resolver.New(db, rdb, cacheTTL)
	themes := theme.NewResolver(db)
	sync := template.NewSyncer(db, fields, config.Config("TEMPLATE_UNMAPPED_MODE"))
	cld := helper.InitCloudinary()

	h := handler.New(db, res, themes, sync, fields, rdb, cld)

	helper.StartReminderScheduler(db)
	defer helper.StopReminderScheduler()
	helper.StartTokenSweep(db)
	defer helper.StopTokenSweep()

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	app.Use(middleware.TenantSite(res, router.ReservedSegments(), resolveTimeout))

	router.SetupRoutes(app, h)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log.Fatal().Err(app.Listen(":" + config.ConfigOr("APP_PORT", "8002"))).Msg("server stopped")
}
