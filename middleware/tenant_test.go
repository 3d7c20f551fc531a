package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wedding_manager/model"
	"wedding_manager/resolver"
)

func newTenantApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Couple{}))

	require.NoError(t, db.Create(&model.Couple{
		Slug: "anna-bela", AccountId: 1,
		GroomName: "Bela", BrideName: "Anna",
		WeddingDate: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		IsActive:    true, IsPublished: true,
	}).Error)
	require.NoError(t, db.Create(&model.Couple{
		Slug: "retired-pair", AccountId: 2,
		GroomName: "X", BrideName: "Y",
		IsActive: false, IsPublished: true,
	}).Error)

	res := resolver.New(db, nil, time.Minute)
	reserved := map[string]struct{}{
		"api":       {},
		"dashboard": {},
	}

	app := fiber.New()
	app.Use(TenantSite(res, reserved, time.Second))

	app.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	app.Get("/:slug", func(c *fiber.Ctx) error {
		tenant := ResolvedTenant(c)
		if tenant == nil {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.JSON(fiber.Map{
			"slug":      tenant.Slug,
			"groomName": c.Locals("groomName"),
			"brideName": c.Locals("brideName"),
		})
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("root")
	})
	return app
}

func TestReservedPrefixBypassesResolution(t *testing.T) {
	app := newTenantApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ping", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestKnownSlugResolves(t *testing.T) {
	app := newTenantApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/anna-bela", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Unknown and inactive slugs must produce the identical observable outcome.
func TestUnknownAndInactiveSlugRedirect(t *testing.T) {
	app := newTenantApp(t)

	for _, path := range []string{"/no-such-pair", "/retired-pair"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusFound, resp.StatusCode, "path %s", path)
		require.Equal(t, "/", resp.Header.Get("Location"), "path %s", path)
	}
}

func TestStaticAssetBypassesResolution(t *testing.T) {
	app := newTenantApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/favicon.ico", nil))
	require.NoError(t, err)
	// No route serves it, but it must not be treated as a tenant slug.
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRootPathUntouched(t *testing.T) {
	app := newTenantApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
