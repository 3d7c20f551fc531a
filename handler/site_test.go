package handler

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wedding_manager/constants"
	"wedding_manager/middleware"
	"wedding_manager/model"
	"wedding_manager/resolver"
	"wedding_manager/template"
	"wedding_manager/theme"
	"wedding_manager/validate"
)

func newSiteApp(t *testing.T) (*fiber.App, *gorm.DB, *model.Guest) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Account{}, &model.Couple{}, &model.Guest{}, &model.Companion{},
	))

	account := model.Account{Email: "demo@example.com", Password: "x", Active: true}
	require.NoError(t, db.Create(&account).Error)

	couple := model.Couple{
		Slug: "anna-bela", AccountId: account.ID,
		GroomName: "Bela", BrideName: "Anna",
		WeddingDate: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		IsActive:    true, IsPublished: true,
	}
	require.NoError(t, db.Create(&couple).Error)

	guest := model.Guest{
		CoupleId: couple.ID, FullName: "Maria Figueira",
		Code: "code-maria", Status: constants.RSVP_PENDING,
		AgeClass: constants.AGE_ADULT,
	}
	require.NoError(t, db.Create(&guest).Error)

	fields := template.SiteFieldMap()
	res := resolver.New(db, nil, time.Minute)
	h := New(db, res, theme.NewResolver(db), template.NewSyncer(db, fields, ""), fields, nil, nil)

	app := fiber.New()
	app.Use(middleware.TenantSite(res, map[string]struct{}{"api": {}}, time.Second))
	app.Get("/:slug", h.PublicSite)
	app.Get("/:slug/invite", h.GetInvite)
	app.Post("/:slug/rsvp", validate.SubmitRSVP(), h.SubmitRSVP)

	return app, db, &guest
}

func TestPublicSitePayload(t *testing.T) {
	app, _, _ := newSiteApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/anna-bela", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSubmitRSVPConfirms(t *testing.T) {
	app, db, guest := newSiteApp(t)

	body := `{"code":"code-maria","attending":true,"menuChoice":"vegetarian","message":"see you there","companions":[{"fullName":"Joana Figueira","ageClass":"child"}]}`
	req := httptest.NewRequest("POST", "/anna-bela/rsvp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got model.Guest
	require.NoError(t, db.Preload("Companions").First(&got, guest.ID).Error)
	require.Equal(t, constants.RSVP_CONFIRMED, got.Status)
	require.Equal(t, "vegetarian", got.MenuChoice)
	require.NotNil(t, got.RsvpAt)
	require.Len(t, got.Companions, 1)
	require.Equal(t, constants.AGE_CHILD, got.Companions[0].AgeClass)
}

func TestSubmitRSVPDecline(t *testing.T) {
	app, db, guest := newSiteApp(t)

	body := `{"code":"code-maria","attending":false}`
	req := httptest.NewRequest("POST", "/anna-bela/rsvp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got model.Guest
	require.NoError(t, db.First(&got, guest.ID).Error)
	require.Equal(t, constants.RSVP_DECLINED, got.Status)
}

func TestSubmitRSVPUnknownCode(t *testing.T) {
	app, _, _ := newSiteApp(t)

	body := `{"code":"wrong-code","attending":true}`
	req := httptest.NewRequest("POST", "/anna-bela/rsvp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitRSVPDeadlinePassed(t *testing.T) {
	app, db, _ := newSiteApp(t)

	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(&model.Couple{}).Where("slug = ?", "anna-bela").
		Update("rsvp_deadline", past).Error)

	body := `{"code":"code-maria","attending":true}`
	req := httptest.NewRequest("POST", "/anna-bela/rsvp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetInvitePrefill(t *testing.T) {
	app, _, _ := newSiteApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/anna-bela/invite?code=code-maria", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/anna-bela/invite?code=bogus", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
