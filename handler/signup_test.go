package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wedding_manager/model"
	"wedding_manager/resolver"
	"wedding_manager/template"
	"wedding_manager/theme"
	"wedding_manager/validate"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Account{}, &model.VerificationToken{}, &model.PasswordResetToken{},
		&model.Couple{},
	))

	fields := template.SiteFieldMap()
	h := New(db, resolver.New(db, nil, time.Minute), theme.NewResolver(db),
		template.NewSyncer(db, fields, ""), fields, nil, nil)

	app := fiber.New()
	app.Post("/signup", validate.Signup(), h.Signup)
	app.Post("/forgot-password", validate.ForgotPassword(), h.ForgotPassword)
	app.Post("/reset-password", validate.ResetPassword(), h.ResetPassword)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

const signupBody = `{"email":"new@example.com","password":"long-enough","groomName":"Bela","brideName":"Anna","weddingDate":"2026-10-17"}`

func TestSignupCreatesAccountCoupleAndToken(t *testing.T) {
	app, db := newAuthApp(t)

	resp := postJSON(t, app, "/signup", signupBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var couple model.Couple
	require.NoError(t, db.Where("slug = ?", "bela-anna-2026").First(&couple).Error)
	require.False(t, couple.IsPublished)

	var account model.Account
	require.NoError(t, db.First(&account, couple.AccountId).Error)
	require.Equal(t, "new@example.com", account.Email)
	require.False(t, account.Active)

	var tokens int64
	db.Model(&model.VerificationToken{}).Where("account_id = ?", account.ID).Count(&tokens)
	require.Equal(t, int64(1), tokens)
}

func TestSignupSuffixesTakenSlug(t *testing.T) {
	app, db := newAuthApp(t)

	require.NoError(t, db.Create(&model.Couple{
		Slug: "bela-anna-2026", AccountId: 999, GroomName: "B", BrideName: "A",
	}).Error)

	resp := postJSON(t, app, "/signup", signupBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var couple model.Couple
	require.NoError(t, db.Where("slug = ?", "bela-anna-2026-1").First(&couple).Error)
}

func TestSignupReprobesWhenCreateLosesSlugRace(t *testing.T) {
	app, db := newAuthApp(t)

	// A rival signup grabs the probed slug inside the window between the
	// probe and the create, so the create hits the unique index and the
	// whole transaction must re-probe.
	var stolen bool
	require.NoError(t, db.Callback().Create().Before("gorm:create").
		Register("rival_signup", func(tx *gorm.DB) {
			if stolen {
				return
			}
			target, ok := tx.Statement.Dest.(*model.Couple)
			if !ok {
				return
			}
			stolen = true
			rival := tx.Session(&gorm.Session{NewDB: true})
			require.NoError(t, rival.Create(&model.Couple{
				Slug: target.Slug, AccountId: 998, GroomName: "R", BrideName: "S",
			}).Error)
		}))
	defer db.Callback().Create().Remove("rival_signup")

	resp := postJSON(t, app, "/signup", signupBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, stolen)

	var couple model.Couple
	require.NoError(t, db.Where("account_id <> ?", 998).
		Where("slug LIKE ?", "bela-anna-2026%").First(&couple).Error)

	var accounts int64
	db.Model(&model.Account{}).Where("email = ?", "new@example.com").Count(&accounts)
	require.Equal(t, int64(1), accounts)
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	app, db := newAuthApp(t)

	require.NoError(t, db.Create(&model.Account{
		Email: "new@example.com", Password: "x",
	}).Error)

	resp := postJSON(t, app, "/signup", signupBody)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

