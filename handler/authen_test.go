package handler

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"wedding_manager/helper"
	"wedding_manager/model"
)

func TestForgotAndResetPassword(t *testing.T) {
	app, db := newAuthApp(t)

	hash, err := helper.HashPassword("old-password")
	require.NoError(t, err)
	account := model.Account{Email: "anna@example.com", Password: hash, Active: true}
	require.NoError(t, db.Create(&account).Error)

	resp := postJSON(t, app, "/forgot-password", `{"email":"anna@example.com"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reset model.PasswordResetToken
	require.NoError(t, db.Where("account_id = ?", account.ID).First(&reset).Error)

	resp = postJSON(t, app, "/reset-password",
		`{"token":"`+reset.Token+`","newPassword":"brand-new-password"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got model.Account
	require.NoError(t, db.First(&got, account.ID).Error)
	require.True(t, helper.CheckPasswordHash("brand-new-password", got.Password))
	require.False(t, helper.CheckPasswordHash("old-password", got.Password))

	// The used link and any siblings are gone.
	var remaining int64
	db.Model(&model.PasswordResetToken{}).Where("account_id = ?", account.ID).Count(&remaining)
	require.Equal(t, int64(0), remaining)

	resp = postJSON(t, app, "/reset-password",
		`{"token":"`+reset.Token+`","newPassword":"another-password"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestForgotPasswordUnknownEmailIndistinguishable(t *testing.T) {
	app, db := newAuthApp(t)

	resp := postJSON(t, app, "/forgot-password", `{"email":"nobody@example.com"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tokens int64
	db.Model(&model.PasswordResetToken{}).Count(&tokens)
	require.Equal(t, int64(0), tokens)
}
