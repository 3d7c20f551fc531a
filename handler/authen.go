package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding_manager/config"
	"wedding_manager/constants"
	"wedding_manager/helper"
	"wedding_manager/model"
	"wedding_manager/utils"
)

func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginInput := new(LoginInput)
	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}
	if loginInput.Email == "" || loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("email and password are required"))
	}

	account, err := helper.GetAccountByEmail(h.DB, loginInput.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_EMAIL, errors.New("email not registered"))
	}
	if !helper.CheckPasswordHash(loginInput.Password, account.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match"))
	}
	if !account.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("email not verified"))
	}

	var couple model.Couple
	coupleId := uint(0)
	if err := h.DB.Where("account_id = ?", account.ID).First(&couple).Error; err == nil {
		coupleId = couple.ID
	}

	claim := model.TokenClaim{
		AccountId: account.ID,
		CoupleId:  coupleId,
		Email:     account.Email,
	}
	token, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"message": "login success",
		"account": fiber.Map{
			"id":       account.ID,
			"email":    account.Email,
			"role":     account.Role,
			"coupleId": coupleId,
			"slug":     couple.Slug,
		},
	})
}

func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	refresh := c.Cookies("refresh_token")
	if refresh == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing refresh token", errors.New("no token"))
	}

	token, err := helper.ParseToken(refresh)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", errors.New("bad claims"))
	}
	accountId, _ := claims["accountId"].(float64)
	email, _ := claims["email"].(string)
	if accountId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", errors.New("no account in claims"))
	}

	var couple model.Couple
	coupleId := uint(0)
	if err := h.DB.Where("account_id = ?", uint(accountId)).First(&couple).Error; err == nil {
		coupleId = couple.ID
	}

	access, err := helper.GenerateAccessToken(model.TokenClaim{
		AccountId: uint(accountId),
		CoupleId:  coupleId,
		Email:     email,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})

	return c.JSON(fiber.Map{"message": "token refreshed"})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	claim, isAdmin := helper.GetInfoAccountFromToken(c, h.DB)
	if claim.AccountId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_INPUT, errors.New("no account behind token"))
	}
	couple, _ := c.Locals("couple").(*model.Couple)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"accountId": claim.AccountId,
		"email":     claim.Email,
		"isAdmin":   isAdmin,
		"couple":    couple,
	})
}

// ForgotPassword answers identically whether or not the email is registered,
// so the endpoint cannot be used to enumerate accounts.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	input := c.Locals("forgotPasswordInput").(*model.ForgotPasswordInput)

	account, err := helper.GetAccountByEmail(h.DB, input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account != nil {
		reset := model.PasswordResetToken{
			AccountId: account.ID,
			Token:     uuid.NewString(),
			ExpiresAt: time.Now().Add(1 * time.Hour),
		}
		if err := h.DB.Create(&reset).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		base := config.ConfigOr("PUBLIC_BASE_URL", "http://localhost:8002")
		utils.SendPasswordReset(account.Email, utils.PasswordResetData{
			Name:     account.Email,
			ResetUrl: fmt.Sprintf("%s/dashboard/reset-password?token=%s", base, reset.Token),
		}, constants.RESET_PASSWORD_SUBJECT)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"sent": true})
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	input := c.Locals("resetPasswordInput").(*model.ResetPasswordInput)

	var reset model.PasswordResetToken
	if err := h.DB.Where("token = ? AND expires_at > ?", input.Token, time.Now()).First(&reset).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_RESET_TOKEN, err)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Account{}).Where("id = ?", reset.AccountId).
			Update("password", hash).Error; err != nil {
			return err
		}
		// All outstanding reset links for this account die with the change.
		return tx.Where("account_id = ?", reset.AccountId).
			Delete(&model.PasswordResetToken{}).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"reset": true})
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c, h.DB)
	if claim.AccountId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_INPUT, errors.New("no account behind token"))
	}
	input := c.Locals("changePasswordInput").(*model.ChangePasswordInput)

	var account model.Account
	if err := h.DB.First(&account, claim.AccountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !helper.CheckPasswordHash(input.CurrentPassword, account.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("current password does not match"), "currentPassword")
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := h.DB.Model(&account).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"changed": true})
}

func (h *Handler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_VERIFY_TOKEN, errors.New("missing token"))
	}

	var vt model.VerificationToken
	if err := h.DB.Where("token = ? AND expires_at > ?", token, time.Now()).First(&vt).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_VERIFY_TOKEN, err)
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Account{}).Where("id = ?", vt.AccountId).
			Update("active", true).Error; err != nil {
			return err
		}
		return tx.Delete(&vt).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"verified": true})
}
