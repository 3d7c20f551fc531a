package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wedding_manager/apperr"
	"wedding_manager/config"
	"wedding_manager/constants"
	"wedding_manager/helper"
	"wedding_manager/model"
	"wedding_manager/utils"
)

// createRetries covers the window where two signups with colliding base
// slugs both pass the probe loop; the unique index decides, we re-probe.
const createRetries = 2

func (h *Handler) Signup(c *fiber.Ctx) error {
	input := c.Locals("signupInput").(*model.SignupInput)

	existing, err := helper.GetAccountByEmail(h.DB, input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.EMAIL_ALREADY_USED, errors.New("email taken"), "email")
	}

	weddingDate, err := time.Parse("2006-01-02", input.WeddingDate)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Wedding date must be YYYY-MM-DD", err, "weddingDate")
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	base := helper.CoupleSlug(input.GroomName, input.BrideName, weddingDate.Year())

	var couple model.Couple
	var verify model.VerificationToken

	for attempt := 0; ; attempt++ {
		err = h.DB.Transaction(func(tx *gorm.DB) error {
			slug, err := helper.UniqueCoupleSlug(tx, base)
			if err != nil {
				return err
			}

			account := model.Account{
				Email:    input.Email,
				Password: hash,
				Role:     constants.ROLE_COUPLE,
				Active:   false,
			}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}

			couple = model.Couple{
				Slug:        slug,
				AccountId:   account.ID,
				GroomName:   input.GroomName,
				BrideName:   input.BrideName,
				WeddingDate: weddingDate,
				City:        input.City,
				IsActive:    true,
				IsPublished: false,
			}
			if err := tx.Create(&couple).Error; err != nil {
				return err
			}

			verify = model.VerificationToken{
				AccountId: account.ID,
				Token:     uuid.NewString(),
				ExpiresAt: time.Now().Add(48 * time.Hour),
			}
			return tx.Create(&verify).Error
		})

		if err == nil {
			break
		}
		if isUniqueViolation(err) && attempt < createRetries {
			log.Info().Str("base", base).Int("attempt", attempt+1).
				Msg("slug creation lost race, re-probing")
			continue
		}
		if ae, ok := err.(*apperr.Error); ok {
			return utils.AppErrorResponse(c, ae)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	baseURL := config.ConfigOr("PUBLIC_BASE_URL", "http://localhost:8002")
	utils.SendVerificationEmail(input.Email, utils.VerifyEmailData{
		Name:      input.GroomName + " & " + input.BrideName,
		SiteUrl:   fmt.Sprintf("%s/%s", baseURL, couple.Slug),
		VerifyUrl: fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", baseURL, verify.Token),
	}, constants.VERIFY_EMAIL_SUBJECT)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"slug":   couple.Slug,
		"couple": couple,
	})
}

// isUniqueViolation matches both the gorm sentinel and the raw postgres
// 23505 message, since the driver error is not always translated.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
