package handler

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wedding_manager/config"
	"wedding_manager/constants"
	"wedding_manager/middleware"
	"wedding_manager/model"
	"wedding_manager/utils"
)

// PublicSite is the payload the public renderer consumes: identity from the
// resolved tenant, template fields through the reverse mapping, and the
// display theme.
func (h *Handler) PublicSite(c *fiber.Ctx) error {
	tenant := middleware.ResolvedTenant(c)
	if tenant == nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	var couple model.Couple
	if err := h.DB.First(&couple, tenant.ID).Error; err != nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"slug":   tenant.Slug,
		"fields": h.Sync.Fields(&couple),
		"theme":  h.Theme.Of(&couple),
	})
}

// GetInvite prefills the RSVP form for a guest arriving through a QR code.
func (h *Handler) GetInvite(c *fiber.Ctx) error {
	tenant := middleware.ResolvedTenant(c)
	if tenant == nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	code := c.Query("code")
	if code == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.RSVP_CODE_INVALID, errors.New("missing code"))
	}

	var guest model.Guest
	err := h.DB.Where("code = ? AND couple_id = ?", code, tenant.ID).
		Preload("Companions").
		First(&guest).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RSVP_CODE_INVALID, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"fullName":   guest.FullName,
		"status":     guest.Status,
		"menuChoice": guest.MenuChoice,
		"companions": guest.Companions,
	})
}

func (h *Handler) SubmitRSVP(c *fiber.Ctx) error {
	tenant := middleware.ResolvedTenant(c)
	if tenant == nil {
		return c.Redirect("/", fiber.StatusFound)
	}
	input := c.Locals("submitRSVPInput").(*model.SubmitRSVPInput)

	var couple model.Couple
	if err := h.DB.First(&couple, tenant.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if couple.RsvpDeadline != nil && time.Now().After(*couple.RsvpDeadline) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.RSVP_DEADLINE_PASSED, errors.New("deadline passed"))
	}

	var guest model.Guest
	if err := h.DB.Where("code = ? AND couple_id = ?", input.Code, tenant.ID).First(&guest).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RSVP_CODE_INVALID, err)
	}

	status := constants.RSVP_DECLINED
	if *input.Attending {
		status = constants.RSVP_CONFIRMED
	}
	now := time.Now()

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		guest.Status = status
		guest.MenuChoice = input.MenuChoice
		guest.Message = input.Message
		guest.RsvpAt = &now
		if err := tx.Save(&guest).Error; err != nil {
			return err
		}

		// Companions are the guest's answer, not dashboard state: replace.
		if err := tx.Where("guest_id = ?", guest.ID).Delete(&model.Companion{}).Error; err != nil {
			return err
		}
		for _, comp := range input.Companions {
			ageClass := comp.AgeClass
			if ageClass == "" {
				ageClass = constants.AGE_ADULT
			}
			if err := tx.Create(&model.Companion{
				GuestId:    guest.ID,
				FullName:   comp.FullName,
				AgeClass:   ageClass,
				MenuChoice: comp.MenuChoice,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	h.publishRSVPEvent(c, tenant.ID, guest, status)
	h.notifyCouple(couple, guest, status, input.Message)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"status": status,
		"guest":  guest.FullName,
	})
}

func (h *Handler) publishRSVPEvent(c *fiber.Ctx, coupleId uint, guest model.Guest, status string) {
	if h.Redis == nil {
		return
	}
	payload, err := json.Marshal(fiber.Map{
		"guestId":  guest.ID,
		"fullName": guest.FullName,
		"status":   status,
		"at":       time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := h.Redis.Publish(c.Context(), rsvpChannel(coupleId), payload).Err(); err != nil {
		log.Debug().Err(err).Uint("coupleId", coupleId).Msg("rsvp event publish failed")
	}
}

func (h *Handler) notifyCouple(couple model.Couple, guest model.Guest, status, message string) {
	var account model.Account
	if err := h.DB.First(&account, couple.AccountId).Error; err != nil {
		log.Warn().Err(err).Uint("coupleId", couple.ID).Msg("rsvp notify: account lookup failed")
		return
	}
	base := config.ConfigOr("PUBLIC_BASE_URL", "http://localhost:8002")
	utils.SendRSVPNotification(account.Email, utils.RSVPNotifyData{
		GuestName:    guest.FullName,
		Status:       status,
		Message:      message,
		DashboardUrl: base + "/dashboard/guests",
	}, constants.RSVP_NOTIFY_SUBJECT)
}
