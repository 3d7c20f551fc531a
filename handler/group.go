package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wedding_manager/constants"
	"wedding_manager/model"
	"wedding_manager/utils"
)

func (h *Handler) GetGroups(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}

	var groups []model.GuestGroup
	if err := h.DB.Where("couple_id = ?", couple.ID).Order("id").Find(&groups).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, groups)
}

func (h *Handler) CreateGroup(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	input := c.Locals("createGroupInput").(*model.CreateGroupInput)

	group := model.GuestGroup{
		CoupleId:     couple.ID,
		Name:         input.Name,
		TargetAmount: input.TargetAmount,
	}
	if err := h.DB.Create(&group).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, group)
}

func (h *Handler) DeleteGroup(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	groupId := c.Locals("inputId").(int)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Guest{}).
			Where("group_id = ? AND couple_id = ?", groupId, couple.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("couple_id = ?", couple.ID).Delete(&model.GuestGroup{}, groupId).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": groupId})
}

// RecordContribution adds a received amount to a group's running total. The
// increment runs in SQL, not read-modify-write, so concurrent contributions
// cannot lose updates.
func (h *Handler) RecordContribution(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	groupId := c.Locals("inputId").(int)
	input := c.Locals("contributionInput").(*model.ContributionInput)

	res := h.DB.Model(&model.GuestGroup{}).
		Where("id = ? AND couple_id = ?", groupId, couple.ID).
		Update("current_amount", gorm.Expr("current_amount + ?", input.Amount))
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GROUP_NOT_FOUND, nil)
	}

	var group model.GuestGroup
	if err := h.DB.First(&group, groupId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, group)
}
