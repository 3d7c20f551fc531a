package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"wedding_manager/config"
	"wedding_manager/constants"
	"wedding_manager/model"
	"wedding_manager/utils"
)

func (h *Handler) GetGuests(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}

	filterInput := new(model.FilterGuest)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	baseQuery := h.DB.Model(&model.Guest{}).Where("couple_id = ?", couple.ID)
	if filterInput.Status != "" {
		baseQuery = baseQuery.Where("status = ?", filterInput.Status)
	}
	if filterInput.GroupId != nil {
		baseQuery = baseQuery.Where("group_id = ?", *filterInput.GroupId)
	}
	if filterInput.SearchKey != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(filterInput.SearchKey)) + "%"
		baseQuery = baseQuery.Where(
			h.DB.Where("LOWER(full_name) LIKE ?", search).
				Or("LOWER(email) LIKE ?", search),
		)
	}

	var totalCount int64
	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var guests model.Guests
	err := utils.ApplyPagination(baseQuery, filterInput.Limit, filterInput.Page).
		Order("id DESC").
		Preload("Companions").
		Preload("Group").
		Find(&guests).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       guests,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func (h *Handler) CreateGuest(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	input := c.Locals("createGuestInput").(*model.CreateGuestInput)

	if input.GroupId != nil {
		var count int64
		h.DB.Model(&model.GuestGroup{}).
			Where("id = ? AND couple_id = ?", *input.GroupId, couple.ID).
			Count(&count)
		if count == 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.GROUP_NOT_FOUND, errors.New("group does not belong to couple"), "groupId")
		}
	}

	guest := model.Guest{
		CoupleId: couple.ID,
		GroupId:  input.GroupId,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Code:     uuid.NewString(),
		Status:   constants.RSVP_PENDING,
		AgeClass: constants.AGE_ADULT,
	}
	if input.AgeClass != "" {
		guest.AgeClass = input.AgeClass
	}
	for _, comp := range input.Companions {
		ageClass := comp.AgeClass
		if ageClass == "" {
			ageClass = constants.AGE_ADULT
		}
		guest.Companions = append(guest.Companions, model.Companion{
			FullName:   comp.FullName,
			AgeClass:   ageClass,
			MenuChoice: comp.MenuChoice,
		})
	}

	if err := h.DB.Create(&guest).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if guest.GroupId != nil {
		h.refreshGroupMemberCount(*guest.GroupId)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, guest)
}

func (h *Handler) EditGuest(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	guestId := c.Locals("inputId").(int)
	input := c.Locals("editGuestInput").(*model.EditGuestInput)

	var guest model.Guest
	if err := h.DB.Where("id = ? AND couple_id = ?", guestId, couple.ID).First(&guest).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GUEST_NOT_FOUND, err)
	}

	oldGroup := guest.GroupId
	if err := copier.CopyWithOption(&guest, input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := h.DB.Save(&guest).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if oldGroup != nil {
		h.refreshGroupMemberCount(*oldGroup)
	}
	if guest.GroupId != nil {
		h.refreshGroupMemberCount(*guest.GroupId)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, guest)
}

func (h *Handler) DeleteGuests(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	input := c.Locals("deleteIds").(model.ArrayId)

	var groupIds []uint
	h.DB.Model(&model.Guest{}).
		Where("id IN ? AND couple_id = ? AND group_id IS NOT NULL", input.IDs, couple.ID).
		Distinct().
		Pluck("group_id", &groupIds)

	res := h.DB.Where("couple_id = ?", couple.ID).Delete(&model.Guest{}, input.IDs)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, res.Error)
	}
	for _, id := range groupIds {
		h.refreshGroupMemberCount(id)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": res.RowsAffected})
}

// InviteQR renders the printable QR card payload: the public site URL with
// the guest's invitation code.
func (h *Handler) InviteQR(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	guestId := c.Locals("inputId").(int)

	var guest model.Guest
	if err := h.DB.Where("id = ? AND couple_id = ?", guestId, couple.ID).First(&guest).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GUEST_NOT_FOUND, err)
	}

	base := config.ConfigOr("PUBLIC_BASE_URL", "http://localhost:8002")
	content := fmt.Sprintf("%s/%s?code=%s", base, couple.Slug, guest.Code)

	png, err := utils.GenerateQRCode(content, 512)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

func (h *Handler) refreshGroupMemberCount(groupId uint) {
	var count int64
	h.DB.Model(&model.Guest{}).Where("group_id = ?", groupId).Count(&count)
	h.DB.Model(&model.GuestGroup{}).Where("id = ?", groupId).
		Update("member_count", count)
}
