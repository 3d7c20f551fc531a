package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"wedding_manager/constants"
	"wedding_manager/model"
	"wedding_manager/theme"
	"wedding_manager/utils"
)

func (h *Handler) GetMyCouple(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}

	if err := h.DB.Preload("Groups").First(couple, couple.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"couple": couple,
		"theme":  h.Theme.Of(couple),
		"fields": h.Sync.Fields(couple),
	})
}

func (h *Handler) EditCouple(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	input := c.Locals("editCoupleInput").(*model.EditCoupleInput)

	// Pointer fields left nil are not touched; copier skips them.
	if err := copier.CopyWithOption(couple, input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if input.WeddingDate != nil {
		d, err := time.Parse("2006-01-02", *input.WeddingDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Wedding date must be YYYY-MM-DD", err, "weddingDate")
		}
		couple.WeddingDate = d
	}
	if input.RsvpDeadline != nil {
		if *input.RsvpDeadline == "" {
			couple.RsvpDeadline = nil
		} else {
			d, err := time.Parse("2006-01-02", *input.RsvpDeadline)
			if err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Deadline must be YYYY-MM-DD", err, "rsvpDeadline")
			}
			couple.RsvpDeadline = &d
		}
	}

	if err := h.DB.Save(couple).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	h.Resolver.Invalidate(c.Context(), couple.Slug)

	return utils.SuccessResponse(c, fiber.StatusOK, couple)
}

func (h *Handler) SetPublished(published bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		couple := h.coupleFromToken(c)
		if couple == nil {
			return nil
		}

		if err := h.DB.Model(couple).Update("is_published", published).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		h.Resolver.Invalidate(c.Context(), couple.Slug)

		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"slug":        couple.Slug,
			"isPublished": published,
		})
	}
}

func (h *Handler) SetTheme(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	input := c.Locals("setThemeInput").(*model.SetThemeInput)

	t, err := h.Theme.Set(c.Context(), couple.ID, input.ThemeId)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	h.Resolver.Invalidate(c.Context(), couple.Slug)

	return utils.SuccessResponse(c, fiber.StatusOK, t)
}

func (h *Handler) GetThemes(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"themes":  theme.Catalog(),
		"current": h.Theme.Of(couple).Name,
	})
}

func (h *Handler) ApplyTemplateEdit(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	input := c.Locals("templateEditInput").(*model.TemplateEditInput)

	if err := h.Sync.ApplyEdit(c.Context(), couple.ID, input.SectionId, input.FieldId, input.Value); err != nil {
		return utils.AppErrorResponse(c, err)
	}
	h.Resolver.Invalidate(c.Context(), couple.Slug)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"sectionId": input.SectionId,
		"fieldId":   input.FieldId,
		"persisted": h.Fields.IsMappable(input.SectionId, input.FieldId),
	})
}
