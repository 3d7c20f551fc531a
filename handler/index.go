package handler

import (
	"errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"wedding_manager/constants"
	"wedding_manager/helper"
	"wedding_manager/model"
	"wedding_manager/resolver"
	"wedding_manager/template"
	"wedding_manager/theme"
	"wedding_manager/utils"
)

// Handler carries the constructed dependencies; nothing here reaches for
// package-level singletons.
type Handler struct {
	DB       *gorm.DB
	Resolver *resolver.Resolver
	Theme    *theme.Resolver
	Sync     *template.Syncer
	Fields   *template.FieldMap
	Redis    *redis.Client
	Cld      *cloudinary.Cloudinary
}

func New(db *gorm.DB, res *resolver.Resolver, themes *theme.Resolver, sync *template.Syncer, fields *template.FieldMap, rdb *redis.Client, cld *cloudinary.Cloudinary) *Handler {
	return &Handler{
		DB:       db,
		Resolver: res,
		Theme:    themes,
		Sync:     sync,
		Fields:   fields,
		Redis:    rdb,
		Cld:      cld,
	}
}

// coupleFromToken resolves the authenticated account's couple or writes the
// error response and returns nil.
func (h *Handler) coupleFromToken(c *fiber.Ctx) *model.Couple {
	claim, _ := helper.GetInfoAccountFromToken(c, h.DB)
	if claim.AccountId == 0 {
		utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_INPUT, errors.New("no account behind token"))
		return nil
	}
	couple, _ := c.Locals("couple").(*model.Couple)
	if couple == nil {
		utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPLE_NOT_FOUND, errors.New("account has no wedding site"))
		return nil
	}
	return couple
}
