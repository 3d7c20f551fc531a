package validate

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"wedding_manager/constants"
	"wedding_manager/model"
	"wedding_manager/utils"
)

func CreateGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.CreateGuestInput)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("createGuestInput", input)
		return c.Next()
	}
}

func EditGuest(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guestId, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("params invalid"))
		}
		c.Locals("inputId", guestId)

		input := new(model.EditGuestInput)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("editGuestInput", input)
		return c.Next()
	}
}

func CreateGroup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.CreateGroupInput)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("createGroupInput", input)
		return c.Next()
	}
}

func Contribution() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.ContributionInput)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.CONTRIBUTION_NEGATIVE, err, "amount")
		}

		c.Locals("contributionInput", input)
		return c.Next()
	}
}

func SubmitRSVP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.SubmitRSVPInput)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("submitRSVPInput", input)
		return c.Next()
	}
}
