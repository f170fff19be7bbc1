package validate

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"theatre_service/constants"
	"theatre_service/database"
	"theatre_service/helper"
	"theatre_service/model"
	"theatre_service/utils"
)

func CreateActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateActorInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		input.FirstName = strings.TrimSpace(input.FirstName)
		input.LastName = strings.TrimSpace(input.LastName)

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		_, isStaff := helper.GetInfoUserFromToken(c)
		if !isStaff {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("permission denied"))
		}

		var existing model.Actor
		if err := database.DB.
			Where("LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)", input.FirstName, input.LastName).
			First(&existing).Error; err == nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Actor already exists", errors.New("name already exists"), "firstName")
		}

		c.Locals("createActorInput", input)
		return c.Next()
	}
}

func UpdateActor(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil || valueKey <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		_, isStaff := helper.GetInfoUserFromToken(c)
		if !isStaff {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("permission denied"))
		}

		var input model.UpdateActorInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("actorId", valueKey)
		c.Locals("updateActorInput", input)
		return c.Next()
	}
}
