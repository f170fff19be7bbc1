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

func CreateGenre() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateGenreInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		input.Name = strings.TrimSpace(input.Name)

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		_, isStaff := helper.GetInfoUserFromToken(c)
		if !isStaff {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("permission denied"))
		}

		var existing model.Genre
		if err := database.DB.Where("LOWER(name) = LOWER(?)", input.Name).First(&existing).Error; err == nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Genre already exists", errors.New("name already exists"), "name")
		}

		c.Locals("createGenreInput", input)
		return c.Next()
	}
}

func UpdateGenre(key string) fiber.Handler {
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

		var input model.UpdateGenreInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("genreId", valueKey)
		c.Locals("updateGenreInput", input)
		return c.Next()
	}
}
