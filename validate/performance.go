package validate

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"theatre_service/constants"
	"theatre_service/database"
	"theatre_service/helper"
	"theatre_service/model"
	"theatre_service/utils"
)

func CreatePerformance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePerformanceInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		_, isStaff := helper.GetInfoUserFromToken(c)
		if !isStaff {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("permission denied"))
		}

		var play model.Play
		if err := database.DB.First(&play, input.PlayId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Play does not exist", err, "playId")
		}
		var hall model.TheatreHall
		if err := database.DB.First(&hall, input.TheatreHallId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Theatre hall does not exist", err, "theatreHallId")
		}

		var existing model.Performance
		if err := database.DB.
			Where(&model.Performance{PlayId: input.PlayId, TheatreHallId: input.TheatreHallId, ShowTime: input.ShowTime}).
			First(&existing).Error; err == nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Performance already scheduled for this play, hall and time", nil, "showTime")
		}

		c.Locals("createPerformanceInput", input)
		return c.Next()
	}
}

func UpdatePerformance(key string) fiber.Handler {
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

		var input model.UpdatePerformanceInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.PlayId != nil {
			var play model.Play
			if err := database.DB.First(&play, *input.PlayId).Error; err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Play does not exist", err, "playId")
			}
		}
		if input.TheatreHallId != nil {
			var hall model.TheatreHall
			if err := database.DB.First(&hall, *input.TheatreHallId).Error; err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Theatre hall does not exist", err, "theatreHallId")
			}
		}

		c.Locals("performanceId", valueKey)
		c.Locals("updatePerformanceInput", input)
		return c.Next()
	}
}
