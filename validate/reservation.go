package validate

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"theatre_service/constants"
	"theatre_service/model"
	"theatre_service/utils"
)

func CreateReservation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateReservationInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		// reject duplicates inside a single request before touching the db
		seen := make(map[string]bool, len(input.Tickets))
		for _, t := range input.Tickets {
			key := fmt.Sprintf("%d:%d:%d", t.PerformanceId, t.Row, t.Seat)
			if seen[key] {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.DUPLICATE_SEAT_SENT, errors.New("duplicate seat in request"), "tickets")
			}
			seen[key] = true
		}

		c.Locals("createReservationInput", input)
		return c.Next()
	}
}
