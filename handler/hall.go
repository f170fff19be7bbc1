package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"theatre_service/constants"
	"theatre_service/database"
	"theatre_service/model"
	"theatre_service/utils"
)

// GetTheatreHalls lists halls; capacity filters halls able to seat at
// least the requested number.
func GetTheatreHalls(c *fiber.Ctx) error {
	db := database.DB
	limit, page := utils.GetPagination(c)

	name := strings.TrimSpace(c.Query("name", ""))
	capacityStr := strings.TrimSpace(c.Query("capacity", ""))

	query := db.Model(&model.TheatreHall{})
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if capacityStr != "" {
		capacity, err := strconv.Atoi(capacityStr)
		if err != nil || capacity < 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "capacity must be a number", err, "capacity")
		}
		query = query.Where("seats_in_row * rows >= ?", capacity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var halls []model.TheatreHall
	if err := utils.ApplyPagination(query, &limit, &page).
		Order("id").
		Find(&halls).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	results := make([]model.TheatreHallListResponse, 0, len(halls))
	for _, h := range halls {
		results = append(results, model.TheatreHallListResponse{
			ID:       h.ID,
			Name:     h.Name,
			Capacity: h.Capacity(),
		})
	}

	response := &model.ResponseCustom{
		Results: results,
		Count:   total,
		Limit:   &limit,
		Page:    &page,
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

func GetTheatreHallById(c *fiber.Ctx) error {
	hallId := c.Locals("inputId").(int)

	var hall model.TheatreHall
	if err := database.DB.First(&hall, hallId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Theatre hall not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, hall.Response())
}

func CreateTheatreHall(c *fiber.Ctx) error {
	input, ok := c.Locals("createTheatreHallInput").(model.CreateTheatreHallInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	newHall := new(model.TheatreHall)
	copier.Copy(newHall, &input)

	if err := database.DB.Create(newHall).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Theatre hall already exists", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newHall.Response())
}

func UpdateTheatreHall(c *fiber.Ctx) error {
	hallId := c.Locals("theatreHallId").(int)
	input := c.Locals("updateTheatreHallInput").(model.UpdateTheatreHallInput)

	var hall model.TheatreHall
	if err := database.DB.First(&hall, hallId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Theatre hall not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed != hall.Name {
			var existing model.TheatreHall
			if err := database.DB.
				Where("LOWER(name) = LOWER(?) AND id != ?", trimmed, hallId).
				First(&existing).Error; err == nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Theatre hall already exists", nil, "name")
			}
			hall.Name = trimmed
		}
	}
	if input.Rows != nil {
		hall.Rows = *input.Rows
	}
	if input.SeatsInRow != nil {
		hall.SeatsInRow = *input.SeatsInRow
	}

	if err := database.DB.Save(&hall).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot update theatre hall", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, hall.Response())
}

// DeleteTheatreHall removes the hall and cascades to its performances and
// their tickets.
func DeleteTheatreHall(c *fiber.Ctx) error {
	hallId := c.Locals("inputId").(int)
	db := database.DB

	var hall model.TheatreHall
	if err := db.First(&hall, hallId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Theatre hall not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	performanceIds := tx.Model(&model.Performance{}).Select("id").Where("theatre_hall_id = ?", hall.ID)
	if err := tx.Where("performance_id IN (?)", performanceIds).Delete(&model.Ticket{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Where("theatre_hall_id = ?", hall.ID).Delete(&model.Performance{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&hall).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
