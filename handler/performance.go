package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"theatre_service/constants"
	"theatre_service/database"
	"theatre_service/model"
	"theatre_service/utils"
)

func ticketsAvailable(db *gorm.DB, p model.Performance) (int64, error) {
	var sold int64
	if err := db.Model(&model.Ticket{}).
		Where("performance_id = ?", p.ID).
		Count(&sold).Error; err != nil {
		return 0, err
	}
	return int64(p.TheatreHall.Capacity()) - sold, nil
}

// GetPerformances lists performances, most recent show time first, each
// row carrying the seat availability computed at read time.
func GetPerformances(c *fiber.Ctx) error {
	db := database.DB
	limit, page := utils.GetPagination(c)

	query := db.Model(&model.Performance{})

	if date := strings.TrimSpace(c.Query("date", "")); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD", err, "date")
		}
		query = query.Where("show_time >= ? AND show_time < ?", day, day.AddDate(0, 0, 1))
	}
	if playStr := strings.TrimSpace(c.Query("play", "")); playStr != "" {
		playId, err := strconv.Atoi(playStr)
		if err != nil || playId <= 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "play must be an id", err, "play")
		}
		query = query.Where("play_id = ?", playId)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var performances []model.Performance
	if err := utils.ApplyPagination(query, &limit, &page).
		Preload("Play").
		Preload("TheatreHall").
		Order("show_time DESC").
		Find(&performances).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	results := make([]model.PerformanceListResponse, 0, len(performances))
	for _, p := range performances {
		available, err := ticketsAvailable(db, p)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		results = append(results, p.ListResponse(available))
	}

	response := &model.ResponseCustom{
		Results: results,
		Count:   total,
		Limit:   &limit,
		Page:    &page,
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

func GetPerformanceById(c *fiber.Ctx) error {
	performanceId := c.Locals("inputId").(int)

	var performance model.Performance
	if err := database.DB.
		Preload("Play.Actors").
		Preload("Play.Genres").
		Preload("TheatreHall").
		First(&performance, performanceId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Performance not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, performance.DetailResponse())
}

func CreatePerformance(c *fiber.Ctx) error {
	input, ok := c.Locals("createPerformanceInput").(model.CreatePerformanceInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	newPerformance := model.Performance{
		PlayId:        input.PlayId,
		TheatreHallId: input.TheatreHallId,
		ShowTime:      input.ShowTime,
	}

	if err := database.DB.Create(&newPerformance).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Performance already scheduled for this play, hall and time", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newPerformance)
}

func UpdatePerformance(c *fiber.Ctx) error {
	performanceId := c.Locals("performanceId").(int)
	input := c.Locals("updatePerformanceInput").(model.UpdatePerformanceInput)

	var performance model.Performance
	if err := database.DB.First(&performance, performanceId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Performance not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.PlayId != nil {
		performance.PlayId = *input.PlayId
	}
	if input.TheatreHallId != nil {
		performance.TheatreHallId = *input.TheatreHallId
	}
	if input.ShowTime != nil {
		performance.ShowTime = *input.ShowTime
	}

	if err := database.DB.Save(&performance).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot update performance", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, performance)
}

// DeletePerformance removes the performance and its tickets in one
// transaction.
func DeletePerformance(c *fiber.Ctx) error {
	performanceId := c.Locals("inputId").(int)
	db := database.DB

	var performance model.Performance
	if err := db.First(&performance, performanceId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Performance not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	if err := tx.Where("performance_id = ?", performance.ID).Delete(&model.Ticket{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&performance).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
