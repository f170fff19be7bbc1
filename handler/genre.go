package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"theatre_service/constants"
	"theatre_service/database"
	"theatre_service/model"
	"theatre_service/utils"
)

func GetGenres(c *fiber.Ctx) error {
	var genres []model.Genre
	var total int64
	db := database.DB
	name := strings.TrimSpace(c.Query("name", ""))
	limit, page := utils.GetPagination(c)

	query := db.Model(&model.Genre{})
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := utils.ApplyPagination(query, &limit, &page).
		Order("id").
		Find(&genres).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Results: genres,
		Count:   total,
		Limit:   &limit,
		Page:    &page,
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

func GetGenreById(c *fiber.Ctx) error {
	genreId := c.Locals("inputId").(int)

	var genre model.Genre
	if err := database.DB.First(&genre, genreId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Genre not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, genre)
}

func CreateGenre(c *fiber.Ctx) error {
	input, ok := c.Locals("createGenreInput").(model.CreateGenreInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	newGenre := new(model.Genre)
	copier.Copy(newGenre, &input)

	if err := database.DB.Create(newGenre).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Genre already exists", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newGenre)
}

func UpdateGenre(c *fiber.Ctx) error {
	genreId := c.Locals("genreId").(int)
	input := c.Locals("updateGenreInput").(model.UpdateGenreInput)

	var genre model.Genre
	if err := database.DB.First(&genre, genreId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Genre not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed != genre.Name {
			var existing model.Genre
			if err := database.DB.
				Where("LOWER(name) = LOWER(?) AND id != ?", trimmed, genreId).
				First(&existing).Error; err == nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Genre already exists", nil, "name")
			}
			genre.Name = trimmed
		}
	}

	if err := database.DB.Save(&genre).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot update genre", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, genre)
}

func DeleteGenre(c *fiber.Ctx) error {
	genreId := c.Locals("inputId").(int)
	db := database.DB

	var genre model.Genre
	if err := db.First(&genre, genreId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Genre not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	if err := tx.Model(&genre).Association("Plays").Clear(); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&genre).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
