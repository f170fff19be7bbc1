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

func GetActors(c *fiber.Ctx) error {
	var actors []model.Actor
	var total int64
	db := database.DB
	search := strings.TrimSpace(c.Query("search", ""))
	limit, page := utils.GetPagination(c)

	query := db.Model(&model.Actor{})
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := utils.ApplyPagination(query, &limit, &page).
		Order("id").
		Find(&actors).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	results := make([]model.ActorResponse, 0, len(actors))
	for _, a := range actors {
		results = append(results, a.Response())
	}

	response := &model.ResponseCustom{
		Results: results,
		Count:   total,
		Limit:   &limit,
		Page:    &page,
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

func GetActorById(c *fiber.Ctx) error {
	actorId := c.Locals("inputId").(int)

	var actor model.Actor
	if err := database.DB.First(&actor, actorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Actor not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, actor.Response())
}

func CreateActor(c *fiber.Ctx) error {
	input, ok := c.Locals("createActorInput").(model.CreateActorInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	newActor := new(model.Actor)
	copier.Copy(newActor, &input)

	if err := database.DB.Create(newActor).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Actor already exists", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newActor.Response())
}

func UpdateActor(c *fiber.Ctx) error {
	actorId := c.Locals("actorId").(int)
	input := c.Locals("updateActorInput").(model.UpdateActorInput)

	var actor model.Actor
	if err := database.DB.First(&actor, actorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Actor not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.FirstName != nil {
		actor.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		actor.LastName = strings.TrimSpace(*input.LastName)
	}

	var existing model.Actor
	if err := database.DB.
		Where("LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?) AND id != ?", actor.FirstName, actor.LastName, actor.ID).
		First(&existing).Error; err == nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Actor already exists", nil, "firstName")
	}

	if err := database.DB.Save(&actor).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot update actor", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, actor.Response())
}

func DeleteActor(c *fiber.Ctx) error {
	actorId := c.Locals("inputId").(int)
	db := database.DB

	var actor model.Actor
	if err := db.First(&actor, actorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Actor not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	if err := tx.Model(&actor).Association("Plays").Clear(); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&actor).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
