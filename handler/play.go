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

func loadActors(db *gorm.DB, ids []uint) ([]model.Actor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var actors []model.Actor
	if err := db.Where("id IN ?", ids).Find(&actors).Error; err != nil {
		return nil, err
	}
	if len(actors) != len(ids) {
		return nil, errors.New("one or more actors do not exist")
	}
	return actors, nil
}

func loadGenres(db *gorm.DB, ids []uint) ([]model.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []model.Genre
	if err := db.Where("id IN ?", ids).Find(&genres).Error; err != nil {
		return nil, err
	}
	if len(genres) != len(ids) {
		return nil, errors.New("one or more genres do not exist")
	}
	return genres, nil
}

// GetPlays lists plays with the title/actors/genres filters. Filters of
// different kinds combine with AND; id lists are membership tests.
func GetPlays(c *fiber.Ctx) error {
	db := database.DB
	limit, page := utils.GetPagination(c)

	title := strings.TrimSpace(c.Query("title", ""))
	actorIds, err := utils.ParseIDList(c.Query("actors", ""))
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "actors must be a comma-separated id list", err, "actors")
	}
	genreIds, err := utils.ParseIDList(c.Query("genres", ""))
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "genres must be a comma-separated id list", err, "genres")
	}

	query := db.Model(&model.Play{})
	if title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	if len(actorIds) > 0 {
		query = query.Where("plays.id IN (?)",
			db.Table("play_actors").Select("play_id").Where("actor_id IN ?", actorIds))
	}
	if len(genreIds) > 0 {
		query = query.Where("plays.id IN (?)",
			db.Table("play_genres").Select("play_id").Where("genre_id IN ?", genreIds))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var plays []model.Play
	if err := utils.ApplyPagination(query, &limit, &page).
		Preload("Actors").
		Preload("Genres").
		Order("id").
		Find(&plays).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	results := make([]model.PlayListResponse, 0, len(plays))
	for _, p := range plays {
		results = append(results, p.ListResponse())
	}

	response := &model.ResponseCustom{
		Results: results,
		Count:   total,
		Limit:   &limit,
		Page:    &page,
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

func GetPlayById(c *fiber.Ctx) error {
	playId := c.Locals("inputId").(int)

	var play model.Play
	if err := database.DB.Preload("Actors").Preload("Genres").First(&play, playId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Play not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, play.DetailResponse())
}

func CreatePlay(c *fiber.Ctx) error {
	input, ok := c.Locals("createPlayInput").(model.CreatePlayInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	db := database.DB

	actors, err := loadActors(db, input.ActorIds)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, err.Error(), err, "actorIds")
	}
	genres, err := loadGenres(db, input.GenreIds)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, err.Error(), err, "genreIds")
	}

	newPlay := new(model.Play)
	copier.Copy(newPlay, &input)
	newPlay.Actors = actors
	newPlay.Genres = genres

	if err := db.Create(newPlay).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Play title already exists", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newPlay.DetailResponse())
}

func UpdatePlay(c *fiber.Ctx) error {
	playId := c.Locals("playId").(int)
	input := c.Locals("updatePlayInput").(model.UpdatePlayInput)
	db := database.DB

	var play model.Play
	if err := db.First(&play, playId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Play not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Title != nil {
		play.Title = *input.Title
	}
	if input.Description != nil {
		play.Description = *input.Description
	}
	if input.Duration != nil {
		play.Duration = input.Duration
	}

	tx := db.Begin()
	if input.ActorIds != nil {
		actors, err := loadActors(db, *input.ActorIds)
		if err != nil {
			tx.Rollback()
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, err.Error(), err, "actorIds")
		}
		if err := tx.Model(&play).Association("Actors").Replace(actors); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	if input.GenreIds != nil {
		genres, err := loadGenres(db, *input.GenreIds)
		if err != nil {
			tx.Rollback()
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, err.Error(), err, "genreIds")
		}
		if err := tx.Model(&play).Association("Genres").Replace(genres); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	if err := tx.Save(&play).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot update play", err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Preload("Actors").Preload("Genres").First(&play, playId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, play.DetailResponse())
}

// UploadPlayImage stores the Cloudinary URL produced by the validate layer.
func UploadPlayImage(c *fiber.Ctx) error {
	playId := c.Locals("playId").(int)
	imageUrl, ok := c.Locals("imageUrl").(string)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var play model.Play
	if err := database.DB.First(&play, playId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Play not found", err)
	}

	play.Image = &imageUrl
	if err := database.DB.Save(&play).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.PlayImageResponse{
		ID:    play.ID,
		Image: play.Image,
	})
}

// DeletePlay removes the play together with its performances and their
// tickets so no ticket is left pointing at a vanished show.
func DeletePlay(c *fiber.Ctx) error {
	playId := c.Locals("inputId").(int)
	db := database.DB

	var play model.Play
	if err := db.First(&play, playId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Play not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	performanceIds := tx.Model(&model.Performance{}).Select("id").Where("play_id = ?", play.ID)
	if err := tx.Where("performance_id IN (?)", performanceIds).Delete(&model.Ticket{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Where("play_id = ?", play.ID).Delete(&model.Performance{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Model(&play).Association("Actors").Clear(); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Model(&play).Association("Genres").Clear(); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&play).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
