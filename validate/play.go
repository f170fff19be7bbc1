package validate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"theatre_service/constants"
	"theatre_service/database"
	"theatre_service/helper"
	"theatre_service/model"
	"theatre_service/utils"
)

func CreatePlay() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePlayInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		input.Title = strings.TrimSpace(input.Title)

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		_, isStaff := helper.GetInfoUserFromToken(c)
		if !isStaff {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("permission denied"))
		}

		var existing model.Play
		if err := database.DB.Where("LOWER(title) = LOWER(?)", input.Title).First(&existing).Error; err == nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Play title already exists", errors.New("title already exists"), "title")
		}

		c.Locals("createPlayInput", input)
		return c.Next()
	}
}

func UpdatePlay(key string) fiber.Handler {
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

		var input model.UpdatePlayInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.Title != nil {
			trimmed := strings.TrimSpace(*input.Title)
			if trimmed == "" {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Title cannot be blank", nil, "title")
			}
			var existing model.Play
			if err := database.DB.
				Where("LOWER(title) = LOWER(?) AND id != ?", trimmed, valueKey).
				First(&existing).Error; err == nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Play title already exists", nil, "title")
			}
			input.Title = &trimmed
		}

		c.Locals("playId", valueKey)
		c.Locals("updatePlayInput", input)
		return c.Next()
	}
}

// UploadPlayImage accepts the multipart image, pushes it to Cloudinary
// under a slugified-title public id and hands the resulting URL on.
func UploadPlayImage(key string) fiber.Handler {
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

		var play model.Play
		if err := database.DB.First(&play, valueKey).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Play not found", err)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		file, err := c.FormFile("image")
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Image file is required", err, "image")
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Unsupported image format (PNG, JPG, JPEG only)", fmt.Errorf("invalid file format"), "image")
		}

		imageUrl, err := helper.UploadPlayImage(c.Context(), file, helper.PlayImagePublicID(play.Title))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Image upload failed", err)
		}

		c.Locals("playId", valueKey)
		c.Locals("imageUrl", imageUrl)
		return c.Next()
	}
}
