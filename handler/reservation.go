package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"theatre_service/constants"
	"theatre_service/database"
	"theatre_service/helper"
	"theatre_service/model"
	"theatre_service/utils"
)

// CreateReservation creates a reservation and all its tickets in a single
// transaction. Any invalid or already-taken seat rolls everything back, so
// a reservation is never half-booked. The composite unique index on
// (performance_id, row, seat) rejects the loser of a concurrent race even
// when both requests pass the pre-checks.
func CreateReservation(c *fiber.Ctx) error {
	input, ok := c.Locals("createReservationInput").(model.CreateReservationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.AUTH_REQUIRED, errors.New("no user"))
	}

	db := database.DB
	tx := db.Begin()

	reservation := model.Reservation{
		PublicCode: helper.ReservationPublicCode(),
		UserId:     claim.UserId,
	}
	if err := tx.Create(&reservation).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	emailLines := make([]utils.ReservationTicketLine, 0, len(input.Tickets))
	for _, req := range input.Tickets {
		var performance model.Performance
		if err := tx.Preload("TheatreHall").Preload("Play").First(&performance, req.PerformanceId).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Performance does not exist", err, "performanceId")
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		if err := helper.ValidateSeat(req.Row, req.Seat, performance.TheatreHall); err != nil {
			tx.Rollback()
			var seatErr *helper.SeatError
			key := "tickets"
			if errors.As(err, &seatErr) {
				key = seatErr.Field
			}
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, err.Error(), err, key)
		}

		// pre-check for a friendlier message; the unique index is the
		// real guarantee
		var taken int64
		if err := tx.Model(&model.Ticket{}).
			Where(&model.Ticket{PerformanceId: req.PerformanceId, Row: req.Row, Seat: req.Seat}).
			Count(&taken).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if taken > 0 {
			tx.Rollback()
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.SEAT_ALREADY_TAKEN, errors.New("seat already taken"), "tickets")
		}

		ticket := model.Ticket{
			Row:           req.Row,
			Seat:          req.Seat,
			PerformanceId: req.PerformanceId,
			ReservationId: reservation.ID,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.SEAT_ALREADY_TAKEN, err, "tickets")
		}

		emailLines = append(emailLines, utils.ReservationTicketLine{
			Play:     performance.Play.Title,
			ShowTime: performance.ShowTime,
			Row:      req.Row,
			Seat:     req.Seat,
		})
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Preload("Tickets").First(&reservation, reservation.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	utils.SendReservationConfirmation(claim.Email, utils.ReservationConfirmationData{
		PublicCode: reservation.PublicCode,
		Tickets:    emailLines,
	})

	return utils.SuccessResponse(c, fiber.StatusCreated, reservation)
}

// GetReservations lists only the caller's reservations.
func GetReservations(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.AUTH_REQUIRED, errors.New("no user"))
	}

	db := database.DB
	limit, page := utils.GetPagination(c)

	query := db.Model(&model.Reservation{}).Where("user_id = ?", claim.UserId)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var reservations []model.Reservation
	if err := utils.ApplyPagination(query, &limit, &page).
		Preload("Tickets.Performance.Play").
		Order("id DESC").
		Find(&reservations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	results := make([]model.ReservationListResponse, 0, len(reservations))
	for _, r := range reservations {
		tickets := make([]model.TicketListResponse, 0, len(r.Tickets))
		for _, t := range r.Tickets {
			tickets = append(tickets, model.TicketListResponse{
				Row:         t.Row,
				Seat:        t.Seat,
				Performance: t.Performance.Play.Title,
			})
		}
		results = append(results, model.ReservationListResponse{
			ID:         r.ID,
			PublicCode: r.PublicCode,
			CreatedAt:  r.CreatedAt,
			Tickets:    tickets,
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

// GetReservationById returns the caller's reservation; anyone else's id is
// a plain 404 so reservation ids do not leak across users.
func GetReservationById(c *fiber.Ctx) error {
	reservationId := c.Locals("inputId").(int)

	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.AUTH_REQUIRED, errors.New("no user"))
	}

	db := database.DB
	var reservation model.Reservation
	if err := db.
		Where("user_id = ?", claim.UserId).
		Preload("Tickets.Performance.Play").
		Preload("Tickets.Performance.TheatreHall").
		First(&reservation, reservationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Reservation not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tickets := make([]model.TicketDetailResponse, 0, len(reservation.Tickets))
	for _, t := range reservation.Tickets {
		available, err := ticketsAvailable(db, t.Performance)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		tickets = append(tickets, model.TicketDetailResponse{
			Row:         t.Row,
			Seat:        t.Seat,
			Performance: t.Performance.ListResponse(available),
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ReservationDetailResponse{
		ID:         reservation.ID,
		PublicCode: reservation.PublicCode,
		CreatedAt:  reservation.CreatedAt,
		Tickets:    tickets,
	})
}

// DeleteReservation removes the caller's reservation together with its
// tickets, freeing the seats. Other users' reservations are 404.
func DeleteReservation(c *fiber.Ctx) error {
	reservationId := c.Locals("inputId").(int)

	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.AUTH_REQUIRED, errors.New("no user"))
	}

	db := database.DB
	var reservation model.Reservation
	if err := db.Where("user_id = ?", claim.UserId).First(&reservation, reservationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Reservation not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	if err := tx.Where("reservation_id = ?", reservation.ID).Delete(&model.Ticket{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&reservation).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ReservationUpdateNotAllowed answers PUT/PATCH on a reservation:
// reservations are immutable once created.
func ReservationUpdateNotAllowed(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, fiber.StatusMethodNotAllowed, constants.RESERVATION_LOCKED, errors.New(constants.METHOD_NOT_ALLOWED))
}
