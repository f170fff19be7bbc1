package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"theatre_service/handler"
	"theatre_service/middleware"
	"theatre_service/validate"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")
	v1.Use(middleware.RateLimit())

	user := v1.Group("/user")
	user.Post("/register", validate.Register(), handler.Register)
	user.Post("/login", handler.Login)
	user.Post("/refresh-token", validate.RefreshToken(), handler.RefreshToken)
	user.Get("/me", middleware.Protected(), handler.Me)

	actor := v1.Group("/actors")
	actor.Get("/", middleware.Protected(), handler.GetActors)
	actor.Get("/:actorId", middleware.Protected(), validate.GetById("actorId"), handler.GetActorById)
	actor.Post("/", middleware.Protected(), validate.CreateActor(), handler.CreateActor)
	actor.Put("/:actorId", middleware.Protected(), validate.UpdateActor("actorId"), handler.UpdateActor)
	actor.Delete("/:actorId", middleware.Protected(), validate.DeleteById("actorId"), handler.DeleteActor)

	genre := v1.Group("/genres")
	genre.Get("/", middleware.Protected(), handler.GetGenres)
	genre.Get("/:genreId", middleware.Protected(), validate.GetById("genreId"), handler.GetGenreById)
	genre.Post("/", middleware.Protected(), validate.CreateGenre(), handler.CreateGenre)
	genre.Put("/:genreId", middleware.Protected(), validate.UpdateGenre("genreId"), handler.UpdateGenre)
	genre.Delete("/:genreId", middleware.Protected(), validate.DeleteById("genreId"), handler.DeleteGenre)

	play := v1.Group("/plays")
	play.Get("/", middleware.Protected(), handler.GetPlays)
	play.Get("/:playId", middleware.Protected(), validate.GetById("playId"), handler.GetPlayById)
	play.Post("/", middleware.Protected(), validate.CreatePlay(), handler.CreatePlay)
	play.Post("/:playId/upload-image", middleware.Protected(), validate.UploadPlayImage("playId"), handler.UploadPlayImage)
	play.Put("/:playId", middleware.Protected(), validate.UpdatePlay("playId"), handler.UpdatePlay)
	play.Delete("/:playId", middleware.Protected(), validate.DeleteById("playId"), handler.DeletePlay)

	hall := v1.Group("/theatre_halls")
	hall.Get("/", middleware.Protected(), handler.GetTheatreHalls)
	hall.Get("/:theatreHallId", middleware.Protected(), validate.GetById("theatreHallId"), handler.GetTheatreHallById)
	hall.Post("/", middleware.Protected(), validate.CreateTheatreHall(), handler.CreateTheatreHall)
	hall.Put("/:theatreHallId", middleware.Protected(), validate.UpdateTheatreHall("theatreHallId"), handler.UpdateTheatreHall)
	hall.Delete("/:theatreHallId", middleware.Protected(), validate.DeleteById("theatreHallId"), handler.DeleteTheatreHall)

	performance := v1.Group("/performances")
	performance.Get("/", middleware.Protected(), handler.GetPerformances)
	performance.Get("/:performanceId", middleware.Protected(), validate.GetById("performanceId"), handler.GetPerformanceById)
	performance.Post("/", middleware.Protected(), validate.CreatePerformance(), handler.CreatePerformance)
	performance.Put("/:performanceId", middleware.Protected(), validate.UpdatePerformance("performanceId"), handler.UpdatePerformance)
	performance.Delete("/:performanceId", middleware.Protected(), validate.DeleteById("performanceId"), handler.DeletePerformance)

	reservation := v1.Group("/reservation")
	reservation.Get("/", middleware.Protected(), handler.GetReservations)
	reservation.Get("/:reservationId", middleware.Protected(), validate.GetById("reservationId"), handler.GetReservationById)
	reservation.Post("/", middleware.Protected(), validate.CreateReservation(), handler.CreateReservation)
	// reservations are immutable: no update, full stop
	reservation.Put("/:reservationId", middleware.Protected(), handler.ReservationUpdateNotAllowed)
	reservation.Patch("/:reservationId", middleware.Protected(), handler.ReservationUpdateNotAllowed)
	reservation.Delete("/:reservationId", middleware.Protected(), validate.GetById("reservationId"), handler.DeleteReservation)
}
