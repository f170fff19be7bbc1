package model

import "time"

type Performance struct {
	DTO
	PlayId        uint      `gorm:"not null;uniqueIndex:idx_performance_slot" json:"playId"`
	TheatreHallId uint      `gorm:"not null;uniqueIndex:idx_performance_slot" json:"theatreHallId"`
	ShowTime      time.Time `gorm:"not null;uniqueIndex:idx_performance_slot" validate:"required" json:"showTime"`

	Play        Play        `gorm:"foreignKey:PlayId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"play"`
	TheatreHall TheatreHall `gorm:"foreignKey:TheatreHallId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"theatreHall"`
	Tickets     []Ticket    `gorm:"foreignKey:PerformanceId;constraint:OnDelete:CASCADE" json:"-"`
}

type CreatePerformanceInput struct {
	PlayId        uint      `json:"playId" validate:"required,gt=0"`
	TheatreHallId uint      `json:"theatreHallId" validate:"required,gt=0"`
	ShowTime      time.Time `json:"showTime" validate:"required"`
}

type UpdatePerformanceInput struct {
	PlayId        *uint      `json:"playId" validate:"omitempty,gt=0"`
	TheatreHallId *uint      `json:"theatreHallId" validate:"omitempty,gt=0"`
	ShowTime      *time.Time `json:"showTime"`
}

// PerformanceListResponse flattens the play and hall to names and carries
// the read-time seat availability.
type PerformanceListResponse struct {
	ID               uint      `json:"id"`
	Play             string    `json:"play"`
	TheatreHall      string    `json:"theatreHall"`
	ShowTime         time.Time `json:"showTime"`
	TicketsAvailable int64     `json:"ticketsAvailable"`
	PlayImage        *string   `json:"playImage"`
}

type PerformanceDetailResponse struct {
	ID          uint                `json:"id"`
	Play        PlayListResponse    `json:"play"`
	TheatreHall TheatreHallResponse `json:"theatreHall"`
	ShowTime    time.Time           `json:"showTime"`
}

func (p Performance) ListResponse(ticketsAvailable int64) PerformanceListResponse {
	return PerformanceListResponse{
		ID:               p.ID,
		Play:             p.Play.Title,
		TheatreHall:      p.TheatreHall.Name,
		ShowTime:         p.ShowTime,
		TicketsAvailable: ticketsAvailable,
		PlayImage:        p.Play.Image,
	}
}

func (p Performance) DetailResponse() PerformanceDetailResponse {
	return PerformanceDetailResponse{
		ID:          p.ID,
		Play:        p.Play.ListResponse(),
		TheatreHall: p.TheatreHall.Response(),
		ShowTime:    p.ShowTime,
	}
}
