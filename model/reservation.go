package model

import "time"

type Reservation struct {
	DTO
	PublicCode string `gorm:"size:20;uniqueIndex" json:"publicCode"`
	UserId     uint   `gorm:"not null;index" json:"userId"`

	User    User     `gorm:"foreignKey:UserId" json:"-"`
	Tickets []Ticket `gorm:"foreignKey:ReservationId;constraint:OnDelete:CASCADE" json:"tickets"`
}

// Ticket is a single seat claim. The composite unique index on
// (performance_id, row, seat) is the serialization point for two
// reservations racing for the same seat.
type Ticket struct {
	DTO
	Row           int  `gorm:"not null;uniqueIndex:idx_ticket_seat" json:"row"`
	Seat          int  `gorm:"not null;uniqueIndex:idx_ticket_seat" json:"seat"`
	PerformanceId uint `gorm:"not null;uniqueIndex:idx_ticket_seat" json:"performanceId"`
	ReservationId uint `gorm:"not null;index" json:"reservationId"`

	Performance Performance `gorm:"foreignKey:PerformanceId" json:"-"`
	Reservation Reservation `gorm:"foreignKey:ReservationId" json:"-"`
}

type TicketRequest struct {
	Row           int  `json:"row" validate:"required,gt=0"`
	Seat          int  `json:"seat" validate:"required,gt=0"`
	PerformanceId uint `json:"performanceId" validate:"required,gt=0"`
}

type CreateReservationInput struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}

type TicketListResponse struct {
	Row         int    `json:"row"`
	Seat        int    `json:"seat"`
	Performance string `json:"performance"` // play title
}

type TicketDetailResponse struct {
	Row         int                     `json:"row"`
	Seat        int                     `json:"seat"`
	Performance PerformanceListResponse `json:"performance"`
}

type ReservationListResponse struct {
	ID         uint                 `json:"id"`
	PublicCode string               `json:"publicCode"`
	CreatedAt  time.Time            `json:"createdAt"`
	Tickets    []TicketListResponse `json:"tickets"`
}

type ReservationDetailResponse struct {
	ID         uint                   `json:"id"`
	PublicCode string                 `json:"publicCode"`
	CreatedAt  time.Time              `json:"createdAt"`
	Tickets    []TicketDetailResponse `json:"tickets"`
}
