package model

type TheatreHall struct {
	DTO
	Name       string `gorm:"size:255;not null;uniqueIndex" validate:"required" json:"name"`
	Rows       int    `gorm:"not null" validate:"required,gt=0" json:"rows"`
	SeatsInRow int    `gorm:"not null" validate:"required,gt=0" json:"seatsInRow"`

	Performances []Performance `gorm:"foreignKey:TheatreHallId" json:"-"`
}

func (h TheatreHall) Capacity() int {
	return h.Rows * h.SeatsInRow
}

type CreateTheatreHallInput struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	Rows       int    `json:"rows" validate:"required,gt=0"`
	SeatsInRow int    `json:"seatsInRow" validate:"required,gt=0"`
}

type UpdateTheatreHallInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=255"`
	Rows       *int    `json:"rows" validate:"omitempty,gt=0"`
	SeatsInRow *int    `json:"seatsInRow" validate:"omitempty,gt=0"`
}

type TheatreHallResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seatsInRow"`
	Capacity   int    `json:"capacity"`
}

type TheatreHallListResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func (h TheatreHall) Response() TheatreHallResponse {
	return TheatreHallResponse{
		ID:         h.ID,
		Name:       h.Name,
		Rows:       h.Rows,
		SeatsInRow: h.SeatsInRow,
		Capacity:   h.Capacity(),
	}
}
