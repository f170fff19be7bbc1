package model

type Genre struct {
	DTO
	Name string `gorm:"size:255;not null;uniqueIndex" validate:"required" json:"name"`

	Plays []Play `gorm:"many2many:play_genres;" json:"-"`
}

type CreateGenreInput struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type UpdateGenreInput struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}
