package model

type Play struct {
	DTO
	Title       string  `gorm:"size:255;not null;uniqueIndex" validate:"required" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Duration    *int    `json:"duration"` // minutes
	Image       *string `gorm:"size:255" json:"image"`

	Actors []Actor `gorm:"many2many:play_actors;" json:"actors"`
	Genres []Genre `gorm:"many2many:play_genres;" json:"genres"`
}

type CreatePlayInput struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description"`
	Duration    *int   `json:"duration" validate:"omitempty,gt=0"`
	ActorIds    []uint `json:"actorIds" validate:"omitempty,dive,gt=0"`
	GenreIds    []uint `json:"genreIds" validate:"omitempty,dive,gt=0"`
}

type UpdatePlayInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration" validate:"omitempty,gt=0"`
	ActorIds    *[]uint `json:"actorIds" validate:"omitempty,dive,gt=0"`
	GenreIds    *[]uint `json:"genreIds" validate:"omitempty,dive,gt=0"`
}

// PlayListResponse flattens actors and genres to their display names.
type PlayListResponse struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    *int     `json:"duration"`
	Actors      []string `json:"actors"`
	Genres      []string `json:"genres"`
	Image       *string  `json:"image"`
}

type PlayDetailResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    *int            `json:"duration"`
	Actors      []ActorResponse `json:"actors"`
	Genres      []Genre         `json:"genres"`
	Image       *string         `json:"image"`
}

type PlayImageResponse struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

func (p Play) ListResponse() PlayListResponse {
	actors := make([]string, 0, len(p.Actors))
	for _, a := range p.Actors {
		actors = append(actors, a.FullName())
	}
	genres := make([]string, 0, len(p.Genres))
	for _, g := range p.Genres {
		genres = append(genres, g.Name)
	}
	return PlayListResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Duration:    p.Duration,
		Actors:      actors,
		Genres:      genres,
		Image:       p.Image,
	}
}

func (p Play) DetailResponse() PlayDetailResponse {
	actors := make([]ActorResponse, 0, len(p.Actors))
	for _, a := range p.Actors {
		actors = append(actors, a.Response())
	}
	genres := p.Genres
	if genres == nil {
		genres = []Genre{}
	}
	return PlayDetailResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Duration:    p.Duration,
		Actors:      actors,
		Genres:      genres,
		Image:       p.Image,
	}
}
