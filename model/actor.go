package model

type Actor struct {
	DTO
	FirstName string `gorm:"size:255;not null;uniqueIndex:idx_actor_name" validate:"required" json:"firstName"`
	LastName  string `gorm:"size:255;not null;uniqueIndex:idx_actor_name" validate:"required" json:"lastName"`

	Plays []Play `gorm:"many2many:play_actors;" json:"-"`
}

func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

type CreateActorInput struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=255"`
	LastName  string `json:"lastName" validate:"required,min=1,max=255"`
}

type UpdateActorInput struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=255"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=255"`
}

type ActorResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
}

func (a Actor) Response() ActorResponse {
	return ActorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FullName(),
	}
}
