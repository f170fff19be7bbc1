package model

type User struct {
	DTO
	Email        string `gorm:"uniqueIndex;not null;size:255" validate:"required,email" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"size:255" json:"firstName"`
	LastName     string `gorm:"size:255" json:"lastName"`
	IsStaff      bool   `gorm:"not null;default:false" json:"isStaff"`
	RefreshToken string `json:"-"`

	Reservations []Reservation `gorm:"foreignKey:UserId" json:"-"`
}

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"omitempty,max=255"`
	LastName  string `json:"lastName" validate:"omitempty,max=255"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsStaff   bool   `json:"isStaff"`
}
