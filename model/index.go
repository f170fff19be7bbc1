package model

import "time"

type TokenData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenClaim struct {
	UserId uint   `json:"userId"`
	Email  string `json:"email"`
}

type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResponseCustom is the list envelope: results plus the total row count,
// echoing back pagination when the client sent it.
type ResponseCustom struct {
	Results any   `json:"results"`
	Count   int64 `json:"count"`
	Limit   *int  `json:"limit,omitempty"`
	Page    *int  `json:"page,omitempty"`
}

type Pagination struct {
	Limit *int `json:"limit"`
	Page  *int `json:"page"`
}
