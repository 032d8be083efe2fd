package response

import (
	"time"

	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type SignupResponse struct {
	UserID uuid.UUID `json:"userId"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func FromUserView(rm *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:        rm.ID,
		Email:     rm.Email,
		Role:      rm.Role,
		IsActive:  rm.IsActive,
		LastLogin: rm.LastLogin,
	}
}
