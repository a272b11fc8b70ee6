package dto

import (
	"github.com/google/uuid"

	"sindiplus_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	Name      string    `json:"name" validate:"required,min=3,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required,min=8"`
	Role      string    `json:"role" validate:"omitempty,oneof=user admin"`
	CompanyID uuid.UUID `json:"company_id" validate:"required"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=3,max=100"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"is_active"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CompanyID uuid.UUID `json:"company_id"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	IsActive  bool      `json:"is_active"`
}

func ToUserResponse(m *model.UserModel, photoURL string) UserResponse {
	return UserResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      m.Role,
		CompanyID: m.CompanyID,
		PhotoURL:  photoURL,
		IsActive:  m.IsActive,
	}
}
