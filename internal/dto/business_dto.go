package dto

import (
	"time"

	"posadmin/internal/model"
)

type CreateBusinessRequest struct {
	Name       string `json:"name"        validate:"required,min=2,max=100"`
	OwnerName  string `json:"owner_name"  validate:"omitempty,min=2,max=100"`
	OwnerEmail string `json:"owner_email" validate:"omitempty,email"`
	Currency   string `json:"currency"    validate:"required,oneof=USD EUR GBP CAD"`
	Timezone   string `json:"timezone"    validate:"required"`
}

type UpdateBusinessRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=2,max=100"`
	Currency string `json:"currency" validate:"omitempty,oneof=USD EUR GBP CAD"`
	Timezone string `json:"timezone" validate:"omitempty"`
}

type UpdateBusinessStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive pending"`
}

type BusinessResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Timezone  string    `json:"timezone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBusinessResponse extends the business shape with the bootstrapped
// owner account; the temp password is shown exactly once.
type CreateBusinessResponse struct {
	Business     BusinessResponse `json:"business"`
	Owner        *UserResponse    `json:"owner,omitempty"`
	TempPassword string           `json:"temp_password,omitempty"`
}

func NewBusinessResponse(b *model.Business) BusinessResponse {
	return BusinessResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Currency:  b.Currency,
		Timezone:  b.Timezone,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
