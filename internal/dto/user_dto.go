package dto

type CreateUserRequest struct {
	Email      string  `json:"email"       validate:"required,email"`
	Password   string  `json:"password"    validate:"required,min=8"`
	Role       string  `json:"role"        validate:"required,oneof=cashier manager owner super_admin"`
	FirstName  string  `json:"first_name"  validate:"required,min=1,max=100"`
	LastName   string  `json:"last_name"   validate:"required,min=1,max=100"`
	BusinessID *string `json:"business_id" validate:"omitempty,uuid"`
}
