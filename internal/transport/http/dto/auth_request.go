package dto

// RegisterRequest is the register endpoint payload. Role is optional; it is
// normalized in the application layer.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty"`
}

func (r RegisterRequest) Validate() error { return checkStruct(r) }

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error { return checkStruct(r) }

// ResendVerificationRequest carries the address to re-send a verification
// mail to. Unknown addresses are not revealed by the endpoint.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r ResendVerificationRequest) Validate() error { return checkStruct(r) }

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r PasswordResetRequest) Validate() error { return checkStruct(r) }

type PasswordResetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r PasswordResetConfirmRequest) Validate() error { return checkStruct(r) }
