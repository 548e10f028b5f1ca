package dto

// RegisterRequest cadastro de usuário.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN EMPLOYEE CLIENT"`
	ClientID string `json:"client_id" validate:"omitempty,uuid4"`
}

// LoginRequest autenticação.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse projeção do usuário (nunca expõe o hash).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse token JWT emitido.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
