package dto

// CreateClientRequest cadastro de cliente. Document é CPF ou CNPJ;
// os dígitos verificadores são validados por internal/domain/validate.
type CreateClientRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Document string `json:"document" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

// UpdateClientRequest atualização de cliente.
type UpdateClientRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=200"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
}
