package entity

import "time"

// Client cliente da oficina (pessoa física ou jurídica).
type Client struct {
	ID        string
	Name      string
	Document  string // CPF ou CNPJ, somente dígitos
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
