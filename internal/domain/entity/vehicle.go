package entity

import "time"

// Vehicle veículo de um cliente.
type Vehicle struct {
	ID           string
	ClientID     string
	LicensePlate string // formato antigo ABC1234 ou Mercosul ABC1D23
	VIN          string // chassi, 17 caracteres
	Brand        string
	Model        string
	Year         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
