package dto

// CreateVehicleRequest cadastro de veículo. Placa e chassi validados
// por internal/domain/validate.
type CreateVehicleRequest struct {
	ClientID     string `json:"client_id" validate:"required,uuid4"`
	LicensePlate string `json:"license_plate" validate:"required"`
	VIN          string `json:"vin" validate:"omitempty"`
	Brand        string `json:"brand" validate:"required,max=100"`
	Model        string `json:"model" validate:"required,max=100"`
	Year         int    `json:"year" validate:"required,min=1950,max=2100"`
}
