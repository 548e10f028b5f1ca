package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementação sobre PostgreSQL (usável com pool ou tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

const vehicleColumns = `id, client_id, license_plate, vin, brand, model, year, created_at, updated_at`

// Create persiste um veículo. Placa duplicada devolve ErrDuplicate.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.ClientID, vehicle.LicensePlate, vehicle.VIN,
		vehicle.Brand, vehicle.Model, vehicle.Year, vehicle.CreatedAt, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtém um veículo por ID. Devolve (nil, nil) se não existe.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByPlate obtém um veículo pela placa normalizada.
func (r *VehicleRepo) GetByPlate(plate string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE license_plate = $1`
	return r.scanOne(query, plate)
}

// ListByClient lista os veículos de um cliente.
func (r *VehicleRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE client_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var out []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		err := rows.Scan(&v.ID, &v.ClientID, &v.LicensePlate, &v.VIN, &v.Brand, &v.Model, &v.Year, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// Update atualiza os campos descritivos do veículo.
func (r *VehicleRepo) Update(vehicle *entity.Vehicle) error {
	query := `UPDATE vehicles SET brand = $2, model = $3, year = $4, vin = $5, updated_at = $6 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.Brand, vehicle.Model, vehicle.Year, vehicle.VIN, vehicle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// Delete remove um veículo.
func (r *VehicleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepo) scanOne(query string, args ...any) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&v.ID, &v.ClientID, &v.LicensePlate, &v.VIN, &v.Brand, &v.Model, &v.Year, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}
