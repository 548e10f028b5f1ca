package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

// ServiceOrderRepo implementação sobre PostgreSQL (usável com pool ou tx).
// Reidrata via entity.RestoreServiceOrder; o estado persistido é confiável
// e não revalida transições.
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

const serviceOrderColumns = `id, client_id, vehicle_id, status, request_date, delivery_date, cancellation_reason, notes, created_at, updated_at`

// Create persiste uma ordem de serviço.
func (r *ServiceOrderRepo) Create(order *entity.ServiceOrder) error {
	query := `
		INSERT INTO service_orders (` + serviceOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ClientID, order.VehicleID, string(order.Status()),
		order.RequestDate, order.DeliveryDate(), order.CancellationReason(),
		order.Notes, order.CreatedAt, order.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert service order: %w", err)
	}
	return nil
}

// GetByID obtém uma ordem por ID. Devolve (nil, nil) se não existe.
func (r *ServiceOrderRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	query := `SELECT ` + serviceOrderColumns + ` FROM service_orders WHERE id = $1`
	o, err := scanServiceOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order: %w", err)
	}
	return o, nil
}

// ListByClient lista as ordens de um cliente, mais recentes primeiro.
func (r *ServiceOrderRepo) ListByClient(clientID string, limit, offset int) ([]*entity.ServiceOrder, error) {
	query := `
		SELECT ` + serviceOrderColumns + ` FROM service_orders
		WHERE client_id = $1 ORDER BY request_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list service orders by client: %w", err)
	}
	defer rows.Close()
	return scanServiceOrders(rows)
}

// ListByStatus lista ordens em um status, mais recentes primeiro.
func (r *ServiceOrderRepo) ListByStatus(status entity.OrderStatus, limit, offset int) ([]*entity.ServiceOrder, error) {
	query := `
		SELECT ` + serviceOrderColumns + ` FROM service_orders
		WHERE status = $1 ORDER BY request_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list service orders by status: %w", err)
	}
	defer rows.Close()
	return scanServiceOrders(rows)
}

// Update grava o estado corrente da ordem (status, datas, motivo).
func (r *ServiceOrderRepo) Update(order *entity.ServiceOrder) error {
	query := `
		UPDATE service_orders
		SET status = $2, delivery_date = $3, cancellation_reason = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, string(order.Status()), order.DeliveryDate(),
		order.CancellationReason(), order.Notes, order.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("update service order: %w", err)
	}
	return nil
}

func scanServiceOrder(row pgx.Row) (*entity.ServiceOrder, error) {
	var (
		id, clientID, vehicleID, status string
		requestDate                     time.Time
		deliveryDate                    *time.Time
		cancellationReason, notes       string
		createdAt, updatedAt            time.Time
	)
	err := row.Scan(
		&id, &clientID, &vehicleID, &status, &requestDate,
		&deliveryDate, &cancellationReason, &notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity.RestoreServiceOrder(
		id, clientID, vehicleID, entity.OrderStatus(status),
		requestDate, deliveryDate, cancellationReason, notes,
		createdAt, updatedAt,
	), nil
}

func scanServiceOrders(rows pgx.Rows) ([]*entity.ServiceOrder, error) {
	var out []*entity.ServiceOrder
	for rows.Next() {
		o, err := scanServiceOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
