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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação sobre PostgreSQL (usável com pool ou tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const stockMovementColumns = `id, stock_item_id, type, quantity, movement_date, reason, notes, created_at`

// Create persiste uma movimentação.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.StockItemID, string(movement.Type), movement.Quantity,
		movement.MovementDate, movement.Reason, movement.Notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtém uma movimentação por ID. Devolve (nil, nil) se não existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanStockMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByStockItem lista as movimentações de um item, com filtro opcional de
// período (from/to nil ignoram o limite) e paginação.
func (r *StockMovementRepo) ListByStockItem(stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + ` FROM stock_movements
		WHERE stock_item_id = $1
		  AND ($2::timestamptz IS NULL OR movement_date >= $2)
		  AND ($3::timestamptz IS NULL OR movement_date <= $3)
		ORDER BY movement_date DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, stockItemID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update grava a emenda de uma movimentação existente.
func (r *StockMovementRepo) Update(movement *entity.StockMovement) error {
	query := `
		UPDATE stock_movements
		SET type = $2, quantity = $3, movement_date = $4, reason = $5, notes = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, string(movement.Type), movement.Quantity,
		movement.MovementDate, movement.Reason, movement.Notes,
	)
	if err != nil {
		return fmt.Errorf("update stock movement: %w", err)
	}
	return nil
}

func scanStockMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m   entity.StockMovement
		typ string
	)
	err := row.Scan(
		&m.ID, &m.StockItemID, &typ, &m.Quantity,
		&m.MovementDate, &m.Reason, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	return &m, nil
}
