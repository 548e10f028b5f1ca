package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/money"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementação de StockItemRepository sobre PostgreSQL (usável com pool ou tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, name, sku, current_stock, min_stock_level, unit_cost, unit_sale_price, description, supplier, created_at, updated_at`

// Create persiste um item de estoque. SKU duplicado devolve ErrDuplicate.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.CurrentStock, item.MinStockLevel,
		item.UnitCost.Decimal(), item.UnitSalePrice.Decimal(),
		item.Description, item.Supplier, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtém um item por ID. Devolve (nil, nil) se não existe.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySKU obtém um item pelo SKU.
func (r *StockItemRepo) GetBySKU(sku string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE sku = $1`
	return r.scanOne(query, sku)
}

// GetForUpdate obtém o item bloqueando a linha (SELECT FOR UPDATE) pela
// duração da transação corrente. Fora de tx o bloqueio é inócuo.
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// List lista itens paginados, ordenados por nome.
func (r *StockItemRepo) List(limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	return scanStockItems(rows)
}

// ListBelowMinimum lista itens com saldo abaixo do nível mínimo.
func (r *StockItemRepo) ListBelowMinimum() ([]*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE current_stock < min_stock_level
		ORDER BY (min_stock_level - current_stock) DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock items below minimum: %w", err)
	}
	defer rows.Close()
	return scanStockItems(rows)
}

// Update atualiza saldo, mínimo, preços e campos descritivos.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET name = $2, current_stock = $3, min_stock_level = $4, unit_cost = $5,
		    unit_sale_price = $6, description = $7, supplier = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.CurrentStock, item.MinStockLevel,
		item.UnitCost.Decimal(), item.UnitSalePrice.Decimal(),
		item.Description, item.Supplier, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

func (r *StockItemRepo) scanOne(query string, args ...any) (*entity.StockItem, error) {
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var (
		it              entity.StockItem
		cost, salePrice decimal.Decimal
	)
	err := row.Scan(
		&it.ID, &it.Name, &it.SKU, &it.CurrentStock, &it.MinStockLevel,
		&cost, &salePrice, &it.Description, &it.Supplier, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.UnitCost = money.FromDecimal(cost)
	it.UnitSalePrice = money.FromDecimal(salePrice)
	return &it, nil
}

func scanStockItems(rows pgx.Rows) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
