package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/money"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo implementação sobre PostgreSQL (usável com pool ou tx).
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

const budgetColumns = `id, service_order_id, client_id, status, total_amount, validity_days, generation_date, sent_date, approval_date, rejection_date, delivery_method, notes, created_at, updated_at`

// Create persiste um orçamento.
func (r *BudgetRepo) Create(budget *entity.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		budget.ID, budget.ServiceOrderID, budget.ClientID, string(budget.Status()),
		budget.TotalAmount().Decimal(), budget.ValidityDays(), budget.GenerationDate,
		budget.SentDate(), budget.ApprovalDate(), budget.RejectionDate(),
		budget.DeliveryMethod(), budget.Notes(), budget.CreatedAt, budget.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

// GetByID obtém um orçamento por ID. Devolve (nil, nil) se não existe.
func (r *BudgetRepo) GetByID(id string) (*entity.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1`
	b, err := scanBudget(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// GetByServiceOrder lista os orçamentos de uma ordem de serviço.
func (r *BudgetRepo) GetByServiceOrder(serviceOrderID string) ([]*entity.Budget, error) {
	query := `
		SELECT ` + budgetColumns + ` FROM budgets
		WHERE service_order_id = $1 ORDER BY generation_date DESC`
	rows, err := r.q.Query(context.Background(), query, serviceOrderID)
	if err != nil {
		return nil, fmt.Errorf("list budgets by service order: %w", err)
	}
	defer rows.Close()
	return scanBudgets(rows)
}

// Update grava o estado corrente do orçamento.
func (r *BudgetRepo) Update(budget *entity.Budget) error {
	query := `
		UPDATE budgets
		SET status = $2, total_amount = $3, validity_days = $4, sent_date = $5,
		    approval_date = $6, rejection_date = $7, delivery_method = $8,
		    notes = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		budget.ID, string(budget.Status()), budget.TotalAmount().Decimal(),
		budget.ValidityDays(), budget.SentDate(), budget.ApprovalDate(),
		budget.RejectionDate(), budget.DeliveryMethod(), budget.Notes(), budget.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

// ListExpiredCandidates devolve orçamentos ainda decidíveis (GENERATED, SENT
// ou RECEIVED) cuja janela de validade já passou em now. A comparação replica
// entity.Budget.IsExpired: vence estritamente após generation + validity_days.
func (r *BudgetRepo) ListExpiredCandidates(now time.Time) ([]*entity.Budget, error) {
	query := `
		SELECT ` + budgetColumns + ` FROM budgets
		WHERE status IN ('GENERATED', 'SENT', 'RECEIVED')
		  AND generation_date + make_interval(days => validity_days) < $1
		ORDER BY generation_date`
	rows, err := r.q.Query(context.Background(), query, now)
	if err != nil {
		return nil, fmt.Errorf("list expired budget candidates: %w", err)
	}
	defer rows.Close()
	return scanBudgets(rows)
}

func scanBudget(row pgx.Row) (*entity.Budget, error) {
	var (
		id, serviceOrderID, clientID, status  string
		total                                 decimal.Decimal
		validityDays                          int
		generationDate                        time.Time
		sentDate, approvalDate, rejectionDate *time.Time
		deliveryMethod, notes                 string
		createdAt, updatedAt                  time.Time
	)
	err := row.Scan(
		&id, &serviceOrderID, &clientID, &status, &total, &validityDays,
		&generationDate, &sentDate, &approvalDate, &rejectionDate,
		&deliveryMethod, &notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity.RestoreBudget(
		id, serviceOrderID, clientID, entity.BudgetStatus(status),
		money.FromDecimal(total), validityDays, generationDate,
		sentDate, approvalDate, rejectionDate,
		deliveryMethod, notes, createdAt, updatedAt,
	), nil
}

func scanBudgets(rows pgx.Rows) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
