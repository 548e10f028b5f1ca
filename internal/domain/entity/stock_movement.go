package entity

import (
	"time"

	"github.com/oficinapro/oficina-api/internal/domain"
)

// MovementType tipo de movimentação de estoque.
type MovementType string

// IN e OUT são deltas (entrada/saída); ADJUSTMENT grava um nível absoluto,
// nunca um delta — pode subir ou descer o saldo.
const (
	MovementTypeIn         MovementType = "IN"
	MovementTypeOut        MovementType = "OUT"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// ValidMovementType informa se o valor é um tipo conhecido.
func ValidMovementType(t MovementType) bool {
	return t == MovementTypeIn || t == MovementTypeOut || t == MovementTypeAdjustment
}

// StockMovement registro de movimentação. Quantity é sempre >= 0; para
// ADJUSTMENT representa o nível alvo absoluto.
type StockMovement struct {
	ID           string
	StockItemID  string
	Type         MovementType
	Quantity     int
	MovementDate time.Time
	Reason       string
	Notes        string
	CreatedAt    time.Time
}

// NextStockLevel calcula o saldo resultante de aplicar um movimento sobre o
// saldo atual. Falha sem efeito algum quando o resultado seria negativo.
func NextStockLevel(itemID string, current int, typ MovementType, quantity int) (int, error) {
	if quantity < 0 {
		if typ == MovementTypeAdjustment {
			return 0, domain.ErrInvalidStockAdjustment
		}
		return 0, domain.ErrInvalidInput
	}
	switch typ {
	case MovementTypeIn:
		return current + quantity, nil
	case MovementTypeOut:
		next := current - quantity
		if next < 0 {
			return 0, &domain.InsufficientStockError{
				StockItemID: itemID,
				Requested:   quantity,
				Available:   current,
			}
		}
		return next, nil
	case MovementTypeAdjustment:
		// Nível absoluto: não se compara com o saldo atual.
		return quantity, nil
	default:
		return 0, domain.ErrInvalidInput
	}
}

// AmendedStockLevel calcula o saldo final de uma emenda: desfaz algebricamente
// o efeito original e aplica o novo, validando apenas o nível final — nenhum
// estado intermediário negativo é materializado.
//
// Um ADJUSTMENT original não tem inverso (o nível pré-ajuste não é registrado),
// então só pode ser emendado para outro ADJUSTMENT.
func AmendedStockLevel(itemID string, current int, oldType MovementType, oldQty int, newType MovementType, newQty int) (int, error) {
	if newQty < 0 {
		return 0, domain.ErrInvalidInput
	}
	if newType == MovementTypeAdjustment {
		// Nível absoluto substitui qualquer efeito anterior.
		return newQty, nil
	}
	var base int
	switch oldType {
	case MovementTypeIn:
		base = current - oldQty
	case MovementTypeOut:
		base = current + oldQty
	case MovementTypeAdjustment:
		return 0, domain.ErrInvalidStockAdjustment
	default:
		return 0, domain.ErrInvalidInput
	}
	var final int
	switch newType {
	case MovementTypeIn:
		final = base + newQty
	case MovementTypeOut:
		final = base - newQty
	default:
		return 0, domain.ErrInvalidInput
	}
	if final < 0 {
		return 0, &domain.InsufficientStockError{
			StockItemID: itemID,
			Requested:   newQty,
			Available:   base,
		}
	}
	return final, nil
}
