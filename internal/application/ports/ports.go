// Package ports define portas compartilhadas pelos casos de uso.
package ports

import "time"

// Clock relógio injetável — necessário para testar expiração de orçamento
// de forma determinística.
type Clock interface {
	Now() time.Time
}

// SystemClock implementação padrão sobre time.Now.
type SystemClock struct{}

// Now devolve o instante corrente.
func (SystemClock) Now() time.Time { return time.Now() }

// EventEmitter notificação fire-and-forget emitida após transições de
// orçamento (send/approve/reject). O core não espera o processamento.
type EventEmitter interface {
	Emit(eventType, aggregateID string, payload map[string]any)
}

// NopEmitter descarta eventos; útil em testes e no cmd/seed.
type NopEmitter struct{}

// Emit não faz nada.
func (NopEmitter) Emit(string, string, map[string]any) {}
