// Package events implementa um barramento de eventos em processo.
// Entrega assíncrona, sem garantia de ordem entre handlers; um handler em
// pânico não derruba o processo nem afeta os demais.
package events

import (
	"sync"

	"github.com/oficinapro/oficina-api/pkg/logger"
)

// Event evento de domínio publicado no barramento.
type Event struct {
	Type        string
	AggregateID string
	Payload     map[string]any
}

// Handler consome um evento. Erros são logados, não propagados ao emissor.
type Handler func(Event) error

// Bus barramento em processo. Implementa ports.EventEmitter.
type Bus struct {
	log *logger.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler

	wg sync.WaitGroup
}

// NewBus constrói o barramento.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		log:      log,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registra um handler para um tipo de evento.
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Emit publica o evento e despacha cada handler em sua própria goroutine.
// Fire-and-forget: o chamador não espera nem vê erros dos handlers.
func (b *Bus) Emit(eventType, aggregateID string, payload map[string]any) {
	b.mu.RLock()
	hs := b.handlers[eventType]
	b.mu.RUnlock()

	evt := Event{Type: eventType, AggregateID: aggregateID, Payload: payload}
	for _, h := range hs {
		h := h
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.log.Error().
						Str("event", evt.Type).
						Str("aggregate_id", evt.AggregateID).
						Interface("panic", r).
						Msg("handler de evento em pânico")
				}
			}()
			if err := h(evt); err != nil {
				b.log.Error().
					Err(err).
					Str("event", evt.Type).
					Str("aggregate_id", evt.AggregateID).
					Msg("handler de evento falhou")
			}
		}()
	}
}

// Wait bloqueia até todos os handlers em voo terminarem. Usado no shutdown
// e nos testes.
func (b *Bus) Wait() {
	b.wg.Wait()
}
