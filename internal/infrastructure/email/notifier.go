// Package email envia notificações de orçamento ao cliente por SMTP.
package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/oficinapro/oficina-api/internal/application/budget"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
	"github.com/oficinapro/oficina-api/internal/infrastructure/events"
	"github.com/oficinapro/oficina-api/pkg/config"
	"github.com/oficinapro/oficina-api/pkg/logger"
)

// Notifier assina os eventos de orçamento e envia e-mail ao cliente.
// Com SMTP_HOST vazio opera em modo dev: só loga, não envia.
type Notifier struct {
	cfg        config.SMTPConfig
	clientRepo repository.ClientRepository
	log        *logger.Logger
}

// NewNotifier constrói o notificador.
func NewNotifier(cfg config.SMTPConfig, clientRepo repository.ClientRepository, log *logger.Logger) *Notifier {
	return &Notifier{cfg: cfg, clientRepo: clientRepo, log: log}
}

// Register assina os eventos de orçamento no barramento.
func (n *Notifier) Register(bus *events.Bus) {
	bus.Subscribe(budget.EventBudgetSent, n.notify("Orçamento disponível", "Seu orçamento está pronto e aguarda sua aprovação."))
	bus.Subscribe(budget.EventBudgetApproved, n.notify("Orçamento aprovado", "Recebemos a aprovação do seu orçamento. O serviço entrará em execução."))
	bus.Subscribe(budget.EventBudgetRejected, n.notify("Orçamento rejeitado", "Registramos a rejeição do seu orçamento."))
	bus.Subscribe(budget.EventBudgetExpired, n.notify("Orçamento expirado", "A validade do seu orçamento terminou. Solicite um novo se ainda desejar o serviço."))
}

func (n *Notifier) notify(subject, body string) events.Handler {
	return func(evt events.Event) error {
		clientID, _ := evt.Payload["client_id"].(string)
		if clientID == "" {
			return nil
		}
		client, err := n.clientRepo.GetByID(clientID)
		if err != nil {
			return err
		}
		if client == nil || client.Email == "" {
			return nil
		}

		if n.cfg.Host == "" {
			n.log.Info().
				Str("event", evt.Type).
				Str("to", client.Email).
				Str("subject", subject).
				Msg("SMTP não configurado; notificação apenas logada")
			return nil
		}

		m := gomail.NewMessage()
		m.SetHeader("From", n.cfg.From)
		m.SetHeader("To", client.Email)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", fmt.Sprintf("Olá %s,\n\n%s\n\nOrçamento: %s\n", client.Name, body, evt.AggregateID))

		d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
		if err := d.DialAndSend(m); err != nil {
			return fmt.Errorf("enviar e-mail: %w", err)
		}
		n.log.Info().Str("to", client.Email).Str("subject", subject).Msg("notificação enviada")
		return nil
	}
}
