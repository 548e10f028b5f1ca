// Package scheduler agenda as tarefas recorrentes da aplicação.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/oficinapro/oficina-api/internal/application/budget"
	"github.com/oficinapro/oficina-api/pkg/config"
	"github.com/oficinapro/oficina-api/pkg/logger"
)

// Scheduler roda a varredura de orçamentos vencidos em expressão cron
// (5 campos). A expiração é dirigida por tempo, não por acesso: um orçamento
// vencido vira EXPIRED mesmo que ninguém o consulte.
type Scheduler struct {
	cron     *cron.Cron
	budgetUC *budget.UseCase
	cfg      config.SchedulerConfig
	log      *logger.Logger
}

// NewScheduler constrói o scheduler.
func NewScheduler(cfg config.SchedulerConfig, budgetUC *budget.UseCase, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		budgetUC: budgetUC,
		cfg:      cfg,
		log:      log,
	}
}

// Start agenda e inicia as tarefas.
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc(s.cfg.BudgetSweepCron, s.sweepExpiredBudgets)
	if err != nil {
		s.log.Error().Err(err).Str("cron", s.cfg.BudgetSweepCron).Msg("agendar varredura de orçamentos")
		return
	}
	s.cron.Start()
	s.log.Info().Str("cron", s.cfg.BudgetSweepCron).Msg("scheduler iniciado")
}

// Stop para o scheduler e espera a tarefa em execução terminar.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler parado")
}

func (s *Scheduler) sweepExpiredBudgets() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.budgetUC.ExpireOverdue(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("varredura de orçamentos vencidos falhou")
		return
	}
	if n > 0 {
		s.log.Info().Int("expired", n).Msg("orçamentos expirados pela varredura")
	}
}
