package watchdog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"garimpo/internal/fetch"
	"garimpo/internal/notify"
	"garimpo/internal/observability"
	"garimpo/internal/repository"
	"garimpo/internal/scraper"
)

const lockKey = "watchdog:cycle"

// AlertStore é a fatia do repositório de alertas que o ciclo consome.
type AlertStore interface {
	ActiveAlerts(ctx context.Context) ([]repository.ActiveAlert, error)
	Deactivate(ctx context.Context, alertID int64) error
}

// Catalog registra o ponto de histórico de cada preço extraído.
type Catalog interface {
	Register(ctx context.Context, url, title string, price *decimal.Decimal, description string, specs map[string]string) (string, error)
}

// Locker impede ciclos sobrepostos entre instâncias. Pode ser nil.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type Service struct {
	alerts   AlertStore
	catalog  Catalog
	engine   *scraper.Engine
	fetcher  fetch.Doer
	notifier notify.Notifier
	lock     Locker
	lockTTL  time.Duration
}

func New(alerts AlertStore, catalog Catalog, engine *scraper.Engine, fetcher fetch.Doer, notifier notify.Notifier) *Service {
	return &Service{
		alerts:   alerts,
		catalog:  catalog,
		engine:   engine,
		fetcher:  fetcher,
		notifier: notifier,
	}
}

// WithLock liga o lock de ciclo (redis SetNX com TTL).
func (s *Service) WithLock(lock Locker, ttl time.Duration) *Service {
	s.lock = lock
	s.lockTTL = ttl
	return s
}

// RunCycle processa o snapshot de alertas ativos. Cada alerta é checado de
// forma isolada: falha de um vira log e o ciclo segue para o próximo.
func (s *Service) RunCycle(ctx context.Context) error {
	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx, lockKey, s.lockTTL)
		if err != nil {
			return err
		}
		if !ok {
			log.Println("[Watchdog] ciclo anterior ainda rodando, pulando")
			return nil
		}
		defer s.lock.Release(ctx, lockKey)
	}

	observability.WatchdogCyclesTotal.Inc()
	log.Println("[Watchdog] ciclo iniciado")

	alerts, err := s.alerts.ActiveAlerts(ctx)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		log.Println("[Watchdog] nenhum alerta ativo")
		return nil
	}

	for _, alert := range alerts {
		if err := s.checkAlert(ctx, alert); err != nil {
			log.Printf("[Watchdog] alerta %d: %v", alert.AlertID, err)
		}
	}

	log.Println("[Watchdog] ciclo encerrado")
	return nil
}

func (s *Service) checkAlert(ctx context.Context, alert repository.ActiveAlert) error {
	resp, err := s.fetcher.Get(ctx, alert.URL)
	if err != nil {
		observability.FetchErrorsTotal.Inc()
		return err
	}
	if !resp.OK() {
		observability.FetchErrorsTotal.Inc()
		return fmt.Errorf("HTTP %d em %s", resp.StatusCode, alert.URL)
	}

	result := s.engine.ExtractPrice(resp.Body, alert.URL)
	if !result.HasPrice() {
		// sem preço não há decisão; o alerta continua armado
		return nil
	}
	current := *result.CurrentPrice

	if _, err := s.catalog.Register(ctx, alert.URL, alert.Title, &current, "Watchdog Update", nil); err != nil {
		log.Printf("[Watchdog] falha ao registrar histórico de %s: %v", alert.URL, err)
	}

	if current.GreaterThan(alert.TargetPrice) {
		return nil
	}

	log.Printf("[Watchdog] ALVO ATINGIDO! alerta %d: %s <= %s", alert.AlertID, current.StringFixed(2), alert.TargetPrice.StringFixed(2))
	observability.AlertsFiredTotal.Inc()

	if err := s.notifier.Notify(ctx, alert.ChatID, renderAlert(alert, current)); err != nil {
		// notificação é melhor esforço; o alerta desarma mesmo assim
		log.Printf("[Watchdog] falha ao notificar chat %d: %v", alert.ChatID, err)
	}

	return s.alerts.Deactivate(ctx, alert.AlertID)
}

func renderAlert(alert repository.ActiveAlert, current decimal.Decimal) string {
	return fmt.Sprintf(
		"🚨 <b>ALERTA DE PREÇO ATINGIDO!</b>\n\n"+
			"📦 %s\n"+
			"🎯 Alvo: R$ %s\n"+
			"🔥 <b>Atual: R$ %s</b>\n\n"+
			"🔗 <a href='%s'>COMPRAR AGORA</a>",
		alert.Title,
		alert.TargetPrice.StringFixed(2),
		current.StringFixed(2),
		alert.URL,
	)
}
