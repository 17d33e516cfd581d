package worker

import (
	"context"
	"encoding/json"

	"puntoventa/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaWorker emails low-stock notifications. Sends go through a circuit
// breaker so a dead SMTP server fast-fails instead of stalling the pool.
type AlertaWorker struct {
	mailer  *infra.Mailer
	cb      *infra.CircuitBreaker
	destino string
}

func NewAlertaWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, destino string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, cb: cb, destino: destino}
}

func (w *AlertaWorker) Handle(ctx context.Context, raw json.RawMessage) error {
	var p AlertaStockPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	if w.destino == "" {
		// No recipient configured — log and drop.
		log.Warn().
			Str("producto", p.Codigo).
			Int("stock", p.Stock).
			Int("minimo", p.Minimo).
			Msg("stock bajo (sin ALERTAS_EMAIL configurado)")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendAlertaStock(w.destino, p.Codigo, p.Nombre, p.Stock, p.Minimo)
	})
	if err != nil {
		log.Error().Err(err).Str("producto", p.Codigo).Msg("alerta de stock no enviada")
		return err
	}

	log.Info().
		Str("producto", p.Codigo).
		Int("stock", p.Stock).
		Msg("alerta de stock enviada")
	return nil
}
